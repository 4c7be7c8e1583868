package statsvc

import (
	"context"

	"github.com/kotresh75/Aws-Project/model"
)

type Stats struct {
	AvailableBooks  int64 `json:"available_books"`
	TotalStudents   int64 `json:"total_students"`
	PendingRequests int64 `json:"pending_requests"`
}

type BookCounter interface {
	AvailableTotal(ctx context.Context) (int64, error)
}

type UserCounter interface {
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type RequestCounter interface {
	CountByStatus(ctx context.Context, status model.RequestStatus) (int64, error)
}

type Service interface {
	Snapshot(ctx context.Context) (*Stats, error)
}

type service struct {
	books    BookCounter
	users    UserCounter
	requests RequestCounter
}

func New(books BookCounter, users UserCounter, requests RequestCounter) Service {
	return &service{books: books, users: users, requests: requests}
}

func (s *service) Snapshot(ctx context.Context) (*Stats, error) {
	avail, err := s.books.AvailableTotal(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.users.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	pending, err := s.requests.CountByStatus(ctx, model.RequestPending)
	if err != nil {
		return nil, err
	}
	return &Stats{
		AvailableBooks:  avail,
		TotalStudents:   students,
		PendingRequests: pending,
	}, nil
}
