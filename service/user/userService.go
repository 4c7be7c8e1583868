package usersvc

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kotresh75/Aws-Project/model"
	userrepo "github.com/kotresh75/Aws-Project/repository/user"
)

var (
	ErrForbidden = errors.New("staff only")
	ErrNotFound  = errors.New("user not found")
)

// Service covers the staff-side user management surface.
type Service interface {
	ListStudents(ctx context.Context, actorEmail string) ([]model.User, error)
	RemoveStudent(ctx context.Context, actorEmail, email string) error
}

type service struct{ ur userrepo.Repo }

func New(ur userrepo.Repo) Service { return &service{ur: ur} }

func (s *service) ListStudents(ctx context.Context, actorEmail string) ([]model.User, error) {
	if err := s.requireStaff(ctx, actorEmail); err != nil {
		return nil, err
	}
	return s.ur.ListByRole(ctx, model.RoleStudent)
}

func (s *service) RemoveStudent(ctx context.Context, actorEmail, email string) error {
	if err := s.requireStaff(ctx, actorEmail); err != nil {
		return err
	}
	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if u.Role != model.RoleStudent {
		return ErrForbidden
	}
	return s.ur.Delete(ctx, email)
}

func (s *service) requireStaff(ctx context.Context, email string) error {
	role, err := s.ur.RoleOf(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if role != model.RoleStaff {
		return ErrForbidden
	}
	return nil
}
