package feedsvc

import (
	"context"
	"errors"

	"github.com/kotresh75/Aws-Project/model"
	notificationrepo "github.com/kotresh75/Aws-Project/repository/notification"
)

var ErrNotFound = errors.New("notification not found")

// Service exposes the in-app notification feed.
type Service interface {
	List(ctx context.Context, recipient string) ([]model.Notification, error)
	MarkRead(ctx context.Context, recipient string, id int64) error
}

type service struct{ nr notificationrepo.Repo }

func New(nr notificationrepo.Repo) Service { return &service{nr: nr} }

func (s *service) List(ctx context.Context, recipient string) ([]model.Notification, error) {
	return s.nr.ListForRecipient(ctx, recipient)
}

func (s *service) MarkRead(ctx context.Context, recipient string, id int64) error {
	ok, err := s.nr.MarkRead(ctx, id, recipient)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
