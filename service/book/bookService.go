package booksvc

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kotresh75/Aws-Project/model"
)

var (
	ErrNotFound = errors.New("book not found")
	ErrBadInput = errors.New("invalid payload")
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Get(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, category, search string) ([]model.Book, error)
	UpdateDetails(ctx context.Context, b *model.Book) error
	AdjustTotal(ctx context.Context, id, newTotal int64) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	List(ctx context.Context, category, search string) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)

	// Edit updates descriptive fields and, if totalCopies differs from the
	// stored value, shifts available_copies by the same delta.
	Edit(ctx context.Context, b *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	if b.Title == "" || b.Author == "" || b.TotalCopies < 0 {
		return nil, ErrBadInput
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	b.AvailableCopies = b.TotalCopies
	return b, nil
}

func (s *service) List(ctx context.Context, category, search string) ([]model.Book, error) {
	return s.r.List(ctx, category, search)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Edit(ctx context.Context, b *model.Book) (*model.Book, error) {
	if b.Title == "" || b.Author == "" || b.TotalCopies < 0 {
		return nil, ErrBadInput
	}
	cur, err := s.r.Get(ctx, b.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.r.UpdateDetails(ctx, b); err != nil {
		return nil, err
	}
	if b.TotalCopies != cur.TotalCopies {
		if err := s.r.AdjustTotal(ctx, b.ID, b.TotalCopies); err != nil {
			return nil, err
		}
	}
	return s.r.Get(ctx, b.ID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.r.Get(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.r.Delete(ctx, id)
}
