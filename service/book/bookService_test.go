// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/kotresh75/Aws-Project/model"
	booksvc "github.com/kotresh75/Aws-Project/service/book"
)

type repoMock struct {
	createFn        func(ctx context.Context, b *model.Book) error
	getFn           func(ctx context.Context, id int64) (*model.Book, error)
	listFn          func(ctx context.Context, category, search string) ([]model.Book, error)
	updateDetailsFn func(ctx context.Context, b *model.Book) error
	adjustTotalFn   func(ctx context.Context, id, newTotal int64) error
	deleteFn        func(ctx context.Context, id int64) error
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Book, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context, category, search string) ([]model.Book, error) {
	return m.listFn(ctx, category, search)
}
func (m *repoMock) UpdateDetails(ctx context.Context, b *model.Book) error {
	return m.updateDetailsFn(ctx, b)
}
func (m *repoMock) AdjustTotal(ctx context.Context, id, newTotal int64) error {
	return m.adjustTotalFn(ctx, id, newTotal)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), &model.Book{Author: "a", TotalCopies: 1}); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := s.Create(context.Background(), &model.Book{Title: "t", TotalCopies: 1}); err == nil {
		t.Fatal("expected error for empty author")
	}
	if _, err := s.Create(context.Background(), &model.Book{Title: "t", Author: "a", TotalCopies: -1}); err == nil {
		t.Fatal("expected error for negative copies")
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			b.ID = 42
			return nil
		},
	}
	s := booksvc.New(m)
	b, err := s.Create(context.Background(), &model.Book{Title: "Clean Code", Author: "Martin", TotalCopies: 3})
	if err != nil || b.ID != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", b.ID, err)
	}
	if b.AvailableCopies != 3 {
		t.Fatalf("available=%d; want all copies available on create", b.AvailableCopies)
	}
}

func TestEdit_AdjustsTotalOnlyWhenChanged(t *testing.T) {
	adjusted := false
	stored := &model.Book{ID: 7, Title: "Old", Author: "A", TotalCopies: 2, AvailableCopies: 1}
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			cp := *stored
			return &cp, nil
		},
		updateDetailsFn: func(ctx context.Context, b *model.Book) error { return nil },
		adjustTotalFn: func(ctx context.Context, id, newTotal int64) error {
			adjusted = true
			if newTotal != 5 {
				t.Fatalf("newTotal=%d; want 5", newTotal)
			}
			return nil
		},
	}
	s := booksvc.New(m)

	if _, err := s.Edit(context.Background(), &model.Book{ID: 7, Title: "New", Author: "A", TotalCopies: 2}); err != nil {
		t.Fatal(err)
	}
	if adjusted {
		t.Fatal("AdjustTotal called although total did not change")
	}

	if _, err := s.Edit(context.Background(), &model.Book{ID: 7, Title: "New", Author: "A", TotalCopies: 5}); err != nil {
		t.Fatal(err)
	}
	if !adjusted {
		t.Fatal("AdjustTotal not called for changed total")
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, pgx.ErrNoRows },
	}
	s := booksvc.New(m)
	if _, err := s.Detail(context.Background(), 99); err != booksvc.ErrNotFound {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}
