package bookrepo

import (
	"context"

	"github.com/kotresh75/Aws-Project/model"
	"github.com/kotresh75/Aws-Project/util/database"
)

// Repo is the catalog store. CompareAndDecrement and CompareAndIncrement
// are the only ways the reservation flow touches available_copies; both are
// single conditional UPDATEs so concurrent callers on the same book can
// never drive the count negative or past total_copies.
type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Get(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, category, search string) ([]model.Book, error)
	UpdateDetails(ctx context.Context, b *model.Book) error
	AdjustTotal(ctx context.Context, id, newTotal int64) error
	Delete(ctx context.Context, id int64) error

	// CompareAndDecrement returns false when available_copies was already 0.
	CompareAndDecrement(ctx context.Context, id int64) (bool, error)
	// CompareAndIncrement is a no-op once available_copies == total_copies.
	CompareAndIncrement(ctx context.Context, id int64) error

	AvailableTotal(ctx context.Context) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO books (title, author, category, isbn, cover_url, total_copies, available_copies)
		VALUES ($1,$2,$3,$4,$5,$6,$6)
		RETURNING id`,
		b.Title, b.Author, b.Category, b.ISBN, b.CoverURL, b.TotalCopies,
	).Scan(&b.ID)
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Book, error) {
	b := &model.Book{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, title, author, category, isbn, cover_url, total_copies, available_copies
		FROM books
		WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.ISBN, &b.CoverURL, &b.TotalCopies, &b.AvailableCopies)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) List(ctx context.Context, category, search string) ([]model.Book, error) {
	const q = `
		SELECT id, title, author, category, isbn, cover_url, total_copies, available_copies
		FROM books
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR title ILIKE '%'||$2||'%' OR author ILIKE '%'||$2||'%')
		ORDER BY id DESC`
	rows, err := r.db.Pool.Query(ctx, q, category, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.ISBN, &b.CoverURL, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) UpdateDetails(ctx context.Context, b *model.Book) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE books
		SET title = $2, author = $3, category = $4, isbn = $5, cover_url = $6
		WHERE id = $1`,
		b.ID, b.Title, b.Author, b.Category, b.ISBN, b.CoverURL)
	return err
}

// AdjustTotal moves total_copies to newTotal and shifts available_copies by
// the same delta, floored at 0 and clamped to the new total, in one
// statement so a concurrent approval cannot observe a half-applied edit.
func (r *repo) AdjustTotal(ctx context.Context, id, newTotal int64) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE books
		SET available_copies = LEAST(GREATEST(available_copies + ($2 - total_copies), 0), $2),
		    total_copies     = $2
		WHERE id = $1`,
		id, newTotal)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	return err
}

func (r *repo) CompareAndDecrement(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE books
		SET available_copies = available_copies - 1
		WHERE id = $1 AND available_copies >= 1`,
		id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repo) CompareAndIncrement(ctx context.Context, id int64) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE books
		SET available_copies = available_copies + 1
		WHERE id = $1 AND available_copies < total_copies`,
		id)
	return err
}

func (r *repo) AvailableTotal(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COALESCE(SUM(available_copies),0) FROM books`).Scan(&n)
	return n, err
}
