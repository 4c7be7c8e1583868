package requestrepo

import (
	"context"

	"github.com/kotresh75/Aws-Project/model"
	"github.com/kotresh75/Aws-Project/util/database"
)

// Repo is the request ledger. InsertIfAbsent relies on the partial unique
// index over active statuses, so two concurrent creates for the same
// (user, book) pair surface as a unique violation rather than a double
// insert. SetStatus is conditional on the expected current status; zero
// rows affected means somebody else got there first.
type Repo interface {
	InsertIfAbsent(ctx context.Context, userEmail string, bookID int64, status model.RequestStatus) (*model.Request, error)
	Get(ctx context.Context, id int64) (*model.Request, error)
	SetStatus(ctx context.Context, id int64, expected, next model.RequestStatus) (bool, error)
	ListByRequester(ctx context.Context, userEmail string) ([]model.Request, error)
	ListAll(ctx context.Context) ([]model.Request, error)
	CountByStatus(ctx context.Context, status model.RequestStatus) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) InsertIfAbsent(ctx context.Context, userEmail string, bookID int64, status model.RequestStatus) (*model.Request, error) {
	req := &model.Request{UserEmail: userEmail, BookID: bookID, Status: status}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO requests (user_email, book_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		userEmail, bookID, string(status),
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Request, error) {
	req := &model.Request{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_email, book_id, status, created_at, updated_at
		FROM requests
		WHERE id = $1`,
		id,
	).Scan(&req.ID, &req.UserEmail, &req.BookID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) SetStatus(ctx context.Context, id int64, expected, next model.RequestStatus) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE requests
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, string(expected), string(next))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repo) ListByRequester(ctx context.Context, userEmail string) ([]model.Request, error) {
	return r.list(ctx, `
		SELECT id, user_email, book_id, status, created_at, updated_at
		FROM requests
		WHERE user_email = $1
		ORDER BY id DESC`, userEmail)
}

func (r *repo) ListAll(ctx context.Context) ([]model.Request, error) {
	return r.list(ctx, `
		SELECT id, user_email, book_id, status, created_at, updated_at
		FROM requests
		ORDER BY id DESC`)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Request, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Request
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(&req.ID, &req.UserEmail, &req.BookID, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *repo) CountByStatus(ctx context.Context, status model.RequestStatus) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM requests WHERE status = $1`, string(status)).Scan(&n)
	return n, err
}
