package notificationrepo

import (
	"context"

	"github.com/kotresh75/Aws-Project/model"
	"github.com/kotresh75/Aws-Project/util/database"
)

type Repo interface {
	Insert(ctx context.Context, n *model.Notification) error
	ListForRecipient(ctx context.Context, recipient string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id int64, recipient string) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, n *model.Notification) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO notifications (recipient, subject, body, request_id)
		VALUES (lower($1),$2,$3,$4)
		RETURNING id, created_at`,
		n.Recipient, n.Subject, n.Body, n.RequestID,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *repo) ListForRecipient(ctx context.Context, recipient string) ([]model.Notification, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, recipient, subject, body, request_id, read, created_at
		FROM notifications
		WHERE recipient = lower($1)
		ORDER BY created_at DESC
		LIMIT 100`,
		recipient)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Subject, &n.Body, &n.RequestID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead is scoped to the recipient so users cannot ack each other's feed.
func (r *repo) MarkRead(ctx context.Context, id int64, recipient string) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE
		WHERE id = $1 AND recipient = lower($2)`,
		id, recipient)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
