package database

import "context"

// InitSchema creates the tables on startup so a fresh database is usable
// without a separate migration step.
func (d *DB) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			email         TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL CHECK (role IN ('student','staff')),
			roll_no       TEXT NOT NULL DEFAULT '',
			semester      TEXT NOT NULL DEFAULT '',
			year          TEXT NOT NULL DEFAULT '',
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id               BIGSERIAL PRIMARY KEY,
			title            TEXT NOT NULL,
			author           TEXT NOT NULL,
			category         TEXT NOT NULL DEFAULT '',
			isbn             TEXT NOT NULL DEFAULT '',
			cover_url        TEXT NOT NULL DEFAULT '',
			total_copies     BIGINT NOT NULL DEFAULT 1 CHECK (total_copies >= 0),
			available_copies BIGINT NOT NULL DEFAULT 1
				CHECK (available_copies >= 0 AND available_copies <= total_copies)
		)`,
		`CREATE TABLE IF NOT EXISTS requests (
			id         BIGSERIAL PRIMARY KEY,
			user_email TEXT NOT NULL REFERENCES users(email) ON DELETE CASCADE,
			book_id    BIGINT NOT NULL REFERENCES books(id) ON DELETE CASCADE,
			status     TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending','waitlisted','approved','rejected','returned')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		// one active claim per (user, book); insert races resolve to a
		// unique violation instead of a double insert
		`CREATE UNIQUE INDEX IF NOT EXISTS requests_active_claim_idx
			ON requests (user_email, book_id)
			WHERE status IN ('pending','waitlisted')`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id         BIGSERIAL PRIMARY KEY,
			recipient  TEXT NOT NULL,
			subject    TEXT NOT NULL,
			body       TEXT NOT NULL,
			request_id BIGINT NOT NULL DEFAULT 0,
			read       BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS notifications_recipient_idx
			ON notifications (recipient, created_at DESC)`,
	}
	for _, q := range stmts {
		if _, err := d.Pool.Exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
