package userrepo

import (
	"context"

	"github.com/kotresh75/Aws-Project/model"
	"github.com/kotresh75/Aws-Project/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	RoleOf(ctx context.Context, email string) (model.Role, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
	Delete(ctx context.Context, email string) error
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role, roll_no, semester, year)
		VALUES (lower($1),$2,$3,$4,$5,$6,$7)
		RETURNING email, created_at`,
		u.Email, u.Name, u.PasswordHash, string(u.Role), u.RollNo, u.Semester, u.Year,
	).Scan(&u.Email, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT email, name, password_hash, role, roll_no, semester, year, created_at
		FROM users
		WHERE email = lower($1)`,
		email,
	).Scan(&u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.RollNo, &u.Semester, &u.Year, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) RoleOf(ctx context.Context, email string) (model.Role, error) {
	var role model.Role
	err := r.db.Pool.QueryRow(ctx,
		`SELECT role FROM users WHERE email = lower($1)`, email,
	).Scan(&role)
	return role, err
}

func (r *repo) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT email, name, role, roll_no, semester, year, created_at
		FROM users
		WHERE role = $1
		ORDER BY email`,
		string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Email, &u.Name, &u.Role, &u.RollNo, &u.Semester, &u.Year, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, email string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE email = lower($1)`, email)
	return err
}

func (r *repo) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&n)
	return n, err
}
