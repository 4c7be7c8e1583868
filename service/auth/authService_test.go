// service/auth/auth_service_test.go
package authsvc

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/kotresh75/Aws-Project/model"
	userrepo "github.com/kotresh75/Aws-Project/repository/user"
	"github.com/kotresh75/Aws-Project/util/hash"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) RoleOf(ctx context.Context, email string) (model.Role, error) {
	u, err := m.ByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (m *mockRepo) ListByRole(context.Context, model.Role) ([]model.User, error) { return nil, nil }
func (m *mockRepo) Delete(context.Context, string) error                         { return nil }
func (m *mockRepo) CountByRole(context.Context, model.Role) (int64, error)       { return 0, nil }

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			require.NotEmpty(t, u.PasswordHash)
			require.NotEqual(t, "supersecret", u.PasswordHash)
			return nil
		},
	}
	svc := New(m, "test-secret")

	u, token, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Alice",
		Email:    "alice@uni.edu",
		Password: "supersecret",
		Role:     "student",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, model.RoleStudent, u.Role)
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_pkey"}
		},
	}
	svc := New(m, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Name:     "Alice",
		Email:    "alice@uni.edu",
		Password: "supersecret",
		Role:     "student",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_BadRole(t *testing.T) {
	svc := New(&mockRepo{}, "test-secret")
	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Name:     "Mallory",
		Email:    "mallory@uni.edu",
		Password: "supersecret",
		Role:     "admin",
	})
	require.ErrorIs(t, err, ErrBadInput)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hashed, err := hash.HashPassword("supersecret")
	require.NoError(t, err)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			if email != "alice@uni.edu" {
				return nil, pgx.ErrNoRows
			}
			return &model.User{Email: email, Role: model.RoleStudent, PasswordHash: hashed}, nil
		},
	}
	svc := New(m, "test-secret")

	_, token, err := svc.Login(ctx, model.LoginReq{Email: "alice@uni.edu", Password: "supersecret"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, model.LoginReq{Email: "alice@uni.edu", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCreds)

	_, _, err = svc.Login(ctx, model.LoginReq{Email: "nobody@uni.edu", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}
