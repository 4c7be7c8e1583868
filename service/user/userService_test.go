package usersvc

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/kotresh75/Aws-Project/model"
)

type mockRepo struct {
	users   map[string]*model.User
	deleted []string
}

func (m *mockRepo) Create(context.Context, *model.User) error { return nil }

func (m *mockRepo) ByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockRepo) RoleOf(ctx context.Context, email string) (model.Role, error) {
	u, err := m.ByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (m *mockRepo) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	var out []model.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockRepo) Delete(_ context.Context, email string) error {
	m.deleted = append(m.deleted, email)
	return nil
}

func (m *mockRepo) CountByRole(context.Context, model.Role) (int64, error) { return 0, nil }

func fixture() (*mockRepo, Service) {
	m := &mockRepo{users: map[string]*model.User{
		"staff@uni.edu": {Email: "staff@uni.edu", Role: model.RoleStaff},
		"alice@uni.edu": {Email: "alice@uni.edu", Role: model.RoleStudent},
	}}
	return m, New(m)
}

func TestListStudents(t *testing.T) {
	_, svc := fixture()

	rows, err := svc.ListStudents(context.Background(), "staff@uni.edu")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = svc.ListStudents(context.Background(), "alice@uni.edu")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveStudent(t *testing.T) {
	m, svc := fixture()

	err := svc.RemoveStudent(context.Background(), "staff@uni.edu", "alice@uni.edu")
	require.NoError(t, err)
	require.Equal(t, []string{"alice@uni.edu"}, m.deleted)

	err = svc.RemoveStudent(context.Background(), "staff@uni.edu", "nobody@uni.edu")
	require.ErrorIs(t, err, ErrNotFound)

	// staff accounts are not removable through this surface
	err = svc.RemoveStudent(context.Background(), "staff@uni.edu", "staff@uni.edu")
	require.ErrorIs(t, err, ErrForbidden)

	err = svc.RemoveStudent(context.Background(), "alice@uni.edu", "alice@uni.edu")
	require.ErrorIs(t, err, ErrForbidden)
}
