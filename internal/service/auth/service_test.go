package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/repository"
	"swasthyam/internal/util"
)

type mockUserStore struct {
	createUserFn     func(ctx context.Context, user *model.User) error
	findByUsernameFn func(ctx context.Context, username string) (*model.User, error)
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *model.User) error {
	return m.createUserFn(ctx, user)
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.findByUsernameFn(ctx, username)
}

func (m *mockUserStore) FindByID(ctx context.Context, id int) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func TestRegisterIssuesToken(t *testing.T) {
	users := &mockUserStore{
		createUserFn: func(ctx context.Context, user *model.User) error {
			user.ID = 42
			return nil
		},
	}
	svc := NewService(users, "test-secret", 4, zap.NewNop())

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Username: "asha", Email: "asha@example.com", Password: "s3cret!",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, user.ID)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)

	id, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := &mockUserStore{
		createUserFn: func(ctx context.Context, user *model.User) error {
			return repository.ErrAlreadyExists
		},
	}
	svc := NewService(users, "test-secret", 4, zap.NewNop())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "asha", Email: "asha@example.com", Password: "s3cret!",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	hash, err := util.HashPassword("s3cret!", 4)
	require.NoError(t, err)

	users := &mockUserStore{
		findByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username == "asha" {
				return &model.User{ID: 42, Username: "asha", PasswordHash: hash}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewService(users, "test-secret", 4, zap.NewNop())

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := svc.Login(context.Background(), "asha", "s3cret!")
		require.NoError(t, err)
		assert.Equal(t, 42, user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "asha", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username collapses to same error", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody", "s3cret!")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
