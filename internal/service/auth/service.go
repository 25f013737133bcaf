package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"swasthyam/internal/model"
	"swasthyam/internal/repository"
	"swasthyam/internal/util"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so the two cases are indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid username or password")

var ErrUsernameTaken = errors.New("username or email already registered")

// UserStore is the subset of the user repository the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
}

type Service struct {
	users      UserStore
	jwtSecret  string
	bcryptCost int
	logger     *zap.Logger
}

func NewService(users UserStore, jwtSecret string, bcryptCost int, logger *zap.Logger) *Service {
	return &Service{users: users, jwtSecret: jwtSecret, bcryptCost: bcryptCost, logger: logger}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates the account with a hashed password and returns a
// signed token so the client is logged in immediately after signup.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	hash, err := util.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := util.GenerateJWT(user.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("User registered", zap.Int("user_id", user.ID))
	return user, token, nil
}

// Login verifies the password and issues a token. Lookup and password
// failures collapse into one error.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
