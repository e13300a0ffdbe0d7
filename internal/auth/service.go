package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/stocktrail/po-approval/internal/application/port"
	"github.com/stocktrail/po-approval/internal/domain/entity"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
// The two cases are deliberately indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Service authenticates users and issues tokens
type Service struct {
	users  port.UserRepository
	tokens *TokenManager
	logger Logger
}

// NewService creates a new auth service
func NewService(users port.UserRepository, tokens *TokenManager, logger Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies the credentials and returns a signed token with the user
func (s *Service) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to look up user", "error", err, "username", username)
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue token", "error", err, "username", username)
		return "", nil, err
	}

	s.logger.Info("User logged in", "username", username, "role", user.Role.String())
	return token, user, nil
}
