package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
)

// UserServiceImpl implements account registration and session management.
type UserServiceImpl struct {
	users    port.UserRepository
	sessions port.SessionStore
}

// Ensure UserServiceImpl implements port.UserService.
var _ port.UserService = (*UserServiceImpl)(nil)

// NewUserService builds the user service.
func NewUserService(users port.UserRepository, sessions port.SessionStore) *UserServiceImpl {
	return &UserServiceImpl{users: users, sessions: sessions}
}

// Register creates an account. Emails are unique; passwords are stored as a
// SHA1 hex digest.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.UserView, error) {
	if email == "" {
		return nil, port.MissingField("email")
	}
	if password == "" {
		return nil, port.MissingField("password")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, port.ErrEmailTaken
	} else if !errors.Is(err, port.ErrNotFound) {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashPassword(password),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	logger.Infow("User registered", "user_id", user.ID)
	view := user.View()
	return &view, nil
}

// Me returns the account behind a session token.
func (s *UserServiceImpl) Me(ctx context.Context, token string) (*domain.UserView, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, port.ErrUnauthorized
		}
		return nil, err
	}

	view := user.View()
	return &view, nil
}

// Connect verifies credentials and issues a session token.
func (s *UserServiceImpl) Connect(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return "", port.ErrUnauthorized
		}
		return "", err
	}

	if user.PasswordHash != hashPassword(password) {
		return "", port.ErrUnauthorized
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return "", err
	}

	logger.Infow("Session opened", "user_id", user.ID)
	return token, nil
}

// Disconnect revokes a session token.
func (s *UserServiceImpl) Disconnect(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

func hashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
