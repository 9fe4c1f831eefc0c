package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"forum-service/internal/models"
	"forum-service/internal/repositories"
)

var (
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrDuplicateUser    = errors.New("username already taken")
	ErrUnknownUser      = errors.New("unknown username")
	ErrBadCredentials   = errors.New("wrong password")
	ErrSessionInvalid   = errors.New("session invalid or expired")
)

const bcryptCost = 10

var timeNow = time.Now

// Service owns the credential and session lifecycle.
type Service struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
}

// NewService constructs a Service.
func NewService(users repositories.UserRepository, sessions repositories.SessionRepository) *Service {
	return &Service{users: users, sessions: sessions}
}

// Register creates an account. The username check-then-insert is not
// transactional; a lost race resolves to ErrDuplicateUser through the unique
// index.
func (s *Service) Register(ctx context.Context, username, password, passwordConfirm string) error {
	if password != passwordConfirm {
		return ErrPasswordMismatch
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return ErrDuplicateUser
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	_, err = s.users.Create(ctx, username, string(hash))
	if errors.Is(err, repositories.ErrDuplicateUser) {
		return ErrDuplicateUser
	}
	return err
}

// Authenticate verifies credentials and returns the minimal identity a
// session is built from.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.Identity{}, ErrUnknownUser
	}
	if err != nil {
		return models.Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.Identity{}, ErrBadCredentials
	}
	return models.Identity{ID: user.ID, Username: user.Username}, nil
}

// StartSession persists a new session and returns its opaque token.
func (s *Service) StartSession(ctx context.Context, identity models.Identity) (string, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    identity.ID,
		Username:  identity.Username,
		ExpiresAt: timeNow().Add(repositories.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return session.Token, nil
}

// LoadSessionUser resolves a token to the full user record with the password
// hash stripped, sliding the expiry window forward as a side effect.
func (s *Service) LoadSessionUser(ctx context.Context, token string) (models.User, error) {
	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, repositories.ErrSessionNotFound) {
		return models.User{}, ErrSessionInvalid
	}
	if err != nil {
		return models.User{}, err
	}

	// Sliding window; a failed refresh does not invalidate the request.
	_ = s.sessions.Refresh(ctx, token, timeNow().Add(repositories.SessionTTL))

	user, err := s.users.GetByID(ctx, session.UserID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.User{}, ErrSessionInvalid
	}
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// EndSession discards the server-side session record.
func (s *Service) EndSession(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
