package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"forum-service/internal/mocks"
	"forum-service/internal/models"
	"forum-service/internal/repositories"
)

func TestRegisterSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	service := NewService(users, new(mocks.SessionRepositoryMock))

	users.On("GetByUsername", mock.Anything, "alice").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("Create", mock.Anything, "alice", mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw1")) == nil
	})).Return(models.User{Username: "alice"}, nil).Once()

	err := service.Register(context.Background(), "alice", "pw1", "pw1")
	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	service := NewService(users, new(mocks.SessionRepositoryMock))

	users.On("GetByUsername", mock.Anything, "alice").Return(models.User{Username: "alice"}, nil).Once()

	err := service.Register(context.Background(), "alice", "pw2", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateUser)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	service := NewService(users, new(mocks.SessionRepositoryMock))

	err := service.Register(context.Background(), "alice", "pw1", "pw2")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestRegisterLostInsertRace(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	service := NewService(users, new(mocks.SessionRepositoryMock))

	users.On("GetByUsername", mock.Anything, "alice").Return(models.User{}, repositories.ErrUserNotFound).Once()
	users.On("Create", mock.Anything, "alice", mock.Anything).Return(models.User{}, repositories.ErrDuplicateUser).Once()

	err := service.Register(context.Background(), "alice", "pw1", "pw1")
	assert.ErrorIs(t, err, ErrDuplicateUser)
	users.AssertExpectations(t)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	service := NewService(users, new(mocks.SessionRepositoryMock))

	users.On("GetByUsername", mock.Anything, "ghost").Return(models.User{}, repositories.ErrUserNotFound).Once()

	_, err := service.Authenticate(context.Background(), "ghost", "pw")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	service := NewService(users, new(mocks.SessionRepositoryMock))

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "alice").Return(models.User{Username: "alice", Password: string(hash)}, nil).Once()

	_, err = service.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestAuthenticateSuccess(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	service := NewService(users, new(mocks.SessionRepositoryMock))

	userID := primitive.NewObjectID()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "alice").Return(models.User{ID: userID, Username: "alice", Password: string(hash)}, nil).Once()

	identity, err := service.Authenticate(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, userID, identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestStartSessionPersistsToken(t *testing.T) {
	sessions := new(mocks.SessionRepositoryMock)
	service := NewService(new(mocks.UserRepositoryMock), sessions)

	userID := primitive.NewObjectID()
	sessions.On("Create", mock.Anything, mock.MatchedBy(func(s models.Session) bool {
		return s.Token != "" && s.UserID == userID && s.ExpiresAt.After(timeNow())
	})).Return(nil).Once()

	token, err := service.StartSession(context.Background(), models.Identity{ID: userID, Username: "alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	sessions.AssertExpectations(t)
}

func TestLoadSessionUserStripsPasswordAndSlidesExpiry(t *testing.T) {
	users := new(mocks.UserRepositoryMock)
	sessions := new(mocks.SessionRepositoryMock)
	service := NewService(users, sessions)

	userID := primitive.NewObjectID()
	sessions.On("Get", mock.Anything, "tok").Return(models.Session{Token: "tok", UserID: userID, Username: "alice"}, nil).Once()
	sessions.On("Refresh", mock.Anything, "tok", mock.Anything).Return(nil).Once()
	users.On("GetByID", mock.Anything, userID).Return(models.User{ID: userID, Username: "alice", Password: "hash"}, nil).Once()

	user, err := service.LoadSessionUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)
	sessions.AssertExpectations(t)
}

func TestLoadSessionUserExpired(t *testing.T) {
	sessions := new(mocks.SessionRepositoryMock)
	service := NewService(new(mocks.UserRepositoryMock), sessions)

	sessions.On("Get", mock.Anything, "tok").Return(models.Session{}, repositories.ErrSessionNotFound).Once()

	_, err := service.LoadSessionUser(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestEndSession(t *testing.T) {
	sessions := new(mocks.SessionRepositoryMock)
	service := NewService(new(mocks.UserRepositoryMock), sessions)

	sessions.On("Delete", mock.Anything, "tok").Return(nil).Once()

	require.NoError(t, service.EndSession(context.Background(), "tok"))
	sessions.AssertExpectations(t)
}
