package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-service/internal/models"
	"forum-service/internal/repositories"
	"forum-service/internal/storage"
)

type PostRepositoryMock struct {
	mock.Mock
}

func (m *PostRepositoryMock) Create(ctx context.Context, authorID primitive.ObjectID, authorName, title, content, imageURL string) (string, error) {
	args := m.Called(ctx, authorID, authorName, title, content, imageURL)
	return args.String(0), args.Error(1)
}

func (m *PostRepositoryMock) List(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	var posts []models.Post
	if val := args.Get(0); val != nil {
		posts = val.([]models.Post)
	}
	return posts, args.Error(1)
}

func (m *PostRepositoryMock) ListPage(ctx context.Context, page int) ([]models.Post, error) {
	args := m.Called(ctx, page)
	var posts []models.Post
	if val := args.Get(0); val != nil {
		posts = val.([]models.Post)
	}
	return posts, args.Error(1)
}

func (m *PostRepositoryMock) GetByID(ctx context.Context, id string) (models.Post, error) {
	args := m.Called(ctx, id)
	var post models.Post
	if val := args.Get(0); val != nil {
		post = val.(models.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepositoryMock) Update(ctx context.Context, id string, requesterID primitive.ObjectID, title, content string) error {
	args := m.Called(ctx, id, requesterID, title, content)
	return args.Error(0)
}

func (m *PostRepositoryMock) Delete(ctx context.Context, id string, requesterID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id, requesterID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostRepositoryMock) Search(ctx context.Context, keyword string) ([]models.Post, error) {
	args := m.Called(ctx, keyword)
	var posts []models.Post
	if val := args.Get(0); val != nil {
		posts = val.([]models.Post)
	}
	return posts, args.Error(1)
}

type CommentRepositoryMock struct {
	mock.Mock
}

func (m *CommentRepositoryMock) Add(ctx context.Context, postID, authorID primitive.ObjectID, authorName, content string) (models.Comment, error) {
	args := m.Called(ctx, postID, authorID, authorName, content)
	var comment models.Comment
	if val := args.Get(0); val != nil {
		comment = val.(models.Comment)
	}
	return comment, args.Error(1)
}

func (m *CommentRepositoryMock) ListForPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	args := m.Called(ctx, postID)
	var comments []models.Comment
	if val := args.Get(0); val != nil {
		comments = val.([]models.Comment)
	}
	return comments, args.Error(1)
}

type ChatRoomRepositoryMock struct {
	mock.Mock
}

func (m *ChatRoomRepositoryMock) FindOrCreate(ctx context.Context, post models.Post, guestID primitive.ObjectID) (models.ChatRoom, error) {
	args := m.Called(ctx, post, guestID)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *ChatRoomRepositoryMock) GetByID(ctx context.Context, id string) (models.ChatRoom, error) {
	args := m.Called(ctx, id)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *ChatRoomRepositoryMock) ListForGuest(ctx context.Context, guestID primitive.ObjectID) ([]models.ChatRoom, error) {
	args := m.Called(ctx, guestID)
	var rooms []models.ChatRoom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.ChatRoom)
	}
	return rooms, args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	args := m.Called(ctx, username, passwordHash)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	args := m.Called(ctx, id)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

type SessionRepositoryMock struct {
	mock.Mock
}

func (m *SessionRepositoryMock) Create(ctx context.Context, session models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepositoryMock) Get(ctx context.Context, token string) (models.Session, error) {
	args := m.Called(ctx, token)
	var session models.Session
	if val := args.Get(0); val != nil {
		session = val.(models.Session)
	}
	return session, args.Error(1)
}

func (m *SessionRepositoryMock) Refresh(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *SessionRepositoryMock) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, r)
	return args.String(0), args.Error(1)
}

var _ repositories.PostRepository = (*PostRepositoryMock)(nil)
var _ repositories.CommentRepository = (*CommentRepositoryMock)(nil)
var _ repositories.ChatRoomRepository = (*ChatRoomRepositoryMock)(nil)
var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.SessionRepository = (*SessionRepositoryMock)(nil)
var _ storage.Store = (*StoreMock)(nil)
