package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"forum-service/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionTTL is the sliding inactivity window of a session.
const SessionTTL = time.Hour

// SessionRepository abstracts server-side session storage.
type SessionRepository interface {
	Create(ctx context.Context, session models.Session) error
	Get(ctx context.Context, token string) (models.Session, error)
	Refresh(ctx context.Context, token string, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
}

// SessionRepo is a mongo implementation of SessionRepository.
type SessionRepo struct {
	col *mongo.Collection
	now func() time.Time
}

// NewSessionRepo constructs a SessionRepo.
func NewSessionRepo(database *mongo.Database) *SessionRepo {
	return &SessionRepo{col: database.Collection("session"), now: time.Now}
}

// Create stores a session record keyed by its token.
func (r *SessionRepo) Create(ctx context.Context, session models.Session) error {
	_, err := r.col.InsertOne(ctx, session)
	return err
}

// Get fetches a live session. The TTL index reaps expired documents lazily,
// so expiry is also checked here.
func (r *SessionRepo) Get(ctx context.Context, token string) (models.Session, error) {
	var session models.Session
	err := r.col.FindOne(ctx, bson.M{"_id": token}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	if session.ExpiresAt.Before(r.now()) {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Refresh slides the expiry window forward.
func (r *SessionRepo) Refresh(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": token}, bson.M{"$set": bson.M{"expires_at": expiresAt}})
	return err
}

// Delete removes a session record.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": token})
	return err
}
