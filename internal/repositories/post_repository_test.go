package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// These cover the validation paths that return before any store round trip.

func TestPostCreateRejectsEmptyFields(t *testing.T) {
	repo := &PostRepo{}
	author := primitive.NewObjectID()

	_, err := repo.Create(context.Background(), author, "alice", "", "body", "")
	assert.ErrorIs(t, err, ErrEmptyField)

	_, err = repo.Create(context.Background(), author, "alice", "title", "", "")
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestPostGetByIDRejectsMalformedHex(t *testing.T) {
	repo := &PostRepo{}

	_, err := repo.GetByID(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestPostUpdateValidationOrder(t *testing.T) {
	repo := &PostRepo{}
	requester := primitive.NewObjectID()

	// Empty fields win over a malformed id.
	err := repo.Update(context.Background(), "not-a-hex-id", requester, "", "")
	assert.ErrorIs(t, err, ErrEmptyField)

	err = repo.Update(context.Background(), "not-a-hex-id", requester, "title", "body")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestPostDeleteRejectsMalformedHex(t *testing.T) {
	repo := &PostRepo{}

	deleted, err := repo.Delete(context.Background(), "not-a-hex-id", primitive.NewObjectID())
	require.ErrorIs(t, err, ErrInvalidID)
	assert.Zero(t, deleted)
}

func TestCommentAddRejectsEmptyContent(t *testing.T) {
	repo := &CommentRepo{}

	_, err := repo.Add(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "alice", "")
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestPageSkipWindows(t *testing.T) {
	// Page n covers posts [5*(n-1), 5*n).
	assert.Equal(t, int64(0), pageSkip(1))
	assert.Equal(t, int64(5), pageSkip(2))
	assert.Equal(t, int64(10), pageSkip(3))
	assert.Equal(t, int64(45), pageSkip(10))
}

func TestPageSkipClampsBelowFirstPage(t *testing.T) {
	assert.Equal(t, int64(0), pageSkip(0))
	assert.Equal(t, int64(0), pageSkip(-3))
}

func TestChatRoomGetByIDRejectsMalformedHex(t *testing.T) {
	repo := &ChatRoomRepo{}

	_, err := repo.GetByID(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}
