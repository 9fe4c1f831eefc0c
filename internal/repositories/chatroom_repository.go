package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"forum-service/internal/models"
)

var ErrRoomNotFound = errors.New("chat room not found")

// roomGreeting seeds the last-message field of a freshly opened room.
const roomGreeting = "Chat room opened."

// ChatRoomRepository abstracts the per-(post, guest) chat room records.
type ChatRoomRepository interface {
	FindOrCreate(ctx context.Context, post models.Post, guestID primitive.ObjectID) (models.ChatRoom, error)
	GetByID(ctx context.Context, id string) (models.ChatRoom, error)
	ListForGuest(ctx context.Context, guestID primitive.ObjectID) ([]models.ChatRoom, error)
}

// ChatRoomRepo is a mongo implementation of ChatRoomRepository.
type ChatRoomRepo struct {
	col *mongo.Collection
	now func() time.Time
}

// NewChatRoomRepo constructs a ChatRoomRepo.
func NewChatRoomRepo(database *mongo.Database) *ChatRoomRepo {
	return &ChatRoomRepo{col: database.Collection("chatroom"), now: time.Now}
}

// FindOrCreate returns the room for (post, guest), creating it on first
// visit. The unique (post_id, guest) index backstops the find-then-insert
// race: if the insert loses, the winner's room is returned instead.
func (r *ChatRoomRepo) FindOrCreate(ctx context.Context, post models.Post, guestID primitive.ObjectID) (models.ChatRoom, error) {
	filter := bson.M{"post_id": post.ID.Hex(), "guest": guestID}

	var room models.ChatRoom
	err := r.col.FindOne(ctx, filter).Decode(&room)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.ChatRoom{}, err
	}

	room = models.ChatRoom{
		PostID:      post.ID.Hex(),
		Title:       post.Title,
		GuestID:     guestID,
		LastMsg:     roomGreeting,
		LastMsgTime: models.PrettyTime(r.now()),
	}
	res, err := r.col.InsertOne(ctx, room)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			err = r.col.FindOne(ctx, filter).Decode(&room)
			return room, err
		}
		return models.ChatRoom{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		room.ID = id
	}
	return room, nil
}

// GetByID fetches a room by its hex id.
func (r *ChatRoomRepo) GetByID(ctx context.Context, id string) (models.ChatRoom, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ChatRoom{}, ErrInvalidID
	}
	var room models.ChatRoom
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ChatRoom{}, ErrRoomNotFound
	}
	return room, err
}

// ListForGuest returns every room the guest has opened.
func (r *ChatRoomRepo) ListForGuest(ctx context.Context, guestID primitive.ObjectID) ([]models.ChatRoom, error) {
	cursor, err := r.col.Find(ctx, bson.M{"guest": guestID})
	if err != nil {
		return nil, err
	}
	rooms := []models.ChatRoom{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}
