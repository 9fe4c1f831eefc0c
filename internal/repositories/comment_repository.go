package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"forum-service/internal/models"
)

// CommentRepository abstracts the append-only comment collection.
type CommentRepository interface {
	Add(ctx context.Context, postID, authorID primitive.ObjectID, authorName, content string) (models.Comment, error)
	ListForPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error)
}

// CommentRepo is a mongo implementation of CommentRepository.
type CommentRepo struct {
	col *mongo.Collection
	now func() time.Time
}

// NewCommentRepo constructs a CommentRepo.
func NewCommentRepo(database *mongo.Database) *CommentRepo {
	return &CommentRepo{col: database.Collection("comment"), now: time.Now}
}

// Add appends a comment with a locally formatted timestamp string.
func (r *CommentRepo) Add(ctx context.Context, postID, authorID primitive.ObjectID, authorName, content string) (models.Comment, error) {
	if content == "" {
		return models.Comment{}, ErrEmptyField
	}
	comment := models.Comment{
		ParentID: postID,
		WriterID: authorID,
		Writer:   authorName,
		Content:  content,
		Time:     models.PrettyTime(r.now()),
	}
	res, err := r.col.InsertOne(ctx, comment)
	if err != nil {
		return models.Comment{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		comment.ID = id
	}
	return comment, nil
}

// ListForPost returns the comments under a post in insertion order.
func (r *CommentRepo) ListForPost(ctx context.Context, postID primitive.ObjectID) ([]models.Comment, error) {
	cursor, err := r.col.Find(ctx, bson.M{"parent_id": postID})
	if err != nil {
		return nil, err
	}
	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
