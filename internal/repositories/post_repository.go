package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"forum-service/internal/models"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidID    = errors.New("invalid id")
	ErrEmptyField   = errors.New("empty required field")
)

// PostsPerPage is the fixed page size of the post listing.
const PostsPerPage = 5

// UpdateScope controls whose posts an update may touch. UpdateOwnerOnly
// matches delete's ownership check; UpdateAnyMatch matches by id alone and
// exists so the looser behavior stays reachable and testable.
type UpdateScope int

const (
	UpdateOwnerOnly UpdateScope = iota
	UpdateAnyMatch
)

// PostRepository abstracts post persistence.
type PostRepository interface {
	Create(ctx context.Context, authorID primitive.ObjectID, authorName, title, content, imageURL string) (string, error)
	List(ctx context.Context) ([]models.Post, error)
	ListPage(ctx context.Context, page int) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	Update(ctx context.Context, id string, requesterID primitive.ObjectID, title, content string) error
	Delete(ctx context.Context, id string, requesterID primitive.ObjectID) (int64, error)
	Search(ctx context.Context, keyword string) ([]models.Post, error)
}

// PostRepo is a mongo implementation of PostRepository.
type PostRepo struct {
	col   *mongo.Collection
	scope UpdateScope
}

// NewPostRepo constructs a PostRepo with owner-only updates.
func NewPostRepo(database *mongo.Database) *PostRepo {
	return &PostRepo{col: database.Collection("post"), scope: UpdateOwnerOnly}
}

// NewPostRepoWithScope constructs a PostRepo with an explicit update scope.
func NewPostRepoWithScope(database *mongo.Database, scope UpdateScope) *PostRepo {
	return &PostRepo{col: database.Collection("post"), scope: scope}
}

// Create inserts a post and returns the new hex id.
func (r *PostRepo) Create(ctx context.Context, authorID primitive.ObjectID, authorName, title, content, imageURL string) (string, error) {
	if title == "" || content == "" {
		return "", ErrEmptyField
	}
	res, err := r.col.InsertOne(ctx, models.Post{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		AuthorID: authorID,
		Author:   authorName,
	})
	if err != nil {
		return "", err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("unexpected inserted id type")
	}
	return id.Hex(), nil
}

// List returns every post in natural insertion order.
func (r *PostRepo) List(ctx context.Context) ([]models.Post, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return drainPosts(ctx, cursor)
}

// ListPage returns page n of 5 posts in natural insertion order. A page past
// the end yields an empty slice, not an error.
func (r *PostRepo) ListPage(ctx context.Context, page int) ([]models.Post, error) {
	opts := options.Find().SetSkip(pageSkip(page)).SetLimit(PostsPerPage)
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return drainPosts(ctx, cursor)
}

// GetByID fetches a post. Malformed hex ids map to ErrInvalidID so callers
// can treat them like a missing document.
func (r *PostRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Post{}, ErrInvalidID
	}
	var post models.Post
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Post{}, ErrPostNotFound
	}
	return post, err
}

// Update rewrites title and content. Under UpdateOwnerOnly the filter also
// matches the author, so editing someone else's post reports ErrPostNotFound.
func (r *PostRepo) Update(ctx context.Context, id string, requesterID primitive.ObjectID, title, content string) error {
	if title == "" || content == "" {
		return ErrEmptyField
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	filter := bson.M{"_id": oid}
	if r.scope == UpdateOwnerOnly {
		filter["user"] = requesterID
	}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"title": title, "content": content}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes a post only when both id and author match. The deleted
// count is reported as-is; zero matches is not an error.
func (r *PostRepo) Delete(ctx context.Context, id string, requesterID primitive.ObjectID) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrInvalidID
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user": requesterID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Search runs a text search against the title index with the store's default
// relevance ordering.
func (r *PostRepo) Search(ctx context.Context, keyword string) ([]models.Post, error) {
	cursor, err := r.col.Find(ctx, bson.M{"$text": bson.M{"$search": keyword}})
	if err != nil {
		return nil, err
	}
	return drainPosts(ctx, cursor)
}

// pageSkip maps a 1-based page number to the offset of its first post; pages
// below 1 clamp to the first page.
func pageSkip(page int) int64 {
	if page < 1 {
		page = 1
	}
	return int64((page - 1) * PostsPerPage)
}

func drainPosts(ctx context.Context, cursor *mongo.Cursor) ([]models.Post, error) {
	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
