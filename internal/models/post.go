package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Post is a forum article. Author name is denormalized at creation time.
type Post struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Content  string             `bson:"content" json:"content"`
	ImageURL string             `bson:"img" json:"img,omitempty"`
	AuthorID primitive.ObjectID `bson:"user" json:"user"`
	Author   string             `bson:"username" json:"username"`
}

// Comment hangs off a post. Comments are append-only; there is no edit or
// delete, and comments survive the deletion of their parent.
type Comment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ParentID primitive.ObjectID `bson:"parent_id" json:"parent_id"`
	WriterID primitive.ObjectID `bson:"writer_id" json:"writer_id"`
	Writer   string             `bson:"writer" json:"writer"`
	Content  string             `bson:"content" json:"content"`
	Time     string             `bson:"time" json:"time"`
}
