package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. Password carries the bcrypt hash and never
// serializes into responses.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
}

// Identity is the minimal view of a user stored alongside a session.
type Identity struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
}
