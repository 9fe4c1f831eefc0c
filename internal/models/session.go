package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the server-side record behind the session cookie. The token is
// the document id; expiry slides forward on every authenticated request.
type Session struct {
	Token     string             `bson:"_id" json:"token"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Username  string             `bson:"username" json:"username"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

// PrettyTime renders t the way list pages and chat rooms display it:
// slash-separated date, colon-separated time, no zero padding.
func PrettyTime(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %d:%d:%d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}
