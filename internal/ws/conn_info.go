package ws

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConnInfo struct {
	ConnID      string
	UserID      primitive.ObjectID
	Username    string
	IP          string
	RequestID   string
	ConnectedAt time.Time
}
