package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ChatRoom is the one conversation between a post and a visiting guest.
// Title and the last-message fields are denormalized when the room is first
// opened and never refreshed afterwards.
type ChatRoom struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID      string             `bson:"post_id" json:"post_id"`
	Title       string             `bson:"title" json:"title"`
	GuestID     primitive.ObjectID `bson:"guest" json:"guest"`
	LastMsg     string             `bson:"last_msg" json:"last_msg"`
	LastMsgTime string             `bson:"last_msg_time" json:"last_msg_time"`
}

// RoomFrame is what a websocket client sends on the room channel.
type RoomFrame struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Msg  string `json:"msg,omitempty"`
}
