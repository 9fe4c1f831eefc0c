package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"forum-service/internal/middleware"
	"forum-service/internal/models"
	"forum-service/internal/observability"
	"forum-service/internal/repositories"
	"forum-service/internal/telemetry"
)

// broadcastReply is the fixed acknowledgment broadcast to a room when any
// member sends a message. Message content is not persisted.
const broadcastReply = "message received"

// RoomWebSocketHandler speaks the chat room channel protocol: a join frame
// subscribes the connection to a room, message frames trigger a broadcast to
// every member of that room.
type RoomWebSocketHandler struct {
	hub   *Hub
	rooms repositories.ChatRoomRepository
}

// NewRoomWebSocketHandler constructs a RoomWebSocketHandler.
func NewRoomWebSocketHandler(hub *Hub, rooms repositories.ChatRoomRepository) *RoomWebSocketHandler {
	return &RoomWebSocketHandler{hub: hub, rooms: rooms}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and runs the frame loop until the client
// disconnects.
func (h *RoomWebSocketHandler) Handle(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	ctx, span := telemetry.Tracer().Start(c.Request.Context(), "ws.handshake")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	span.End()
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		UserID:      user.ID,
		Username:    user.Username,
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		ConnectedAt: time.Now(),
	}

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")

	// The read loop stays on the request goroutine: returning from the
	// handler cancels the request context the room lookups need.
	joined := make(map[string]bool)
	defer func() {
		for roomID := range joined {
			h.hub.RemoveClient(roomID, conn)
		}
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
			}
			return
		}

		var frame models.RoomFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}

		switch frame.Type {
		case "join":
			if _, err := h.rooms.GetByID(ctx, frame.Room); err != nil {
				log.Printf("join rejected for room %s: %v", frame.Room, err)
				continue
			}
			h.hub.AddClient(frame.Room, conn, info)
			joined[frame.Room] = true
			observability.IncWSEvent("room_join")
		case "message":
			if !joined[frame.Room] {
				continue
			}
			log.Printf("room %s message from %s", frame.Room, info.Username)
			h.hub.Broadcast(frame.Room, broadcastReply)
			observability.IncWSEvent("room_message")
		}
	}
}
