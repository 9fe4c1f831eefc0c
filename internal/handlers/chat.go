package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum-service/internal/middleware"
	"forum-service/internal/repositories"
)

// ChatHandler manages the per-post chat room endpoints.
type ChatHandler struct {
	rooms repositories.ChatRoomRepository
	posts repositories.PostRepository
}

// NewChatHandler builds a ChatHandler.
func NewChatHandler(rooms repositories.ChatRoomRepository, posts repositories.PostRepository) *ChatHandler {
	return &ChatHandler{rooms: rooms, posts: posts}
}

// OpenRoom returns the chat room between the current user and the post,
// creating it on first visit. Revisits never create a second room.
func (h *ChatHandler) OpenRoom(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repositories.ErrInvalidID), errors.Is(err, repositories.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no such post"})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	room, err := h.rooms.FindOrCreate(c.Request.Context(), post, user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": room})
}

// ListRooms returns every room the current user has opened as a guest.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	rooms, err := h.rooms.ListForGuest(c.Request.Context(), user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": rooms})
}
