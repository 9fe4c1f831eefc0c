package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-service/internal/middleware"
	"forum-service/internal/repositories"
)

// CommentHandler manages the append-only comment endpoint.
type CommentHandler struct {
	comments repositories.CommentRepository
}

// NewCommentHandler builds a CommentHandler.
func NewCommentHandler(comments repositories.CommentRepository) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Add appends a comment under a post.
func (h *CommentHandler) Add(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such post"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	content := c.PostForm("content")

	_, err = h.comments.Add(c.Request.Context(), postID, user.ID, user.Username, content)
	switch {
	case errors.Is(err, repositories.ErrEmptyField):
		c.JSON(http.StatusOK, gin.H{"message": "comment content is required"})
	case err != nil:
		serverError(c, err)
	default:
		c.Redirect(http.StatusSeeOther, "/detail/"+c.Param("id"))
	}
}
