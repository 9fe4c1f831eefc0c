package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"forum-service/internal/middleware"
	"forum-service/internal/models"
	"forum-service/internal/repositories"
	"forum-service/internal/storage"
	"forum-service/internal/telemetry"
)

// PostHandler manages the post listing and CRUD endpoints.
type PostHandler struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	uploads  storage.Store
	emitter  *telemetry.AuditEmitter
}

// NewPostHandler builds a PostHandler.
func NewPostHandler(posts repositories.PostRepository, comments repositories.CommentRepository, uploads storage.Store, emitter *telemetry.AuditEmitter) *PostHandler {
	return &PostHandler{posts: posts, comments: comments, uploads: uploads, emitter: emitter}
}

// Home serves the landing payload.
func (h *PostHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "forum"})
}

// List returns every post.
func (h *PostHandler) List(c *gin.Context) {
	log.Println(models.PrettyTime(time.Now()))

	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}

	payload := gin.H{"posts": posts}
	if user, ok := middleware.CurrentUser(c); ok {
		payload["user"] = user
	}
	c.JSON(http.StatusOK, payload)
}

// ListPage returns one page of five posts.
func (h *PostHandler) ListPage(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such page"})
		return
	}

	posts, err := h.posts.ListPage(c.Request.Context(), page)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// Detail returns a post with its comments.
func (h *PostHandler) Detail(c *gin.Context) {
	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, repositories.ErrInvalidID), errors.Is(err, repositories.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no such post"})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	comments, err := h.comments.ListForPost(c.Request.Context(), post.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "comments": comments})
}

// UpdateForm returns the post for the edit page; owners only.
func (h *PostHandler) UpdateForm(c *gin.Context) {
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

	if post.AuthorID != user.ID {
		c.JSON(http.StatusOK, gin.H{"message": "you can only edit your own posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// WriteForm serves the write page payload.
func (h *PostHandler) WriteForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"time": time.Now()})
}

// Add creates a post from a multipart form with an optional image upload.
func (h *PostHandler) Add(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		// Checked before the upload is stored; a rejected post must not
		// leave an orphaned file behind.
		c.JSON(http.StatusOK, gin.H{"message": "title and content are required"})
		return
	}

	imageURL := ""
	if header, err := c.FormFile("img1"); err == nil && header != nil {
		file, err := header.Open()
		if err != nil {
			serverError(c, err)
			return
		}
		defer file.Close()

		key := strconv.FormatInt(time.Now().UnixMilli(), 10)
		imageURL, err = h.uploads.Save(c.Request.Context(), key, file)
		if err != nil {
			serverError(c, err)
			return
		}
	}

	id, err := h.posts.Create(c.Request.Context(), user.ID, user.Username, title, content, imageURL)
	switch {
	case errors.Is(err, repositories.ErrEmptyField):
		c.JSON(http.StatusOK, gin.H{"message": "title and content are required"})
	case err != nil:
		serverError(c, err)
	default:
		userID := user.ID.Hex()
		h.emitter.Emit(c.Request.Context(), "create", "post", id, requestIDFromContext(c), &userID)
		c.Redirect(http.StatusSeeOther, "/list")
	}
}

// Edit rewrites a post's title and content.
func (h *PostHandler) Edit(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	title := c.PostForm("title")
	content := c.PostForm("content")

	err := h.posts.Update(c.Request.Context(), c.Param("id"), user.ID, title, content)
	switch {
	case errors.Is(err, repositories.ErrEmptyField):
		c.JSON(http.StatusOK, gin.H{"message": "title and content are required"})
	case errors.Is(err, repositories.ErrInvalidID), errors.Is(err, repositories.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no such post"})
	case err != nil:
		serverError(c, err)
	default:
		c.Redirect(http.StatusSeeOther, "/list")
	}
}

// Delete removes a post the requester owns. An ownership mismatch shows up
// only as a zero deleted count.
func (h *PostHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	deleted, err := h.posts.Delete(c.Request.Context(), c.Param("id"), user.ID)
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		c.JSON(http.StatusNotFound, gin.H{"error": "no such post"})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	if deleted == 1 {
		userID := user.ID.Hex()
		h.emitter.Emit(c.Request.Context(), "delete", "post", c.Param("id"), requestIDFromContext(c), &userID)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Search runs a title text search.
func (h *PostHandler) Search(c *gin.Context) {
	keyword := c.PostForm("search")

	posts, err := h.posts.Search(c.Request.Context(), keyword)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
