package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum-service/internal/repositories"
)

// ShopHandler serves the two informational shop pages.
type ShopHandler struct {
	posts repositories.PostRepository
}

// NewShopHandler builds a ShopHandler.
func NewShopHandler(posts repositories.PostRepository) *ShopHandler {
	return &ShopHandler{posts: posts}
}

// Shirts serves the shirts page, including the current post count.
func (h *ShopHandler) Shirts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "shirts", "posts": len(posts)})
}

// Pants serves the pants page.
func (h *ShopHandler) Pants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "pants"})
}
