package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// serverError logs the full cause and responds with a generic 500 message.
func serverError(c *gin.Context, err error) {
	log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
}
