package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum-service/internal/feed"
)

// StreamHandler serves the live new-post event stream.
type StreamHandler struct {
	broker *feed.Broker
}

// NewStreamHandler builds a StreamHandler.
func NewStreamHandler(broker *feed.Broker) *StreamHandler {
	return &StreamHandler{broker: broker}
}

// ListStream holds the connection open and writes one text event per newly
// inserted post. There is no replay; the subscription ends when the client
// disconnects.
func (h *StreamHandler) ListStream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	sub := h.broker.Subscribe()
	defer h.broker.Unsubscribe(sub)

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case post, open := <-sub.C:
			if !open {
				return
			}
			payload, err := json.Marshal(post)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: msg\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
