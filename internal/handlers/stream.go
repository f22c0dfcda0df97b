package handlers

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jubili-gateway/internal/events"
)

// OrderStream is the server-push channel for order lifecycle events, keyed
// by user id. The stream ends after the first terminal event; a client
// disconnect tears the subscription down early.
func OrderStream(broker *events.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.Query("userId"))
		if userID == "" {
			respondWithError(c, http.StatusBadRequest, "STREAM", "userId is required")
			return
		}

		channel := events.OpenChannel(broker, userID)
		defer channel.Close()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		log.Println("[STREAM] [INFO] order stream opened, user:", userID)
		clientGone := c.Request.Context().Done()

		c.Stream(func(w io.Writer) bool {
			select {
			case event, open := <-channel.Events():
				if !open {
					// Channel closed itself after the terminal event.
					return false
				}
				c.SSEvent("message", event)
				return !event.Terminal()
			case <-clientGone:
				return false
			}
		})

		log.Println("[STREAM] [INFO] order stream closed, user:", userID)
	}
}
