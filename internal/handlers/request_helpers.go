package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jubili-gateway/internal/checkout"
)

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// identityFromContext rebuilds the authenticated caller from the values the
// auth middleware injected.
func identityFromContext(c *gin.Context) (checkout.Identity, bool) {
	userID, ok := c.Get("userId")
	if !ok {
		return checkout.Identity{}, false
	}
	return checkout.Identity{
		UserID: userID.(string),
		Name:   c.GetString("userName"),
		Email:  c.GetString("userEmail"),
		Phone:  c.GetString("userPhone"),
		Token:  c.GetString("userToken"),
	}, true
}

func requireIdentity(c *gin.Context, route string) (checkout.Identity, bool) {
	id, ok := identityFromContext(c)
	if !ok {
		log.Printf("[%s] [ERROR] userId missing in context", route)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}
