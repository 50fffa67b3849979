package middleware

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyMiddleware gates the verify routes behind an X-API-Key header.
// API_KEY_HASH holds a bcrypt hash of the key, so the plaintext never
// lives in the environment. An unset hash leaves the routes open.
func APIKeyMiddleware() gin.HandlerFunc {
	keyHash := os.Getenv("API_KEY_HASH")
	if keyHash == "" {
		log.Println("API_KEY_HASH not set, verify endpoints are open")
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return func(c *gin.Context) {
		clientKey := c.GetHeader("X-API-Key")

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(clientKey)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid API key"})
			return
		}
		c.Next()
	}
}
