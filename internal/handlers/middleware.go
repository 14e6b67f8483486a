package handlers

import (
	"log"
	"net/http"
	"strings"

	"workshopmailer/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the ops endpoints with a static bearer token.
// If no token is configured, the endpoints are disabled outright.
func AdminAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin endpoints are disabled"})
			return
		}

		header := c.GetHeader("Authorization")
		provided := strings.TrimPrefix(header, "Bearer ")
		if header == "" || provided == header || provided != token {
			log.Printf("Rejected admin request from %s", utils.GetRealClientIP(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin token"})
			return
		}

		c.Next()
	}
}
