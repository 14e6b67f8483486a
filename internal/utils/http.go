package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealClientIP extracts the client IP behind a reverse proxy, preferring
// X-Real-IP, then the first X-Forwarded-For hop, then gin's own resolution.
func GetRealClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if ips := strings.Split(xff, ","); len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	return c.ClientIP()
}
