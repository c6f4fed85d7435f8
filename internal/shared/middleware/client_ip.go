package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIPKey holds the caller address in the gin context
const ClientIPKey = "client_ip"

// ClientIP resolves the caller address once per request. Function
// deployments sit behind the platform proxy, so forwarded headers win
// over RemoteAddr.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIPKey, ExtractClientIP(c))
		c.Next()
	}
}

// ExtractClientIP checks X-Forwarded-For (first hop), then X-Real-IP, then
// RemoteAddr. Invalid values are skipped.
func ExtractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); isValidIP(ip) {
			return ip
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); isValidIP(xri) {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		ip = c.Request.RemoteAddr
	}
	if isValidIP(ip) {
		return ip
	}
	return ""
}

func isValidIP(ip string) bool {
	return ip != "" && net.ParseIP(ip) != nil
}
