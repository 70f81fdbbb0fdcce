package middleware

import (
	"net"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/exercise-tracker/pkg/response"
)

// AllowPrivateIP reports whether the client comes from a loopback or private
// range (10.0.0.0/8, 172.16/12, 192.168/16, fc00::/7).
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// PrivateOnly hides a route from public clients by answering 404.
func PrivateOnly() gin.HandlerFunc {
	allow := AllowPrivateIP()
	return func(c *gin.Context) {
		if !allow(c) {
			response.Text(c, 404, "not found")
			c.Abort()
			return
		}
		c.Next()
	}
}
