package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// proxyHeaders are consulted in order; the first parseable address wins.
// X-Forwarded-For may hold a chain, only its left-most entry is the client.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For"}

// RealIP stores the client address under CtxRealIPKey for the rate limiter
// and access logs, falling back to gin's ClientIP.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, forwardedIP(c))
		c.Next()
	}
}

func forwardedIP(c *gin.Context) string {
	for _, h := range proxyHeaders {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first, _, _ := strings.Cut(v, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
