package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/fashion-storefront/pkg/response"
)

// KeyFunc maps a request to its rate-limit bucket.
type KeyFunc func(c *gin.Context) string

// AllowFunc reports whether a request bypasses the limiter.
type AllowFunc func(c *gin.Context) bool

func clientIP(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// KeyByIP buckets every route together per client address.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "rl:ip:" + clientIP(c) }
}

// KeyByIPAndPath gives each route its own bucket per client address.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		return "rl:route:" + route + ":ip:" + clientIP(c)
	}
}

// hitScript counts a hit and returns {count, pttl}. The first hit of a
// window arms the expiry.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type window struct {
	count int64
	reset time.Duration
}

func hit(c *gin.Context, rdb redis.Scripter, key string, size time.Duration) (window, error) {
	vals, err := hitScript.Run(c.Request.Context(), rdb, []string{key}, size.Milliseconds()).Int64Slice()
	if err != nil {
		return window{}, err
	}
	w := window{count: vals[0]}
	if len(vals) > 1 && vals[1] > 0 {
		w.reset = time.Duration(vals[1]) * time.Millisecond
	}
	return w, nil
}

// RateLimit is a fixed-window limiter on Redis. It answers 429 once a bucket
// exceeds max hits per window and fails open on Redis errors. A nil client
// turns it into a no-op.
func RateLimit(rdb redis.Scripter, max int, size time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || size <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		w, err := hit(c, rdb, keyFn(c), size)
		if err != nil {
			c.Next()
			return
		}

		remaining := int64(max) - w.count
		if remaining < 0 {
			remaining = 0
		}
		resetSec := strconv.Itoa(int(w.reset.Round(time.Second).Seconds()))
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", resetSec)

		if w.count > int64(max) {
			c.Header("Retry-After", resetSec)
			response.Error[any](c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
