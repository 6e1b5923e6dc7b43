package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fashion-storefront/internal/container"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
)

// DebugModule serves the expvar counters (checkouts, logins, catalog load
// failures) at /debug/vars.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	limit := middleware.RateLimit(container.Limiter(), 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", limit, gin.WrapH(expvar.Handler()))
}
