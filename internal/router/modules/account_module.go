package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fashion-storefront/internal/interface/http"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
)

// AccountModule wires login, registration, logout and the account pages.
// Login has no rate limit.
type AccountModule struct {
	Handler *handlers.AccountHandler
	Session gin.HandlerFunc
}

func NewAccountModule(h *handlers.AccountHandler, session gin.HandlerFunc) *AccountModule {
	return &AccountModule{Handler: h, Session: session}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/", m.Session)
	g.GET("/login", m.Handler.Status)
	g.POST("/login", m.Handler.Login)
	g.GET("/register", m.Handler.Status)
	g.POST("/register", m.Handler.Register)
	g.GET("/logout", m.Handler.Logout)

	auth := g.Group("/account", middleware.RequireAuth())
	{
		auth.GET("", m.Handler.Profile)
		auth.GET("/history", m.Handler.History)
	}
}
