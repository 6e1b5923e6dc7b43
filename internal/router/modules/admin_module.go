package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	handlers "github.com/oksasatya/fashion-storefront/internal/interface/http"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
	Session gin.HandlerFunc
}

func NewAdminModule(h *handlers.AdminHandler, session gin.HandlerFunc) *AdminModule {
	return &AdminModule{Handler: h, Session: session}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", m.Session, middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("", m.Handler.Dashboard)
		admin.POST("/catalog/reindex", m.Handler.Reindex)
		admin.POST("/history/export", m.Handler.ExportHistory)
	}
}
