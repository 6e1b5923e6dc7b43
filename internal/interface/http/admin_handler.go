package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/pkg/response"
)

type AdminHandler struct {
	Catalog *application.CatalogService
	Reports *application.ReportService
	Logger  *logrus.Logger
}

func NewAdminHandler(catalog *application.CatalogService, reports *application.ReportService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Catalog: catalog, Reports: reports, Logger: logger}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	products := h.Catalog.All(c.Request.Context())
	response.Success(c, http.StatusOK, products, "catalog", gin.H{"count": len(products)})
}

func (h *AdminHandler) Reindex(c *gin.Context) {
	if h.Catalog.Index == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "search index not configured", nil)
		return
	}
	n, err := h.Catalog.Reindex(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"indexed": n}, "catalog reindexed", nil)
}

func (h *AdminHandler) ExportHistory(c *gin.Context) {
	res, err := h.Reports.ExportPurchases(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "purchase history exported", nil)
}
