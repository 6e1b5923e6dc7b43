package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/pkg/response"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

type categoryQuery struct {
	Size  string `form:"size"`
	Color string `form:"color"`
	Sort  string `form:"sort"`
}

// Index lists the whole catalog, newest first, with the featured strip.
func (h *CatalogHandler) Index(c *gin.Context) {
	home := h.Svc.Home(c.Request.Context(), pageParam(c))
	response.Success(c, http.StatusOK, home, "catalog", nil)
}

// Category lists one gender segment with optional size/color filters.
func (h *CatalogHandler) Category(c *gin.Context) {
	var q categoryQuery
	// unknown or malformed filters fall back to "no filter"
	_ = c.ShouldBindQuery(&q)

	segment := c.Param("segment")
	page := h.Svc.Browse(c.Request.Context(), application.QueryParams{
		Segment: segment,
		Size:    q.Size,
		Color:   q.Color,
		Sort:    application.ParseSortOrder(q.Sort),
		Page:    pageParam(c),
	})
	response.Success(c, http.StatusOK, page, "catalog", gin.H{
		"segment": segment,
		"size":    q.Size,
		"color":   q.Color,
		"sort":    application.ParseSortOrder(q.Sort),
	})
}

type productView struct {
	Product entity.Product   `json:"product"`
	Similar []entity.Product `json:"similar"`
}

func (h *CatalogHandler) Product(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, h.Logger, application.ErrProductNotFound)
		return
	}
	p, similar, err := h.Svc.Product(c.Request.Context(), id)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, productView{Product: p, Similar: similar}, "product", nil)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.Query("size"))
	items := h.Svc.Search(c.Request.Context(), q, size)
	response.Success(c, http.StatusOK, items, "search results", gin.H{"q": q, "count": len(items)})
}
