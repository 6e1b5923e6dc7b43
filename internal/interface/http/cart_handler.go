package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
	"github.com/oksasatya/fashion-storefront/pkg/response"
	"github.com/oksasatya/fashion-storefront/pkg/validation"
)

type CartHandler struct {
	Svc    *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(svc *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Svc: svc, Logger: logger}
}

type addToCartRequest struct {
	Qty int `form:"qty,default=1" json:"qty" binding:"qty"`
}

func (h *CartHandler) View(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	response.Success(c, http.StatusOK, h.Svc.List(c.Request.Context(), sess), "cart", nil)
}

func (h *CartHandler) Add(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		fail(c, h.Logger, application.ErrProductNotFound)
		return
	}
	var req addToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, application.ErrInvalidQuantity.Error(), validation.ToDetails(err))
		return
	}
	sess := middleware.CurrentSession(c)
	if err := h.Svc.Add(c.Request.Context(), sess, id, req.Qty); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, h.Svc.List(c.Request.Context(), sess), "added to cart", nil)
}

func (h *CartHandler) Remove(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	// a non-numeric id cannot be in the cart
	if id, ok := idParam(c); ok {
		if err := h.Svc.Remove(c.Request.Context(), sess, id); err != nil {
			fail(c, h.Logger, err)
			return
		}
	}
	response.Success(c, http.StatusOK, h.Svc.List(c.Request.Context(), sess), "removed from cart", nil)
}
