package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
	"github.com/oksasatya/fashion-storefront/pkg/response"
)

type CheckoutHandler struct {
	Svc    *application.CheckoutService
	Logger *logrus.Logger
}

func NewCheckoutHandler(svc *application.CheckoutService, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{Svc: svc, Logger: logger}
}

type checkoutSummary struct {
	application.CartView
	Authenticated bool `json:"authenticated"`
}

// Summary shows what a checkout would record. Nothing is changed.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	view := h.Svc.Summary(c.Request.Context(), sess)
	response.Success(c, http.StatusOK, checkoutSummary{CartView: view, Authenticated: sess.Authenticated()}, "checkout summary", nil)
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	res, err := h.Svc.Checkout(c.Request.Context(), middleware.CurrentSession(c))
	if errors.Is(err, application.ErrCheckoutIncomplete) {
		// failed lines stay in the cart for a retry
		response.Error[any](c, http.StatusInternalServerError, err.Error(), res)
		return
	}
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "purchase complete", nil)
}
