package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
	"github.com/oksasatya/fashion-storefront/pkg/response"
)

// statusFor maps an application error class to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, application.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrExportUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error envelope for err. Server-side errors are logged and
// reported with a generic message.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"user_id":    c.GetString(middleware.CtxUserIDKey),
		})
		response.Error[any](c, status, http.StatusText(status), nil)
		return
	}
	response.Error[any](c, status, err.Error(), nil)
}

// pageParam reads ?page=, treating anything that is not a positive integer as 1.
func pageParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// idParam reads the :id path parameter; ok is false when it is not an integer.
func idParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("id"))
	return n, err == nil
}
