package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
	"github.com/oksasatya/fashion-storefront/pkg/response"
)

const (
	CtxSessionKey = "session"
	CtxUserIDKey  = "userID"
)

// Session resolves the session_token cookie to a session, starting a fresh
// anonymous session when the cookie is absent, invalid or expired.
func Session(svc *application.SessionService, cookies *helpers.Manager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token, _ := c.Cookie(helpers.SessionCookie)
		sess, err := svc.Load(ctx, token)
		if err != nil {
			if !errors.Is(err, application.ErrSessionNotFound) && logger != nil {
				logger.WithError(err).Warn("session store unavailable, starting new session")
			}
			sess, err = svc.Start(ctx)
			if err != nil {
				helpers.LogError(logger, "start session failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
				response.Error[any](c, http.StatusInternalServerError, "session unavailable", nil)
				c.Abort()
				return
			}
			if err := IssueSessionCookie(c, svc, cookies, sess); err != nil {
				helpers.LogError(logger, "issue session token failed", err, nil)
				response.Error[any](c, http.StatusInternalServerError, "session unavailable", nil)
				c.Abort()
				return
			}
		}
		SetSession(c, sess)
		c.Next()
	}
}

// IssueSessionCookie signs a token for sess and sets the cookie.
func IssueSessionCookie(c *gin.Context, svc *application.SessionService, cookies *helpers.Manager, sess *entity.Session) error {
	tok, exp, err := svc.Issue(sess)
	if err != nil {
		return err
	}
	cookies.SetSession(c, tok, exp)
	return nil
}

// SetSession stores sess on the request context.
func SetSession(c *gin.Context, sess *entity.Session) {
	c.Set(CtxSessionKey, sess)
	if sess.Authenticated() {
		c.Set(CtxUserIDKey, strconv.Itoa(sess.UserID))
	} else {
		c.Set(CtxUserIDKey, "")
	}
}

// CurrentSession returns the session set by Session, or nil.
func CurrentSession(c *gin.Context) *entity.Session {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*entity.Session)
	return sess
}

// RequireAuth rejects anonymous sessions.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.Authenticated() {
			response.Error[any](c, http.StatusUnauthorized, application.ErrNotAuthenticated.Error(), nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects sessions whose role differs from role.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.Authenticated() {
			response.Error[any](c, http.StatusUnauthorized, application.ErrNotAuthenticated.Error(), nil)
			c.Abort()
			return
		}
		if sess.Role != role {
			response.Error[any](c, http.StatusForbidden, application.ErrForbidden.Error(), nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
