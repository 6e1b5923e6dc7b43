package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
	"github.com/oksasatya/fashion-storefront/pkg/response"
	"github.com/oksasatya/fashion-storefront/pkg/validation"
)

type AccountHandler struct {
	Accounts *application.AccountService
	Sessions *application.SessionService
	Cookies  *helpers.Manager
	Logger   *logrus.Logger
}

func NewAccountHandler(accounts *application.AccountService, sessions *application.SessionService, cookies *helpers.Manager, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Sessions: sessions, Cookies: cookies, Logger: logger}
}

// username accepts either the username or the email address
type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password" binding:"omitempty,pwd"`
}

type registerRequest struct {
	Username         string `form:"username" json:"username" binding:"max=64"`
	Email            string `form:"email" json:"email" binding:"max=254"`
	Password         string `form:"password" json:"password" binding:"omitempty,pwd"`
	ConfirmPassword  string `form:"confirm_password" json:"confirm_password"`
	Gender           string `form:"gender" json:"gender"`
	Age              string `form:"age" json:"age"`
	Location         string `form:"location" json:"location"`
	PreferredColor   string `form:"preferred_color" json:"preferred_color"`
	PreferredBrand   string `form:"preferred_brand" json:"preferred_brand"`
	FavoriteCategory string `form:"favorite_category" json:"favorite_category"`
}

type profileView struct {
	ID               int        `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	Gender           string     `json:"gender,omitempty"`
	Age              string     `json:"age,omitempty"`
	Location         string     `json:"location,omitempty"`
	PreferredColor   string     `json:"preferred_color,omitempty"`
	PreferredBrand   string     `json:"preferred_brand,omitempty"`
	FavoriteCategory string     `json:"favorite_category,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
}

func toProfileView(u *entity.User) profileView {
	v := profileView{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Role:             string(u.Role),
		Gender:           u.Gender,
		Age:              u.Age,
		Location:         u.Location,
		PreferredColor:   u.PreferredColor,
		PreferredBrand:   u.PreferredBrand,
		FavoriteCategory: u.FavoriteCategory,
		CreatedAt:        u.CreatedAt,
	}
	if !u.LastLogin.IsZero() {
		t := u.LastLogin
		v.LastLogin = &t
	}
	return v
}

// Status reports who the session belongs to; it backs GET /login and GET /register.
func (h *AccountHandler) Status(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	response.Success(c, http.StatusOK, gin.H{
		"authenticated": sess.Authenticated(),
		"role":          sess.Role,
	}, "session", nil)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ctx := c.Request.Context()
	u, err := h.Accounts.Login(ctx, req.Username, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}

	next, err := h.Sessions.Login(ctx, middleware.CurrentSession(c), u)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if err := middleware.IssueSessionCookie(c, h.Sessions, h.Cookies, next); err != nil {
		fail(c, h.Logger, err)
		return
	}
	middleware.SetSession(c, next)
	response.Success(c, http.StatusOK, toProfileView(u), "login successful", nil)
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Accounts.Register(c.Request.Context(), application.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Profile: entity.Profile{
			Gender:           req.Gender,
			Age:              req.Age,
			Location:         req.Location,
			PreferredColor:   req.PreferredColor,
			PreferredBrand:   req.PreferredBrand,
			FavoriteCategory: req.FavoriteCategory,
		},
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toProfileView(u), "registration successful", nil)
}

func (h *AccountHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.Sessions.Logout(c.Request.Context(), sess); err != nil {
		helpers.LogError(h.Logger, "logout: delete session failed", err, logrus.Fields{"session_id": sess.ID})
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

func (h *AccountHandler) Profile(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	u, err := h.Accounts.FindByID(c.Request.Context(), sess.UserID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toProfileView(u), "profile", nil)
}

func (h *AccountHandler) History(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	records := h.Accounts.History(c.Request.Context(), sess.UserID)
	response.Success(c, http.StatusOK, records, "purchase history", gin.H{"count": len(records)})
}
