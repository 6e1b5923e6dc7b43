package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-storefront/config"
	"github.com/oksasatya/fashion-storefront/internal/container"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/csvstore"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/memory"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
	"github.com/oksasatya/fashion-storefront/internal/router"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
	"github.com/oksasatya/fashion-storefront/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   json.RawMessage `json:"error"`
}

type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func (c *client) do(method, path string, form url.Values) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && !strings.HasPrefix(path, "/debug") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type server struct {
	engine *gin.Engine
	users  *csvstore.UserRepository
}

func newServer(t *testing.T) server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	cfg := &config.Config{
		DataDir:             t.TempDir(),
		CatalogReload:       true,
		CatalogPageSize:     8,
		FeaturedCount:       8,
		SimilarCount:        4,
		SessionTTL:          time.Hour,
		DebugMetricsEnabled: true,
	}
	logger := helpers.NewDiscardLogger()

	products := csvstore.NewProductRepository(cfg.ProductsCSV(), cfg.CatalogReload, logger)
	catalog := make([]entity.Product, 0, 10)
	for i := 1; i <= 10; i++ {
		gender := "Men"
		if i%2 == 0 {
			gender = "Women"
		}
		catalog = append(catalog, entity.Product{
			ID: i, Name: fmt.Sprintf("Item %d", i), Category: "Shirts", Gender: gender,
			Color: "Blue", Size: "M", Price: entity.ParsePrice(fmt.Sprintf("%d.50", 10+i)),
		})
	}
	require.NoError(t, products.Save(catalog))
	users := csvstore.NewUserRepository(cfg.UsersCSV())

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager("test-secret", time.Hour))
	container.SetProducts(products)
	container.SetUsers(users)
	container.SetPurchases(csvstore.NewHistoryRepository(cfg.HistoryCSV(), logger))
	container.SetSessions(memory.NewSessionRepository(cfg.SessionTTL))
	container.SetRedis(nil)
	container.SetES(nil)
	container.SetGCS(nil)
	container.SetRabbitPub(nil)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()
	return server{engine: r, users: users}
}

func (s server) client(t *testing.T) *client {
	return &client{t: t, h: s.engine, cookies: map[string]*http.Cookie{}}
}

type pageBody struct {
	Items []struct {
		ID    int    `json:"id"`
		Price string `json:"price"`
	} `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Featured   []struct {
		ID int `json:"id"`
	} `json:"featured"`
}

type cartBody struct {
	Items []struct {
		Product struct {
			ID int `json:"id"`
		} `json:"product"`
		Qty int `json:"qty"`
	} `json:"items"`
	Total string `json:"total"`
}

func TestCatalogRoutes(t *testing.T) {
	srv := newServer(t)
	c := srv.client(t)

	w, env := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	home := decode[pageBody](t, env.Data)
	assert.Len(t, home.Items, 8)
	assert.Equal(t, 2, home.TotalPages)
	assert.Len(t, home.Featured, 8)
	assert.Empty(t, c.cookies, "browsing does not start a session")

	_, env = c.do(http.MethodGet, "/?page=abc", nil)
	assert.Equal(t, 1, decode[pageBody](t, env.Data).Page)

	_, env = c.do(http.MethodGet, "/?page=5", nil)
	assert.Empty(t, decode[pageBody](t, env.Data).Items)

	_, env = c.do(http.MethodGet, "/category/WOMEN?sort=price_desc", nil)
	women := decode[pageBody](t, env.Data)
	require.Len(t, women.Items, 5)
	assert.Equal(t, 10, women.Items[0].ID)
	assert.Equal(t, 2, women.Items[4].ID)
	assert.Equal(t, 1, women.TotalPages)

	_, env = c.do(http.MethodGet, "/category/pets", nil)
	assert.Empty(t, decode[pageBody](t, env.Data).Items)

	w, env = c.do(http.MethodGet, "/product/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	prod := decode[struct {
		Product struct {
			ID int `json:"id"`
		} `json:"product"`
		Similar []json.RawMessage `json:"similar"`
	}](t, env.Data)
	assert.Equal(t, 3, prod.Product.ID)
	assert.Len(t, prod.Similar, 4)

	w, _ = c.do(http.MethodGet, "/product/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = c.do(http.MethodGet, "/product/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = c.do(http.MethodGet, "/search?q=item%201", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 2) // Item 1, Item 10
}

func TestShoppingFlow(t *testing.T) {
	srv := newServer(t)
	c := srv.client(t)

	// anonymous cart
	w, env := c.do(http.MethodPost, "/cart/add/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, c.cookies, helpers.SessionCookie)
	anonToken := c.cookies[helpers.SessionCookie].Value

	_, env = c.do(http.MethodPost, "/cart/add/1", url.Values{"qty": {"2"}})
	cart := decode[cartBody](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Qty)
	assert.Equal(t, "34.5", cart.Total)

	w, _ = c.do(http.MethodPost, "/cart/add/1", url.Values{"qty": {"0"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = c.do(http.MethodPost, "/cart/add/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = c.do(http.MethodGet, "/cart/remove/999", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// checkout needs a login and leaves the cart alone
	w, _ = c.do(http.MethodPost, "/checkout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, env = c.do(http.MethodGet, "/cart", nil)
	assert.Equal(t, 3, decode[cartBody](t, env.Data).Items[0].Qty)

	// registration
	reg := url.Values{
		"username": {"ana"}, "email": {"ana@example.com"},
		"password": {"secret1"}, "confirm_password": {"secret1"},
		"preferred_color": {"Blue"},
	}
	w, _ = c.do(http.MethodPost, "/register", reg)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	reg.Set("email", "ANA@example.com")
	w, _ = c.do(http.MethodPost, "/register", reg)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = c.do(http.MethodPost, "/register", url.Values{"username": {"x"}, "email": {"x@example.com"}, "password": {"a"}, "confirm_password": {"b"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = c.do(http.MethodPost, "/register", url.Values{"username": {"x"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// login
	w, wrongPwd := c.do(http.MethodPost, "/login", url.Values{"username": {"ana"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, unknown := c.do(http.MethodPost, "/login", url.Values{"username": {"bob"}, "password": {"nope"}})
	assert.Equal(t, wrongPwd.Message, unknown.Message)

	w, _ = c.do(http.MethodPost, "/login", url.Values{"username": {"Ana@Example.com"}, "password": {"secret1"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEqual(t, anonToken, c.cookies[helpers.SessionCookie].Value)

	_, env = c.do(http.MethodGet, "/checkout", nil)
	summary := decode[struct {
		cartBody
		Authenticated bool `json:"authenticated"`
	}](t, env.Data)
	assert.True(t, summary.Authenticated)
	require.Len(t, summary.Items, 1, "cart survives login")

	w, env = c.do(http.MethodPost, "/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[struct {
		Recorded []struct {
			ProductID  int    `json:"product_id"`
			Quantity   int    `json:"quantity"`
			TotalSpent string `json:"total_spent"`
		} `json:"recorded"`
	}](t, env.Data)
	require.Len(t, res.Recorded, 1)
	assert.Equal(t, "34.5", res.Recorded[0].TotalSpent)

	_, env = c.do(http.MethodGet, "/cart", nil)
	assert.Empty(t, decode[cartBody](t, env.Data).Items)

	w, env = c.do(http.MethodGet, "/account/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)

	w, _ = c.do(http.MethodGet, "/account", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"preferred_color":"Blue"`)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")

	w, _ = c.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// logout drops identity
	w, _ = c.do(http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = c.do(http.MethodGet, "/account", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	srv := newServer(t)
	c := srv.client(t)

	w, _ := c.do(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pwd := "adminpass"
	w, _ = c.do(http.MethodPost, "/register", url.Values{
		"username": {"root"}, "email": {"root@example.com"}, "password": {pwd}, "confirm_password": {pwd},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, srv.users.SetRole(context.Background(), 1, entity.RoleAdmin))

	w, _ = c.do(http.MethodPost, "/login", url.Values{"username": {"root"}, "password": {pwd}})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := c.do(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 10)

	w, _ = c.do(http.MethodPost, "/admin/history/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w, _ = c.do(http.MethodPost, "/admin/catalog/reindex", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDebugVars(t *testing.T) {
	srv := newServer(t)
	w, _ := srv.client(t).do(http.MethodGet, "/debug/vars", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "checkouts")
}
