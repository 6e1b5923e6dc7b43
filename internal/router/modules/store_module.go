package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fashion-storefront/internal/container"
	handlers "github.com/oksasatya/fashion-storefront/internal/interface/http"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
)

// StoreModule wires the catalog, cart and checkout routes.
// Catalog pages are public and stateless; cart and checkout run behind the
// session middleware.
type StoreModule struct {
	Catalog  *handlers.CatalogHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Session  gin.HandlerFunc
}

func NewStoreModule(catalog *handlers.CatalogHandler, cart *handlers.CartHandler, checkout *handlers.CheckoutHandler, session gin.HandlerFunc) *StoreModule {
	return &StoreModule{Catalog: catalog, Cart: cart, Checkout: checkout, Session: session}
}

func (m *StoreModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Catalog.Index)
	rg.GET("/category/:segment", m.Catalog.Category)
	rg.GET("/product/:id", m.Catalog.Product)

	searchLimiter := middleware.RateLimit(container.Limiter(), 60, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/search", searchLimiter, m.Catalog.Search)

	cart := rg.Group("/cart", m.Session)
	{
		cart.GET("", m.Cart.View)
		cart.POST("", m.Cart.View)
		cart.POST("/add/:id", m.Cart.Add)
		cart.GET("/add/:id", m.Cart.Add)
		cart.GET("/remove/:id", m.Cart.Remove)
	}

	checkout := rg.Group("/checkout", m.Session)
	{
		checkout.GET("", m.Checkout.Summary)
		checkout.POST("", m.Checkout.Checkout)
	}
}
