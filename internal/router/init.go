package router

import (
	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/container"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/search"
	handlers "github.com/oksasatya/fashion-storefront/internal/interface/http"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
	"github.com/oksasatya/fashion-storefront/internal/router/modules"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

// Deps holds the services and handlers shared by the route modules.
type Deps struct {
	Sessions *application.SessionService
	Catalog  *application.CatalogService
	Cart     *application.CartService
	Checkout *application.CheckoutService
	Accounts *application.AccountService
	Reports  *application.ReportService

	Cookies *helpers.Manager
}

// BuildDeps wires the application services from the container singletons.
// Optional adapters (search index, job publisher, GCS) are only assigned when
// their client exists, so the services see a nil interface otherwise.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	products := container.GetProducts()
	users := container.GetUsers()
	purchases := container.GetPurchases()

	catalog := application.NewCatalogService(products, nil, logger, cfg.CatalogPageSize, cfg.FeaturedCount, cfg.SimilarCount)
	if es := container.GetES(); es != nil {
		catalog.Index = search.NewCatalogIndex(es, cfg.ESProductsIndex, logger)
	}

	var pub application.JobPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	sessions := application.NewSessionService(container.GetSessions(), container.GetJWT(), logger)
	return Deps{
		Sessions: sessions,
		Catalog:  catalog,
		Cart:     application.NewCartService(products, sessions),
		Checkout: application.NewCheckoutService(products, purchases, users, sessions, pub, cfg, logger),
		Accounts: application.NewAccountService(users, purchases, pub, cfg, logger),
		Reports:  application.NewReportService(purchases, container.GetGCS(), cfg.GCSBucket, logger),
		Cookies:  helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	InitModulesWith(r, BuildDeps())
}

func InitModulesWith(r *Registry, d Deps) {
	logger := container.GetLogger()
	session := middleware.Session(d.Sessions, d.Cookies, logger)

	r.Add(modules.NewStoreModule(
		handlers.NewCatalogHandler(d.Catalog, logger),
		handlers.NewCartHandler(d.Cart, logger),
		handlers.NewCheckoutHandler(d.Checkout, logger),
		session,
	))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(d.Accounts, d.Sessions, d.Cookies, logger), session))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(d.Catalog, d.Reports, logger), session))
	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
