package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/fashion-storefront/config"
	"github.com/oksasatya/fashion-storefront/internal/container"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/csvstore"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/fashion-storefront/internal/infrastructure/postgres"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/redisstore"
	"github.com/oksasatya/fashion-storefront/internal/interface/middleware"
	"github.com/oksasatya/fashion-storefront/internal/router"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
	"github.com/oksasatya/fashion-storefront/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(helpers.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL))

	// Flat-file tables
	container.SetProducts(csvstore.NewProductRepository(cfg.ProductsCSV(), cfg.CatalogReload, logger))
	container.SetUsers(csvstore.NewUserRepository(cfg.UsersCSV()))

	// Purchase history
	switch cfg.HistoryDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		container.SetPGPool(pool)
		container.SetPurchases(pginfra.NewPurchaseRepository(pool))
	case "csv", "":
		container.SetPurchases(csvstore.NewHistoryRepository(cfg.HistoryCSV(), logger))
	default:
		log.Fatalf("unknown HISTORY_DRIVER %q", cfg.HistoryDriver)
	}

	// Sessions: Redis when configured, otherwise process memory
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.WithError(err).Warn("redis ping failed; sessions will error until it is reachable")
		}
		cancel()
		container.SetRedis(rdb)
		container.SetSessions(redisstore.NewSessionRepository(rdb, cfg.SessionTTL))
	} else {
		logger.Info("REDIS_ADDR not set; keeping sessions in memory")
		container.SetSessions(memory.NewSessionRepository(cfg.SessionTTL))
	}

	// Optional: catalog search index
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch disabled")
	} else if es != nil {
		container.SetES(es)
	}

	// Optional: history export bucket
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("GCS disabled")
		} else {
			defer func() { _ = gcsClient.Close() }()
			container.SetGCS(gcsClient)
		}
	}

	// Optional: email job queue
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; emails will not be queued")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}
