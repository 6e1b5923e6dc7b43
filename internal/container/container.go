package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/config"
	repo "github.com/oksasatya/fashion-storefront/internal/domain/repository"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher

	jwtManager *helpers.JWTManager

	products  repo.ProductRepository
	users     repo.UserRepository
	purchases repo.PurchaseRepository
	sessions  repo.SessionRepository
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

func SetProducts(r repo.ProductRepository)   { products = r }
func GetProducts() repo.ProductRepository    { return products }
func SetUsers(r repo.UserRepository)         { users = r }
func GetUsers() repo.UserRepository          { return users }
func SetPurchases(r repo.PurchaseRepository) { purchases = r }
func GetPurchases() repo.PurchaseRepository  { return purchases }
func SetSessions(r repo.SessionRepository)   { sessions = r }
func GetSessions() repo.SessionRepository    { return sessions }

// Limiter returns the Redis client for rate limiting, or nil when Redis is
// not configured. The typed nil never leaks into the interface.
func Limiter() redis.Scripter {
	if redisClient == nil {
		return nil
	}
	return redisClient
}
