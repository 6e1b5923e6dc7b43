package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/fashion-storefront/config"
	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/infrastructure/csvstore"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

// demoCatalog is written only when the products table does not exist yet.
var demoCatalog = []struct {
	name, category, gender, color, size, price string
}{
	{"Linen Shirt", "Shirts", "Men", "White", "M", "39.90"},
	{"Oxford Shirt", "Shirts", "Men", "Blue", "L", "44.50"},
	{"Slim Chinos", "Trousers", "Men", "Beige", "M", "49.00"},
	{"Denim Jacket", "Jackets", "Men", "Blue", "L", "89.00"},
	{"Wrap Dress", "Dresses", "Women", "Red", "S", "59.90"},
	{"Pleated Skirt", "Skirts", "Women", "Black", "M", "34.00"},
	{"Silk Blouse", "Shirts", "Women", "Ivory", "S", "64.00"},
	{"Trench Coat", "Jackets", "Women", "Beige", "M", "129.00"},
	{"Graphic Tee", "Shirts", "Kids", "Yellow", "S", "12.50"},
	{"Rain Jacket", "Jackets", "Kids", "Green", "M", "29.90"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}

	if _, err := os.Stat(cfg.ProductsCSV()); errors.Is(err, os.ErrNotExist) {
		products := make([]entity.Product, 0, len(demoCatalog))
		for i, p := range demoCatalog {
			products = append(products, entity.Product{
				ID:       i + 1,
				Name:     p.name,
				Category: p.category,
				Gender:   p.gender,
				Color:    p.color,
				Size:     p.size,
				Price:    entity.ParsePrice(p.price),
				Image:    fmt.Sprintf("images/product-%d.jpg", i+1),
			})
		}
		if err := csvstore.NewProductRepository(cfg.ProductsCSV(), true, logger).Save(products); err != nil {
			log.Fatalf("failed to seed products: %v", err)
		}
		fmt.Printf("seeded %d products into %s\n", len(products), cfg.ProductsCSV())
	}

	users := csvstore.NewUserRepository(cfg.UsersCSV())
	accounts := application.NewAccountService(users, csvstore.NewHistoryRepository(cfg.HistoryCSV(), logger), nil, cfg, logger)

	username := envOr("SEED_ADMIN_USERNAME", "admin")
	email := envOr("SEED_ADMIN_EMAIL", "admin@example.com")
	password := envOr("SEED_ADMIN_PASSWORD", "password123")

	u, err := accounts.Register(ctx, application.RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	if errors.Is(err, application.ErrEmailTaken) {
		fmt.Printf("admin %s already exists\n", email)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if err := users.SetRole(ctx, u.ID, entity.RoleAdmin); err != nil {
		log.Fatalf("failed to grant admin role: %v", err)
	}
	fmt.Printf("seeded admin: id=%d username=%s email=%s password=%s\n", u.ID, username, email, password)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
