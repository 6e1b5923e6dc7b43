package csvstore

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/domain/repository"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

var productColumns = []string{"id", "name", "category", "gender", "color", "size", "price", "image"}

// ProductRepository reads the products table. With reload enabled every
// LoadCatalog call re-reads the file so external edits show up without a
// restart; otherwise the first successful read is cached.
type ProductRepository struct {
	table  *table
	reload bool
	logger *logrus.Logger

	mu     sync.RWMutex
	cached []entity.Product
}

func NewProductRepository(path string, reload bool, logger *logrus.Logger) *ProductRepository {
	return &ProductRepository{table: newTable(path, productColumns...), reload: reload, logger: logger}
}

func (r *ProductRepository) LoadCatalog(ctx context.Context) []entity.Product {
	if !r.reload {
		r.mu.RLock()
		cached := r.cached
		r.mu.RUnlock()
		if cached != nil {
			return append([]entity.Product(nil), cached...)
		}
	}

	products, err := r.read()
	if err != nil {
		helpers.CatalogLoadFailures.Add(1)
		if r.logger != nil {
			r.logger.WithError(err).WithField("path", r.table.path).Warn("catalog unavailable, serving empty catalog")
		}
		return []entity.Product{}
	}

	if !r.reload {
		r.mu.Lock()
		r.cached = products
		r.mu.Unlock()
		return append([]entity.Product(nil), products...)
	}
	return products
}

func (r *ProductRepository) read() ([]entity.Product, error) {
	rows, err := r.table.readAll(productColumns...)
	if err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(row["id"]))
		if err != nil {
			if r.logger != nil {
				r.logger.WithField("id", row["id"]).Debug("skipping product row with invalid id")
			}
			continue
		}
		products = append(products, entity.Product{
			ID:       id,
			Name:     row["name"],
			Category: row["category"],
			Gender:   row["gender"],
			Color:    row["color"],
			Size:     row["size"],
			Price:    entity.ParsePrice(row["price"]),
			Image:    row["image"],
		})
	}
	return products, nil
}

// Save overwrites the products table. Used by the seed command only.
func (r *ProductRepository) Save(products []entity.Product) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()
	if err := r.table.ensure(); err != nil {
		return err
	}
	rows := make([]map[string]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, map[string]string{
			"id":       strconv.Itoa(p.ID),
			"name":     p.Name,
			"category": p.Category,
			"gender":   p.Gender,
			"color":    p.Color,
			"size":     p.Size,
			"price":    p.Price.String(),
			"image":    p.Image,
		})
	}
	if err := r.table.writeAll(rows); err != nil {
		return err
	}
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
