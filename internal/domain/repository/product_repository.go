package repository

import (
	"context"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
)

// ProductRepository is the catalog read model. LoadCatalog never fails:
// a missing or malformed backing table yields an empty catalog.
type ProductRepository interface {
	LoadCatalog(ctx context.Context) []entity.Product
}

// CatalogIndex is an optional full-text index over the catalog.
type CatalogIndex interface {
	IndexProducts(ctx context.Context, products []entity.Product) error
	SearchProductIDs(ctx context.Context, q string, size int) ([]int, error)
}
