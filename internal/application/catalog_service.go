package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	repo "github.com/oksasatya/fashion-storefront/internal/domain/repository"
)

// CatalogService serves every read of the product catalog. Each call loads
// the catalog from the store, so store-side reload policy applies uniformly.
type CatalogService struct {
	Products      repo.ProductRepository
	Index         repo.CatalogIndex // optional
	Logger        *logrus.Logger
	PageSize      int
	FeaturedCount int
	SimilarCount  int
}

func NewCatalogService(products repo.ProductRepository, index repo.CatalogIndex, logger *logrus.Logger, pageSize, featured, similar int) *CatalogService {
	return &CatalogService{
		Products:      products,
		Index:         index,
		Logger:        logger,
		PageSize:      pageSize,
		FeaturedCount: featured,
		SimilarCount:  similar,
	}
}

// HomePage is the landing listing: one unfiltered page plus the featured strip.
type HomePage struct {
	Page
	Featured []entity.Product `json:"featured"`
}

func (s *CatalogService) Home(ctx context.Context, page int) HomePage {
	catalog := s.Products.LoadCatalog(ctx)
	return HomePage{
		Page:     Query(catalog, QueryParams{Segment: entity.SegmentAll, Page: page, PerPage: s.PageSize}),
		Featured: firstN(catalog, s.FeaturedCount),
	}
}

// Browse runs the query pipeline with the configured page size.
func (s *CatalogService) Browse(ctx context.Context, p QueryParams) Page {
	p.PerPage = s.PageSize
	return Query(s.Products.LoadCatalog(ctx), p)
}

// Product returns the product and up to SimilarCount others of its category.
func (s *CatalogService) Product(ctx context.Context, id int) (entity.Product, []entity.Product, error) {
	catalog := s.Products.LoadCatalog(ctx)
	p, ok := indexByID(catalog)[id]
	if !ok {
		return entity.Product{}, nil, ErrProductNotFound
	}
	similar := make([]entity.Product, 0, s.SimilarCount)
	for _, other := range catalog {
		if len(similar) >= s.SimilarCount {
			break
		}
		if other.ID != p.ID && other.Category == p.Category {
			similar = append(similar, other)
		}
	}
	return p, similar, nil
}

// All returns the whole catalog in table order.
func (s *CatalogService) All(ctx context.Context) []entity.Product {
	return s.Products.LoadCatalog(ctx)
}

// Search matches q against the index when one is configured, falling back
// to a substring match over name, category and color.
func (s *CatalogService) Search(ctx context.Context, q string, size int) []entity.Product {
	q = strings.TrimSpace(q)
	if size <= 0 || size > 50 {
		size = 10
	}
	catalog := s.Products.LoadCatalog(ctx)
	if q == "" {
		return []entity.Product{}
	}

	if s.Index != nil {
		ids, err := s.Index.SearchProductIDs(ctx, q, size)
		if err == nil {
			byID := indexByID(catalog)
			out := make([]entity.Product, 0, len(ids))
			for _, id := range ids {
				// the index may lag behind the table
				if p, ok := byID[id]; ok {
					out = append(out, p)
				}
			}
			return out
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("catalog index search failed, using in-memory match")
		}
	}

	needle := strings.ToLower(q)
	out := make([]entity.Product, 0, size)
	for _, p := range catalog {
		if len(out) >= size {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Color), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Reindex pushes the current catalog into the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	catalog := s.Products.LoadCatalog(ctx)
	if err := s.Index.IndexProducts(ctx, catalog); err != nil {
		return 0, err
	}
	return len(catalog), nil
}
