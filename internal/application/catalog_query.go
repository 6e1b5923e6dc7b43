package application

import (
	"sort"
	"strings"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
)

type SortOrder string

const (
	SortNew       SortOrder = "new"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

const DefaultPageSize = 8

// ParseSortOrder maps request input to a SortOrder; unknown values keep
// catalog order.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNew
	}
}

// QueryParams selects, filters, orders and pages the catalog.
type QueryParams struct {
	Segment string
	Size    string
	Color   string
	Sort    SortOrder
	Page    int
	PerPage int
}

// Page is one page of a query result.
type Page struct {
	Items      []entity.Product `json:"items"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// Query runs the catalog pipeline: segment, size/color filters (AND),
// sort, then pagination. It never fails; an out-of-range page is empty.
func Query(catalog []entity.Product, p QueryParams) Page {
	filtered := filter(catalog, p.Segment, p.Size, p.Color)
	sortProducts(filtered, p.Sort)
	return paginate(filtered, p.Page, p.PerPage)
}

func filter(catalog []entity.Product, segment, size, color string) []entity.Product {
	size = strings.ToLower(strings.TrimSpace(size))
	color = strings.ToLower(strings.TrimSpace(color))

	out := make([]entity.Product, 0, len(catalog))
	for _, p := range catalog {
		if !p.InSegment(segment) {
			continue
		}
		if size != "" && !strings.Contains(strings.ToLower(p.Size), size) {
			continue
		}
		if color != "" && !strings.Contains(strings.ToLower(p.Color), color) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortProducts is stable, so equal prices keep catalog order in both directions.
func sortProducts(products []entity.Product, order SortOrder) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	}
}

func paginate(products []entity.Product, page, perPage int) Page {
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(products)
	res := Page{
		Items:      []entity.Product{},
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	start := (page - 1) * perPage
	if start >= total {
		return res
	}
	end := start + perPage
	if end > total {
		end = total
	}
	res.Items = products[start:end]
	return res
}

// firstN returns up to n leading products in catalog order.
func firstN(products []entity.Product, n int) []entity.Product {
	if n < 0 {
		n = 0
	}
	if n > len(products) {
		n = len(products)
	}
	return append([]entity.Product{}, products[:n]...)
}

func indexByID(products []entity.Product) map[int]entity.Product {
	m := make(map[int]entity.Product, len(products))
	for _, p := range products {
		if _, dup := m[p.ID]; !dup {
			m[p.ID] = p
		}
	}
	return m
}
