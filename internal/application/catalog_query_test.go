package application_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-storefront/internal/application"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
)

func product(id int, gender, size, color, price string) entity.Product {
	return entity.Product{
		ID:       id,
		Name:     fmt.Sprintf("Item %d", id),
		Category: "Shirts",
		Gender:   gender,
		Color:    color,
		Size:     size,
		Price:    entity.ParsePrice(price),
	}
}

func ids(products []entity.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestQueryPriceAscExample(t *testing.T) {
	prices := []string{"5", "5", "10", "40", "15", "30", "20", "25", "35", "12"}
	catalog := make([]entity.Product, 0, len(prices))
	for i, p := range prices {
		catalog = append(catalog, product(i+1, "Men", "M", "Blue", p))
	}

	page := application.Query(catalog, application.QueryParams{
		Segment: entity.SegmentAll,
		Sort:    application.SortPriceAsc,
		Page:    1,
		PerPage: 8,
	})

	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 10, page.Total)
	// ties keep catalog order
	assert.Equal(t, []int{1, 2, 3, 10, 5, 7, 8, 6}, ids(page.Items))

	second := application.Query(catalog, application.QueryParams{
		Segment: entity.SegmentAll,
		Sort:    application.SortPriceAsc,
		Page:    2,
		PerPage: 8,
	})
	assert.Equal(t, []int{9, 4}, ids(second.Items))
}

func TestQuerySegmentsAndFilters(t *testing.T) {
	catalog := []entity.Product{
		product(1, "Men", "M", "Navy Blue", "10"),
		product(2, "Women", "S", "Red", "20"),
		product(3, "men", "XL", "blue", "30"),
		product(4, "Kids", "M", "Green", "5"),
	}

	tests := []struct {
		name   string
		params application.QueryParams
		want   []int
	}{
		{"all keeps everything", application.QueryParams{Segment: "all"}, []int{1, 2, 3, 4}},
		{"segment is case-insensitive", application.QueryParams{Segment: "MEN"}, []int{1, 3}},
		{"unknown segment is empty", application.QueryParams{Segment: "pets"}, []int{}},
		{"color is a substring match", application.QueryParams{Segment: "all", Color: "BLUE"}, []int{1, 3}},
		{"size is a substring match", application.QueryParams{Segment: "all", Size: "m"}, []int{1, 4}},
		{"filters combine with AND", application.QueryParams{Segment: "all", Size: "x", Color: "blue"}, []int{3}},
		{"segment then filters", application.QueryParams{Segment: "kids", Color: "red"}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := application.Query(catalog, tt.params)
			assert.Equal(t, tt.want, ids(page.Items))
		})
	}
}

func TestQueryPagination(t *testing.T) {
	catalog := make([]entity.Product, 0, 17)
	for i := 1; i <= 17; i++ {
		catalog = append(catalog, product(i, "Women", "S", "Black", "1"))
	}

	for _, perPage := range []int{1, 3, 8, 17, 20} {
		want := (17 + perPage - 1) / perPage
		for page := 0; page <= want+1; page++ {
			res := application.Query(catalog, application.QueryParams{Segment: "all", Page: page, PerPage: perPage})
			assert.LessOrEqual(t, len(res.Items), perPage)
			assert.Equal(t, want, res.TotalPages, "perPage=%d", perPage)
		}
	}

	t.Run("page below one is clamped", func(t *testing.T) {
		res := application.Query(catalog, application.QueryParams{Segment: "all", Page: -3, PerPage: 8})
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids(res.Items))
	})

	t.Run("out of range page is empty, not nil", func(t *testing.T) {
		res := application.Query(catalog, application.QueryParams{Segment: "all", Page: 9, PerPage: 8})
		require.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
		assert.Equal(t, 3, res.TotalPages)
	})

	t.Run("missing page size uses the default", func(t *testing.T) {
		res := application.Query(catalog, application.QueryParams{Segment: "all"})
		assert.Equal(t, application.DefaultPageSize, res.PerPage)
		assert.Len(t, res.Items, application.DefaultPageSize)
	})
}

func TestQuerySortDirections(t *testing.T) {
	catalog := []entity.Product{
		product(1, "Men", "M", "Blue", "30"),
		product(2, "Men", "M", "Blue", "bad"),
		product(3, "Men", "M", "Blue", "12.5"),
		product(4, "Men", "M", "Blue", "99"),
	}
	asc := application.Query(catalog, application.QueryParams{Segment: "all", Sort: application.SortPriceAsc, PerPage: 10})
	desc := application.Query(catalog, application.QueryParams{Segment: "all", Sort: application.SortPriceDesc, PerPage: 10})

	// unparseable price sorts as zero
	assert.Equal(t, []int{2, 3, 1, 4}, ids(asc.Items))
	assert.Equal(t, []int{4, 1, 3, 2}, ids(desc.Items))

	newest := application.Query(catalog, application.QueryParams{Segment: "all", Sort: application.ParseSortOrder("bogus"), PerPage: 10})
	assert.Equal(t, []int{1, 2, 3, 4}, ids(newest.Items))
}

func TestQueryDoesNotReorderCatalog(t *testing.T) {
	catalog := []entity.Product{
		product(1, "Men", "M", "Blue", "30"),
		product(2, "Men", "M", "Blue", "10"),
	}
	_ = application.Query(catalog, application.QueryParams{Segment: "all", Sort: application.SortPriceAsc})
	assert.Equal(t, []int{1, 2}, ids(catalog))
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, application.SortPriceAsc, application.ParseSortOrder(" PRICE_ASC "))
	assert.Equal(t, application.SortPriceDesc, application.ParseSortOrder("price_desc"))
	assert.Equal(t, application.SortNew, application.ParseSortOrder(""))
	assert.Equal(t, application.SortNew, application.ParseSortOrder("popular"))
}
