package search

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

// fakeES answers the two endpoints the index uses and records request bodies.
type fakeES struct {
	bulk   []string
	search map[string]any
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	body, _ := io.ReadAll(r.Body)
	switch {
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		sc := bufio.NewScanner(strings.NewReader(string(body)))
		for sc.Scan() {
			f.bulk = append(f.bulk, sc.Text())
		}
		_, _ = w.Write([]byte(`{"errors":false,"items":[]}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_ = json.Unmarshal(body, &f.search)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"7"},{"_id":"bogus"},{"_id":"2"}]}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{}`))
	}
}

func newTestIndex(t *testing.T) (*CatalogIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewCatalogIndex(es, "products", helpers.NewDiscardLogger()), fake
}

func TestIndexProducts(t *testing.T) {
	x, fake := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, x.IndexProducts(ctx, nil))
	assert.Empty(t, fake.bulk)

	err := x.IndexProducts(ctx, []entity.Product{
		{ID: 4, Name: "Linen Shirt", Category: "Shirts", Gender: "Men", Color: "White", Size: "M", Price: decimal.RequireFromString("44.50")},
	})
	require.NoError(t, err)
	require.Len(t, fake.bulk, 2)

	var meta map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(fake.bulk[0]), &meta))
	assert.Equal(t, "products", meta["index"]["_index"])
	assert.Equal(t, "4", meta["index"]["_id"])

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(fake.bulk[1]), &doc))
	assert.Equal(t, "Linen Shirt", doc["name"])
	assert.Equal(t, 44.5, doc["price"])
}

func TestSearchProductIDs(t *testing.T) {
	x, fake := newTestIndex(t)

	ids, err := x.SearchProductIDs(context.Background(), "shirt", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 2}, ids)
	assert.EqualValues(t, 5, fake.search["size"])
	mm := fake.search["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "shirt", mm["query"])
}
