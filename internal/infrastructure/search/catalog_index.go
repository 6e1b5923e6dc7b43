package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/domain/repository"
)

// CatalogIndex mirrors the catalog into an Elasticsearch index for
// free-text search. The products table stays the source of truth.
type CatalogIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewCatalogIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *CatalogIndex {
	return &CatalogIndex{ES: es, Index: index, Logger: logger}
}

// IndexProducts bulk-indexes products keyed by product id.
func (x *CatalogIndex) IndexProducts(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	var body bytes.Buffer
	for _, p := range products {
		meta := map[string]any{"index": map[string]any{"_index": x.Index, "_id": strconv.Itoa(p.ID)}}
		doc := map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"category": p.Category,
			"gender":   p.Gender,
			"color":    p.Color,
			"size":     p.Size,
			"price":    p.Price.InexactFloat64(),
		}
		for _, v := range []any{meta, doc} {
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			body.Write(b)
			body.WriteByte('\n')
		}
	}

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	req := esapi.BulkRequest{Body: &body, Refresh: "true"}
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.Status())
	}
	var parsed struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return err
	}
	if parsed.Errors && x.Logger != nil {
		x.Logger.WithField("index", x.Index).Warn("bulk index reported item errors")
	}
	return nil
}

// SearchProductIDs runs a multi_match over name, category and color.
func (x *CatalogIndex) SearchProductIDs(ctx context.Context, q string, size int) ([]int, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^3", "category^2", "color", "gender"},
				"fuzziness": "AUTO",
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if id, err := strconv.Atoi(h.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

var _ repository.CatalogIndex = (*CatalogIndex)(nil)
