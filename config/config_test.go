package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "CATALOG_RELOAD", "CATALOG_PAGE_SIZE", "FEATURED_COUNT", "SIMILAR_COUNT", "HISTORY_DRIVER", "SESSION_TTL", "MAIL_SEND_ENABLED", "ELASTICSEARCH_ADDRS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.True(t, cfg.CatalogReload)
	assert.Equal(t, 8, cfg.CatalogPageSize)
	assert.Equal(t, 8, cfg.FeaturedCount)
	assert.Equal(t, 4, cfg.SimilarCount)
	assert.Equal(t, "csv", cfg.HistoryDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.Empty(t, cfg.ESAddrs())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/store")
	t.Setenv("CATALOG_RELOAD", "false")
	t.Setenv("CATALOG_PAGE_SIZE", "12")
	t.Setenv("FEATURED_COUNT", "many") // invalid, keeps default
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("HISTORY_DRIVER", "Postgres")
	t.Setenv("ELASTICSEARCH_ADDRS", " http://a:9200 ,, http://b:9200")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "store")

	cfg := Load()
	assert.False(t, cfg.CatalogReload)
	assert.Equal(t, 12, cfg.CatalogPageSize)
	assert.Equal(t, 8, cfg.FeaturedCount)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "postgres", cfg.HistoryDriver)
	assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.ESAddrs())
	assert.Equal(t, filepath.Join("/srv/store", "users.csv"), cfg.UsersCSV())
	assert.Equal(t, filepath.Join("/srv/store", "history.csv"), cfg.HistoryCSV())
	assert.Equal(t, "postgres://shop:pw@localhost:5432/store?sslmode=disable", cfg.PostgresDSN())
}
