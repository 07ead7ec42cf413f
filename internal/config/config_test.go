package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CMS_PROJECT_ID", "abc123")

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.CMS.ProjectID)
	assert.Equal(t, "production", cfg.CMS.Dataset)
	assert.Equal(t, 1, cfg.CMS.MaxAttempts)
	assert.Equal(t, "append", cfg.Cart.DuplicatePolicy)
	assert.Equal(t, "ComfyChair", cfg.Catalog.FeaturedTitle)
	assert.Equal(t, 24*time.Hour, cfg.Storage.TTL)
	assert.Equal(t, "session_id", cfg.Session.CookieName)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CMS_PROJECT_ID", "abc123")
	t.Setenv("CART_DUPLICATE_POLICY", "merge")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/store.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CMS_TIMEOUT", "3s")

	cfg, err := Load("testdata/missing.env")
	require.NoError(t, err)

	assert.Equal(t, "merge", cfg.Cart.DuplicatePolicy)
	assert.Equal(t, "/tmp/store.db", cfg.GetDatabaseDSN())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.CMS.Timeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			CMS:      CMSConfig{ProjectID: "p", Dataset: "production"},
			Database: DatabaseConfig{Driver: "postgres", Host: "h", Name: "n", User: "u"},
			Redis:    RedisConfig{Host: "localhost"},
			Session:  SessionConfig{Secret: "0123456789abcdef0123456789abcdef"},
			Cart:     CartConfig{DuplicatePolicy: "append"},
			Order:    OrderConfig{MinDeliveryDays: 3, MaxDeliveryDays: 5},
		}
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short secret", func(c *Config) { c.Session.Secret = "short" }, "SESSION_SECRET"},
		{"no project", func(c *Config) { c.CMS.ProjectID = "" }, "CMS_PROJECT_ID"},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, "DB_DRIVER"},
		{"bad policy", func(c *Config) { c.Cart.DuplicatePolicy = "dedupe" }, "CART_DUPLICATE_POLICY"},
		{"delivery range", func(c *Config) { c.Order.MaxDeliveryDays = 1 }, "ORDER_MIN_DELIVERY_DAYS"},
		{"no redis", func(c *Config) { c.Redis.Host = "" }, "REDIS_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
