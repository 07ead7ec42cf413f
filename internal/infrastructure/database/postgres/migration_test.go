package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/analytics"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func newSQLite(t *testing.T) *DB {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			SQLitePath:   ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
	}
	db, err := NewConnection(cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewConnectionUnsupportedDriver(t *testing.T) {
	_, err := NewConnection(&config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}, logger.Discard())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestConnectionHealth(t *testing.T) {
	db := newSQLite(t)
	assert.Equal(t, "sqlite", db.Driver())
	assert.NoError(t, db.Health(context.Background()))
}

func TestMigrateAndSeed(t *testing.T) {
	db := newSQLite(t)
	m := NewMigration(db.GetDB(), logger.Discard())

	require.NoError(t, m.RunAutoMigrations())
	require.NoError(t, m.CreateIndexes())
	require.NoError(t, m.SeedInitialData(2026))
	require.NoError(t, m.SeedInitialData(2026))

	info, err := m.GetTableInfo()
	require.NoError(t, err)
	assert.Equal(t, []TableInfo{{Table: "orders", Records: 5}, {Table: "order_items", Records: 6}}, info)

	repo := order.NewRepository(db.GetDB())
	dashboard, err := analytics.NewService(repo, logger.Discard()).GetDashboard(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(4), dashboard.TotalOrders)
	require.NotNil(t, dashboard.PopularProduct)
	assert.Equal(t, "ComfyChair", dashboard.PopularProduct.Title)
	assert.Equal(t, 240.0, dashboard.MonthlySales[time.January-1].Sales)

	require.NoError(t, m.DropAllTables())
	assert.False(t, db.GetDB().Migrator().HasTable(&order.Order{}))
}
