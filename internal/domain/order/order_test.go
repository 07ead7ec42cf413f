package order

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newStore(t *testing.T) (*localstore.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return localstore.New(rdb, time.Hour), mr
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&Order{}, &OrderItem{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		App:   config.AppConfig{BaseURL: "https://shop.example.com"},
		Order: config.OrderConfig{MinDeliveryDays: 3, MaxDeliveryDays: 5},
	}
}

var sampleSnapshot = Snapshot{
	Cart: []SnapshotItem{
		{ID: "a", Title: "Chair", Price: 20, Quantity: 1},
		{ID: "b", Title: "Sofa", Price: 10.5, Quantity: 2},
	},
	Total:         41,
	Address:       Address{Street: "1 Main St", City: "Lagos", Country: "NG"},
	PaymentMethod: "card",
	ContactInfo:   ContactInfo{Email: "a@example.com", Phone: "123"},
}

func TestConfirmationLoad(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetJSON(ctx, "s1", localstore.KeyOrderDetails, sampleSnapshot))

	svc := NewConfirmationService(store, testConfig(), logger.Discard())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	var gotMin, gotMax int
	svc.randomDays = func(min, max int) int {
		gotMin, gotMax = min, max
		return 4
	}

	conf, err := svc.Load(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, conf.Items, 2)
	assert.Equal(t, 20.0, conf.Items[0].LineTotal)
	assert.Equal(t, 21.0, conf.Items[1].LineTotal)
	assert.Equal(t, 41.0, conf.Subtotal)
	assert.Equal(t, 41.0, conf.Total)
	assert.Equal(t, ShippingFree, conf.Shipping)
	assert.Equal(t, "card", conf.PaymentMethod)
	assert.Equal(t, fixed.AddDate(0, 0, 4), conf.EstimatedDelivery)
	assert.Equal(t, 3, gotMin)
	assert.Equal(t, 5, gotMax)
}

func TestConfirmationDeliveryWindow(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetJSON(ctx, "s1", localstore.KeyOrderDetails, sampleSnapshot))

	svc := NewConfirmationService(store, testConfig(), logger.Discard())
	start := time.Now()
	for i := 0; i < 20; i++ {
		conf, err := svc.Load(ctx, "s1")
		require.NoError(t, err)
		days := conf.EstimatedDelivery.Sub(start).Hours() / 24
		assert.GreaterOrEqual(t, days, 3.0)
		assert.Less(t, days, 6.0)
	}
}

func TestConfirmationMissingOrCorrupt(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()
	svc := NewConfirmationService(store, testConfig(), logger.Discard())

	_, err := svc.Load(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNoOrder)

	require.NoError(t, mr.Set("storage:s1:orderDetails", "{not json"))
	_, err = svc.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoOrder)
}

func TestContinueShopping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		clear        bool
		wantSnapshot bool
	}{
		{name: "keeps snapshot", clear: false, wantSnapshot: true},
		{name: "clears snapshot", clear: true, wantSnapshot: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mr := newStore(t)
			require.NoError(t, store.SetItem(ctx, "s1", localstore.KeyCart, "[]"))
			require.NoError(t, store.SetJSON(ctx, "s1", localstore.KeyOrderDetails, sampleSnapshot))

			cfg := testConfig()
			cfg.Order.ClearSnapshotOnContinue = tt.clear
			svc := NewConfirmationService(store, cfg, logger.Discard())

			dest, err := svc.ContinueShopping(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, "/", dest)
			assert.False(t, mr.Exists("storage:s1:cart"))
			assert.Equal(t, tt.wantSnapshot, mr.Exists("storage:s1:orderDetails"))
		})
	}
}

func TestRepositoryRejectsUnknownStatus(t *testing.T) {
	repo := NewRepository(newDB(t))
	err := repo.Create(context.Background(), &Order{OrderNumber: "X", OrderDate: time.Now(), Status: "lost"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRepositoryListBetween(t *testing.T) {
	repo := NewRepository(newDB(t))
	ctx := context.Background()
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	next := time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC)

	for i, d := range []time.Time{feb, jan, next} {
		require.NoError(t, repo.Create(ctx, &Order{
			OrderNumber: "ORD-" + string(rune('A'+i)),
			OrderDate:   d,
			TotalAmount: 10,
			Status:      OrderStatusCompleted,
			Items:       []OrderItem{{ProductID: "p", Title: "P", Price: 10, Quantity: 1}},
		}))
	}

	orders, err := repo.ListBetween(ctx, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-B", orders[0].OrderNumber)
	assert.Equal(t, "ORD-A", orders[1].OrderNumber)
	assert.Len(t, orders[0].Items, 1)
}
