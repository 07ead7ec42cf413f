package checkout

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
	"github.com/your-org/storefront-backend/internal/pkg/email"
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
	require.NoError(t, db.AutoMigrate(&order.Order{}, &order.OrderItem{}))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{BaseURL: "https://shop.example.com"},
	}
}

type cartStub struct {
	cart cart.Cart
	err  error
}

func (c cartStub) Load(context.Context, string) (cart.Cart, error) {
	return c.cart, c.err
}

type mailerStub struct {
	sent []email.OrderConfirmationData
	err  error
}

func (m *mailerStub) SendOrderConfirmationEmail(_ context.Context, data email.OrderConfirmationData) error {
	m.sent = append(m.sent, data)
	return m.err
}

func sampleCart(t *testing.T) cart.Cart {
	t.Helper()
	c := cart.New(cart.PolicyAppend)
	c, err := c.Add(product.Product{ID: "a", Title: "Chair", Price: 20, ImageURL: "https://img/a"}, 1)
	require.NoError(t, err)
	c, err = c.Add(product.Product{ID: "b", Title: "Sofa", Price: 10.5}, 2)
	require.NoError(t, err)
	return c
}

func placeRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		Address:       order.Address{Street: "1 Main St", City: "Lagos", Country: "NG"},
		PaymentMethod: "card",
		ContactInfo:   order.ContactInfo{Email: "a@example.com", Phone: "123"},
	}
}

func TestPlaceOrder(t *testing.T) {
	store, mr := newStore(t)
	db := newDB(t)
	repo := order.NewRepository(db)
	mailer := &mailerStub{}
	ctx := context.Background()

	svc := NewService(cartStub{cart: sampleCart(t)}, store, repo, mailer, testConfig(), logger.Discard())
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	require.NoError(t, store.SetItem(ctx, "s1", localstore.KeyCart, "[]"))

	snap, err := svc.PlaceOrder(ctx, "s1", placeRequest())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-20260301-[0-9a-f]{8}$`), snap.OrderNumber)
	assert.Equal(t, 41.0, snap.Total)
	require.Len(t, snap.Cart, 2)
	assert.Equal(t, "https://img/a", snap.Cart[0].ImageURL)

	var stored order.Snapshot
	require.NoError(t, store.GetJSON(ctx, "s1", localstore.KeyOrderDetails, &stored))
	assert.Equal(t, snap.OrderNumber, stored.OrderNumber)
	assert.Equal(t, snap.Cart, stored.Cart)

	orders, err := repo.ListBetween(ctx, fixed.Add(-time.Hour), fixed.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderStatusPending, orders[0].Status)
	assert.Equal(t, "s1", orders[0].SessionID)
	assert.Equal(t, "Lagos", orders[0].ShippingAddress.City)
	assert.Len(t, orders[0].Items, 2)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "a@example.com", mailer.sent[0].UserEmail)
	assert.Equal(t, "https://shop.example.com/product/a", mailer.sent[0].Items[0].ProductURL)
	assert.Equal(t, "March 1, 2026", mailer.sent[0].OrderDate)

	// the cart stays until the shopper continues
	assert.True(t, mr.Exists("storage:s1:cart"))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store, mr := newStore(t)
	mailer := &mailerStub{}
	svc := NewService(cartStub{cart: cart.New(cart.PolicyAppend)}, store, order.NewRepository(newDB(t)), mailer, testConfig(), logger.Discard())

	_, err := svc.PlaceOrder(context.Background(), "s1", placeRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.False(t, mr.Exists("storage:s1:orderDetails"))
	assert.Empty(t, mailer.sent)
}

type failingArchive struct{}

func (failingArchive) Create(context.Context, *order.Order) error {
	return errors.New("db down")
}

func TestPlaceOrderSideEffectFailuresAreLogged(t *testing.T) {
	store, mr := newStore(t)
	mailer := &mailerStub{err: errors.New("smtp down")}
	svc := NewService(cartStub{cart: sampleCart(t)}, store, failingArchive{}, mailer, testConfig(), logger.Discard())

	snap, err := svc.PlaceOrder(context.Background(), "s1", placeRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, snap.OrderNumber)
	assert.True(t, mr.Exists("storage:s1:orderDetails"))
	assert.Len(t, mailer.sent, 1)
}

func TestPlaceOrderCartError(t *testing.T) {
	store, _ := newStore(t)
	svc := NewService(cartStub{err: errors.New("redis down")}, store, failingArchive{}, &mailerStub{}, testConfig(), logger.Discard())

	_, err := svc.PlaceOrder(context.Background(), "s1", placeRequest())
	assert.ErrorContains(t, err, "failed to retrieve cart")
}

