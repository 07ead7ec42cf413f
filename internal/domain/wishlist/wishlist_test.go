package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

var (
	lamp  = product.Product{ID: "lamp", Title: "Lamp", Price: 15}
	couch = product.Product{ID: "couch", Title: "Couch", Price: 300}
)

func ids(w Wishlist) []string {
	out := make([]string, 0, w.Len())
	for _, p := range w.Items() {
		out = append(out, p.ID)
	}
	return out
}

func TestAddIsIdempotent(t *testing.T) {
	w := New().Add(lamp).Add(lamp).Add(couch)
	assert.Equal(t, []string{"lamp", "couch"}, ids(w))
}

func TestDoubleToggleRestoresSet(t *testing.T) {
	start := New(couch)
	w := start.Toggle(lamp).Toggle(lamp)
	assert.Equal(t, ids(start), ids(w))

	w = start.Toggle(couch)
	assert.False(t, w.Contains("couch"))
	assert.True(t, start.Contains("couch"))
}

func TestRemove(t *testing.T) {
	w := New(lamp, couch).Remove("lamp")
	assert.Equal(t, []string{"couch"}, ids(w))
	assert.Equal(t, 1, w.Remove("missing").Len())
}

type productSourceMock struct {
	mock.Mock
}

func (m *productSourceMock) Product(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func newTestService(t *testing.T) (*Service, *productSourceMock) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	products := &productSourceMock{}
	return NewService(localstore.New(rdb, time.Hour), products, logger.Discard()), products
}

func TestServiceToggle(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	products.On("Product", mock.Anything, "lamp").Return(&lamp, nil)

	resp, err := svc.ToggleItem(ctx, "s1", "lamp")
	require.NoError(t, err)
	assert.True(t, resp.InWishlist)
	assert.Equal(t, 1, resp.Count)

	resp, err = svc.ToggleItem(ctx, "s1", "lamp")
	require.NoError(t, err)
	assert.False(t, resp.InWishlist)
	assert.Zero(t, resp.Count)

	// the removal did not consult the catalog
	products.AssertNumberOfCalls(t, "Product", 1)
}

func TestServiceAddRemoveCount(t *testing.T) {
	svc, products := newTestService(t)
	ctx := context.Background()
	products.On("Product", mock.Anything, "lamp").Return(&lamp, nil)
	products.On("Product", mock.Anything, "couch").Return(&couch, nil)

	_, err := svc.AddItem(ctx, "s1", "lamp")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "lamp")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "couch")
	require.NoError(t, err)

	count, err := svc.Count(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	resp, err := svc.RemoveItem(ctx, "s1", "lamp")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "couch", resp.Items[0].ID)
}

func TestServiceAddUnknownProduct(t *testing.T) {
	svc, products := newTestService(t)
	products.On("Product", mock.Anything, "ghost").Return(nil, product.ErrProductNotFound)

	_, err := svc.AddItem(context.Background(), "s1", "ghost")
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}
