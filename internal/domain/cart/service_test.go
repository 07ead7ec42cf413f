package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

type productSourceMock struct {
	mock.Mock
}

func (m *productSourceMock) Product(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func newTestService(t *testing.T, policy string) (*Service, *productSourceMock, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	products := &productSourceMock{}
	cfg := &config.Config{Cart: config.CartConfig{DuplicatePolicy: policy}}
	svc := NewService(localstore.New(rdb, time.Hour), products, cfg, logger.Discard())
	return svc, products, mr
}

func TestServiceAddAndCount(t *testing.T) {
	svc, products, _ := newTestService(t, "append")
	ctx := context.Background()
	products.On("Product", mock.Anything, "chair").Return(&chair, nil)

	_, err := svc.AddItem(ctx, "s1", &AddItemRequest{ProductID: "chair"})
	require.NoError(t, err)
	resp, err := svc.AddItem(ctx, "s1", &AddItemRequest{ProductID: "chair", Quantity: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 60.0, resp.Totals.SubTotal)

	count, err := svc.Count(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, Count{Count: 2, TotalQuantity: 3}, count)

	other, err := svc.Count(ctx, "s2")
	require.NoError(t, err)
	assert.Zero(t, other.Count)

	products.AssertNumberOfCalls(t, "Product", 2)
}

func TestServiceMergePolicy(t *testing.T) {
	svc, products, _ := newTestService(t, "merge")
	ctx := context.Background()
	products.On("Product", mock.Anything, "chair").Return(&chair, nil)

	_, err := svc.AddItem(ctx, "s1", &AddItemRequest{ProductID: "chair"})
	require.NoError(t, err)
	resp, err := svc.AddItem(ctx, "s1", &AddItemRequest{ProductID: "chair"})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
}

func TestServiceAddUnknownProduct(t *testing.T) {
	svc, products, _ := newTestService(t, "append")
	products.On("Product", mock.Anything, "ghost").Return(nil, product.ErrProductNotFound)

	_, err := svc.AddItem(context.Background(), "s1", &AddItemRequest{ProductID: "ghost"})
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestServiceAddNegativeQuantity(t *testing.T) {
	svc, products, _ := newTestService(t, "append")

	_, err := svc.AddItem(context.Background(), "s1", &AddItemRequest{ProductID: "chair", Quantity: -2})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	products.AssertNotCalled(t, "Product", mock.Anything, mock.Anything)
}

func TestServiceRemoveAndClear(t *testing.T) {
	svc, products, mr := newTestService(t, "append")
	ctx := context.Background()
	products.On("Product", mock.Anything, "chair").Return(&chair, nil)
	products.On("Product", mock.Anything, "sofa").Return(&sofa, nil)

	_, _ = svc.AddItem(ctx, "s1", &AddItemRequest{ProductID: "chair"})
	_, _ = svc.AddItem(ctx, "s1", &AddItemRequest{ProductID: "sofa"})

	resp, err := svc.RemoveItem(ctx, "s1", "chair")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "sofa", resp.Items[0].ID)

	require.NoError(t, svc.Clear(ctx, "s1"))
	assert.False(t, mr.Exists("storage:s1:cart"))
}

func TestServiceCorruptCartIsEmpty(t *testing.T) {
	svc, _, mr := newTestService(t, "append")
	require.NoError(t, mr.Set("storage:s1:cart", "not-json"))

	resp, err := svc.GetCart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
