package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 10, 0, 0, 0, time.UTC)
}

func item(id, title string, price float64, qty int) order.OrderItem {
	return order.OrderItem{ProductID: id, Title: title, Price: price, Quantity: qty}
}

var sampleOrders = []order.Order{
	{OrderDate: day(time.January, 3), TotalAmount: 60, Status: order.OrderStatusCompleted,
		Items: []order.OrderItem{item("chair", "Chair", 20, 3)}},
	{OrderDate: day(time.January, 20), TotalAmount: 40, Status: order.OrderStatusPending,
		Items: []order.OrderItem{item("sofa", "Sofa", 40, 1)}},
	{OrderDate: day(time.March, 9), TotalAmount: 80, Status: order.OrderStatusShipped,
		Items: []order.OrderItem{item("sofa", "Sofa", 40, 2)}},
	{OrderDate: day(time.April, 1), TotalAmount: 500, Status: order.OrderStatusCancelled,
		Items: []order.OrderItem{item("lamp", "Lamp", 50, 10)}},
	{OrderDate: time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), TotalAmount: 1000,
		Status: order.OrderStatusCompleted, Items: []order.OrderItem{item("lamp", "Lamp", 100, 10)}},
}

func TestSummarize(t *testing.T) {
	d := Summarize(sampleOrders, 2026)

	assert.Equal(t, 2026, d.Year)
	assert.Equal(t, int64(3), d.TotalOrders)
	assert.Equal(t, 180.0, d.TotalSales)
	assert.Equal(t, 60.0, d.AvgOrderValue)

	assert.Equal(t, "January", d.MonthlySales[0].Month)
	assert.Equal(t, 100.0, d.MonthlySales[0].Sales)
	assert.Equal(t, int64(2), d.MonthlySales[0].Orders)
	assert.Equal(t, 80.0, d.MonthlySales[2].Sales)
	assert.Zero(t, d.MonthlySales[3].Sales)

	// Chair and Sofa both sold 3; the tie goes to the title
	require.NotNil(t, d.PopularProduct)
	assert.Equal(t, "Chair", d.PopularProduct.Title)
	require.Len(t, d.TopProducts, 2)
	assert.Equal(t, "Sofa", d.TopProducts[1].Title)
	assert.Equal(t, 120.0, d.TopProducts[1].Revenue)

	require.Len(t, d.SalesByStatus, 4)
	assert.Equal(t, StatusData{Status: "cancelled", Count: 1, Value: 500}, d.SalesByStatus[0])
}

func TestSummarizeEmpty(t *testing.T) {
	d := Summarize(nil, 2026)
	assert.Zero(t, d.TotalOrders)
	assert.Zero(t, d.AvgOrderValue)
	assert.Nil(t, d.PopularProduct)
	assert.NotNil(t, d.TopProducts)
	assert.Equal(t, "December", d.MonthlySales[11].Month)
}

type listerFunc func(ctx context.Context, from, to time.Time) ([]order.Order, error)

func (f listerFunc) ListBetween(ctx context.Context, from, to time.Time) ([]order.Order, error) {
	return f(ctx, from, to)
}

func TestGetDashboard(t *testing.T) {
	var gotFrom, gotTo time.Time
	svc := NewService(listerFunc(func(_ context.Context, from, to time.Time) ([]order.Order, error) {
		gotFrom, gotTo = from, to
		return sampleOrders[:3], nil
	}), logger.Discard())

	d, err := svc.GetDashboard(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.TotalOrders)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), gotTo)
}

func TestGetDashboardError(t *testing.T) {
	svc := NewService(listerFunc(func(context.Context, time.Time, time.Time) ([]order.Order, error) {
		return nil, errors.New("db down")
	}), logger.Discard())

	_, err := svc.GetDashboard(context.Background(), 2026)
	assert.ErrorContains(t, err, "failed to load orders")
}
