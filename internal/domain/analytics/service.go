// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

const topProductsLimit = 5

// OrderLister lists archived orders in a date range
type OrderLister interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]order.Order, error)
}

// Service handles analytics business logic
type Service struct {
	orders OrderLister
	logger *logrus.Logger
}

// NewService creates a new analytics service
func NewService(orders OrderLister, logger *logrus.Logger) *Service {
	return &Service{
		orders: orders,
		logger: logger,
	}
}

// Dashboard represents the yearly dashboard statistics
type Dashboard struct {
	Year           int                `json:"year"`
	TotalSales     float64            `json:"total_sales"`
	TotalOrders    int64              `json:"total_orders"`
	AvgOrderValue  float64            `json:"avg_order_value"`
	PopularProduct *ProductSalesData  `json:"popular_product"`
	TopProducts    []ProductSalesData `json:"top_products"`
	MonthlySales   [12]MonthData      `json:"monthly_sales"`
	SalesByStatus  []StatusData       `json:"sales_by_status"`
}

// MonthData is one month of sales
type MonthData struct {
	Month  string  `json:"month"`
	Sales  float64 `json:"sales"`
	Orders int64   `json:"orders"`
}

type ProductSalesData struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	TotalSold int64   `json:"total_sold"`
	Revenue   float64 `json:"revenue"`
}

type StatusData struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Value  float64 `json:"value"`
}

// GetDashboard retrieves the dashboard for the given calendar year (UTC)
func (s *Service) GetDashboard(ctx context.Context, year int) (*Dashboard, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	orders, err := s.orders.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	dashboard := Summarize(orders, year)

	s.logger.WithFields(logrus.Fields{
		"year":   year,
		"orders": dashboard.TotalOrders,
	}).Debug("Dashboard computed")

	return &dashboard, nil
}

// Summarize computes the dashboard for year from orders. Cancelled orders
// only count towards SalesByStatus.
func Summarize(orders []order.Order, year int) Dashboard {
	d := Dashboard{
		Year:          year,
		TopProducts:   []ProductSalesData{},
		SalesByStatus: []StatusData{},
	}
	for m := range d.MonthlySales {
		d.MonthlySales[m].Month = time.Month(m + 1).String()
	}

	products := make(map[string]*ProductSalesData)
	statuses := make(map[order.OrderStatus]*StatusData)

	for _, o := range orders {
		date := o.OrderDate.UTC()
		if date.Year() != year {
			continue
		}

		st, ok := statuses[o.Status]
		if !ok {
			st = &StatusData{Status: string(o.Status)}
			statuses[o.Status] = st
		}
		st.Count++
		st.Value += o.TotalAmount

		if o.Status == order.OrderStatusCancelled {
			continue
		}

		d.TotalOrders++
		d.TotalSales += o.TotalAmount
		month := &d.MonthlySales[date.Month()-1]
		month.Orders++
		month.Sales += o.TotalAmount

		for _, item := range o.Items {
			p, ok := products[item.ProductID]
			if !ok {
				p = &ProductSalesData{ProductID: item.ProductID, Title: item.Title}
				products[item.ProductID] = p
			}
			p.TotalSold += int64(item.Quantity)
			p.Revenue += item.Price * float64(item.Quantity)
		}
	}

	d.TotalSales = roundCents(d.TotalSales)
	if d.TotalOrders > 0 {
		d.AvgOrderValue = roundCents(d.TotalSales / float64(d.TotalOrders))
	}
	for m := range d.MonthlySales {
		d.MonthlySales[m].Sales = roundCents(d.MonthlySales[m].Sales)
	}

	for _, p := range products {
		p.Revenue = roundCents(p.Revenue)
		d.TopProducts = append(d.TopProducts, *p)
	}
	sort.Slice(d.TopProducts, func(i, j int) bool {
		a, b := d.TopProducts[i], d.TopProducts[j]
		if a.TotalSold != b.TotalSold {
			return a.TotalSold > b.TotalSold
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.ProductID < b.ProductID
	})
	if len(d.TopProducts) > 0 {
		popular := d.TopProducts[0]
		d.PopularProduct = &popular
	}
	if len(d.TopProducts) > topProductsLimit {
		d.TopProducts = d.TopProducts[:topProductsLimit]
	}

	for _, st := range statuses {
		st.Value = roundCents(st.Value)
		d.SalesByStatus = append(d.SalesByStatus, *st)
	}
	sort.Slice(d.SalesByStatus, func(i, j int) bool {
		return d.SalesByStatus[i].Status < d.SalesByStatus[j].Status
	})

	return d
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
