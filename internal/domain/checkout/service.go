// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
	"github.com/your-org/storefront-backend/internal/pkg/email"
	"github.com/your-org/storefront-backend/internal/pkg/navigation"
)

// ErrEmptyCart is returned when checking out without items
var ErrEmptyCart = errors.New("cart is empty")

// CartSource loads the session cart
type CartSource interface {
	Load(ctx context.Context, sessionID string) (cart.Cart, error)
}

// Archive stores placed orders
type Archive interface {
	Create(ctx context.Context, o *order.Order) error
}

// Mailer sends the order confirmation email
type Mailer interface {
	SendOrderConfirmationEmail(ctx context.Context, data email.OrderConfirmationData) error
}

// PlaceOrderRequest represents the checkout form
type PlaceOrderRequest struct {
	Address       order.Address     `json:"address" binding:"required"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	ContactInfo   order.ContactInfo `json:"contactInfo" binding:"required"`
}

// Service turns the session cart into an order
type Service struct {
	carts   CartSource
	store   *localstore.Store
	archive Archive
	mailer  Mailer
	config  *config.Config
	logger  *logrus.Logger
	now     func() time.Time
}

// NewService creates a new checkout service
func NewService(carts CartSource, store *localstore.Store, archive Archive, mailer Mailer, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		carts:   carts,
		store:   store,
		archive: archive,
		mailer:  mailer,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// PlaceOrder records the order snapshot for the session, archives the order
// and sends the confirmation email. Only the snapshot write can fail the
// checkout; the cart is left in place.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req *PlaceOrderRequest) (*order.Snapshot, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	if c.Len() == 0 {
		return nil, ErrEmptyCart
	}

	now := s.now().UTC()
	snap := &order.Snapshot{
		Cart:          make([]order.SnapshotItem, 0, c.Len()),
		Total:         c.Subtotal(),
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		ContactInfo:   req.ContactInfo,
		OrderNumber:   generateOrderNumber(now),
		OrderDate:     &now,
	}
	for _, item := range c.Items() {
		snap.Cart = append(snap.Cart, order.SnapshotItem{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	if err := s.store.SetJSON(ctx, sessionID, localstore.KeyOrderDetails, snap); err != nil {
		return nil, fmt.Errorf("failed to save order details: %w", err)
	}

	logger := s.logger.WithFields(logrus.Fields{
		"session_id":   sessionID,
		"order_number": snap.OrderNumber,
	})

	if err := s.archive.Create(ctx, toOrder(sessionID, snap)); err != nil {
		logger.WithError(err).Error("Failed to archive order")
	}

	if err := s.mailer.SendOrderConfirmationEmail(ctx, s.emailData(snap)); err != nil {
		logger.WithError(err).Error("Failed to send order confirmation email")
	}

	logger.WithField("total", snap.Total).Info("Order placed")

	return snap, nil
}

func (s *Service) emailData(snap *order.Snapshot) email.OrderConfirmationData {
	items := make([]email.OrderItem, 0, len(snap.Cart))
	for _, item := range snap.Cart {
		items = append(items, email.OrderItem{
			Title:      item.Title,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Total:      item.Price * float64(item.Quantity),
			ImageURL:   item.ImageURL,
			ProductURL: s.config.App.BaseURL + navigation.ProductPath(item.ID),
		})
	}

	data := email.OrderConfirmationData{
		OrderNumber:   snap.OrderNumber,
		OrderTotal:    snap.Total,
		OrderURL:      s.config.App.BaseURL + "/order-confirmation",
		Items:         items,
		PaymentMethod: snap.PaymentMethod,
		ShippingAddress: email.Address{
			Street:  snap.Address.Street,
			Area:    snap.Address.Area,
			City:    snap.Address.City,
			State:   snap.Address.State,
			Country: snap.Address.Country,
		},
		ContactPhone: snap.ContactInfo.Phone,
	}
	data.UserEmail = snap.ContactInfo.Email
	data.UserName = snap.ContactInfo.Email
	if snap.OrderDate != nil {
		data.OrderDate = snap.OrderDate.Format("January 2, 2006")
	}
	return data
}

func toOrder(sessionID string, snap *order.Snapshot) *order.Order {
	o := &order.Order{
		OrderNumber:     snap.OrderNumber,
		SessionID:       sessionID,
		OrderDate:       *snap.OrderDate,
		TotalAmount:     snap.Total,
		Status:          order.OrderStatusPending,
		PaymentMethod:   snap.PaymentMethod,
		Email:           snap.ContactInfo.Email,
		Phone:           snap.ContactInfo.Phone,
		ShippingAddress: snap.Address,
	}
	for _, item := range snap.Cart {
		o.Items = append(o.Items, order.OrderItem{
			ProductID: item.ID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return o
}

func generateOrderNumber(now time.Time) string {
	// Format: ORD-YYYYMMDD-XXXXXXXX
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
