package order

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
	"github.com/your-org/storefront-backend/internal/pkg/navigation"
)

// ErrNoOrder is returned when the session has no readable order snapshot
var ErrNoOrder = errors.New("no order to confirm")

// ShippingFree is the shipping label on every confirmation
const ShippingFree = "Free"

// ConfirmationLine is a snapshot line with its line total
type ConfirmationLine struct {
	SnapshotItem
	LineTotal float64 `json:"lineTotal"`
}

// Confirmation is the order summary shown after checkout
type Confirmation struct {
	OrderNumber       string             `json:"orderNumber,omitempty"`
	OrderDate         *time.Time         `json:"orderDate,omitempty"`
	Items             []ConfirmationLine `json:"items"`
	Subtotal          float64            `json:"subtotal"`
	Shipping          string             `json:"shipping"`
	Total             float64            `json:"total"`
	Address           Address            `json:"address"`
	PaymentMethod     string             `json:"paymentMethod"`
	ContactInfo       ContactInfo        `json:"contactInfo"`
	EstimatedDelivery time.Time          `json:"estimatedDelivery"`
}

// ConfirmationService reads the session's order snapshot
type ConfirmationService struct {
	store      *localstore.Store
	config     *config.Config
	logger     *logrus.Logger
	now        func() time.Time
	randomDays func(min, max int) int
}

// NewConfirmationService creates a new confirmation service
func NewConfirmationService(store *localstore.Store, cfg *config.Config, logger *logrus.Logger) *ConfirmationService {
	return &ConfirmationService{
		store:  store,
		config: cfg,
		logger: logger,
		now:    time.Now,
		randomDays: func(min, max int) int {
			return min + rand.Intn(max-min+1)
		},
	}
}

// Load builds the confirmation from the stored snapshot. A missing and an
// unreadable snapshot both yield ErrNoOrder.
func (s *ConfirmationService) Load(ctx context.Context, sessionID string) (*Confirmation, error) {
	var snap Snapshot
	err := s.store.GetJSON(ctx, sessionID, localstore.KeyOrderDetails, &snap)
	switch {
	case err == nil:
	case errors.Is(err, localstore.ErrNotFound):
		return nil, ErrNoOrder
	case errors.Is(err, localstore.ErrCorrupt):
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Unreadable order snapshot")
		return nil, ErrNoOrder
	default:
		return nil, err
	}

	return s.build(snap), nil
}

// ContinueShopping ends the confirmation: the cart is emptied and the
// shopper is sent home.
func (s *ConfirmationService) ContinueShopping(ctx context.Context, sessionID string) (string, error) {
	if err := s.store.RemoveItem(ctx, sessionID, localstore.KeyCart); err != nil {
		return "", err
	}

	if s.config.Order.ClearSnapshotOnContinue {
		if err := s.store.RemoveItem(ctx, sessionID, localstore.KeyOrderDetails); err != nil {
			return "", err
		}
	}

	return navigation.Home, nil
}

func (s *ConfirmationService) build(snap Snapshot) *Confirmation {
	lines := make([]ConfirmationLine, 0, len(snap.Cart))
	for _, item := range snap.Cart {
		lines = append(lines, ConfirmationLine{
			SnapshotItem: item,
			LineTotal:    math.Round(item.Price*float64(item.Quantity)*100) / 100,
		})
	}

	minDays, maxDays := s.config.Order.MinDeliveryDays, s.config.Order.MaxDeliveryDays
	if maxDays < minDays {
		maxDays = minDays
	}

	return &Confirmation{
		OrderNumber:       snap.OrderNumber,
		OrderDate:         snap.OrderDate,
		Items:             lines,
		Subtotal:          snap.Total,
		Shipping:          ShippingFree,
		Total:             snap.Total,
		Address:           snap.Address,
		PaymentMethod:     snap.PaymentMethod,
		ContactInfo:       snap.ContactInfo,
		EstimatedDelivery: s.now().AddDate(0, 0, s.randomDays(minDays, maxDays)),
	}
}
