// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
)

// ProductSource resolves a product by id
type ProductSource interface {
	Product(ctx context.Context, id string) (*product.Product, error)
}

// Service handles the session cart
type Service struct {
	store    *localstore.Store
	products ProductSource
	config   *config.Config
	logger   *logrus.Logger
}

// NewService creates a new cart service
func NewService(store *localstore.Store, products ProductSource, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		config:   cfg,
		logger:   logger,
	}
}

// Response represents a shopping cart with items and summary
type Response struct {
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// AddItemRequest represents add to cart request
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// Count is what the header badge shows
type Count struct {
	Count         int `json:"count"`
	TotalQuantity int `json:"total_quantity"`
}

// Load returns the session's cart. A missing or unreadable value is an empty cart.
func (s *Service) Load(ctx context.Context, sessionID string) (Cart, error) {
	var items []LineItem
	err := s.store.GetJSON(ctx, sessionID, localstore.KeyCart, &items)
	switch {
	case err == nil:
	case errors.Is(err, localstore.ErrNotFound):
	case errors.Is(err, localstore.ErrCorrupt):
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Discarding unreadable cart")
		items = nil
	default:
		return Cart{}, err
	}

	return New(s.policy(), items...), nil
}

// GetCart retrieves the session cart
func (s *Service) GetCart(ctx context.Context, sessionID string) (*Response, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// AddItem adds a catalog product to the cart
func (s *Service) AddItem(ctx context.Context, sessionID string, req *AddItemRequest) (*Response, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.Product(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c, err = c.Add(*p, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"product_id": p.ID,
		"quantity":   quantity,
	}).Info("Item added to cart")

	return toResponse(c), nil
}

// RemoveItem removes every line item for productID
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*Response, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c = c.Remove(productID)
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	return toResponse(c), nil
}

// Clear removes all items from the cart
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.RemoveItem(ctx, sessionID, localstore.KeyCart)
}

// Count returns the line item count and summed quantity
func (s *Service) Count(ctx context.Context, sessionID string) (Count, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return Count{}, err
	}
	return Count{Count: c.Len(), TotalQuantity: c.TotalQuantity()}, nil
}

func (s *Service) save(ctx context.Context, sessionID string, c Cart) error {
	if err := s.store.SetJSON(ctx, sessionID, localstore.KeyCart, c.Items()); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *Service) policy() Policy {
	return Policy(s.config.Cart.DuplicatePolicy)
}

func toResponse(c Cart) *Response {
	return &Response{
		Items:  c.Items(),
		Totals: c.Totals(),
	}
}
