// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
)

// ProductSource resolves a product by id
type ProductSource interface {
	Product(ctx context.Context, id string) (*product.Product, error)
}

// Service handles wishlist business logic
type Service struct {
	store    *localstore.Store
	products ProductSource
	logger   *logrus.Logger
}

// NewService creates a new wishlist service
func NewService(store *localstore.Store, products ProductSource, logger *logrus.Logger) *Service {
	return &Service{
		store:    store,
		products: products,
		logger:   logger,
	}
}

// AddItemRequest represents add to wishlist request
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// Response is the wishlist as returned to clients
type Response struct {
	Items []product.Product `json:"items"`
	Count int               `json:"count"`
}

// ToggleResponse reports the wishlist after a toggle
type ToggleResponse struct {
	Response
	InWishlist bool `json:"in_wishlist"`
}

// Load returns the session wishlist; a missing or unreadable value is empty
func (s *Service) Load(ctx context.Context, sessionID string) (Wishlist, error) {
	var items []product.Product
	err := s.store.GetJSON(ctx, sessionID, localstore.KeyWishlist, &items)
	switch {
	case err == nil, errors.Is(err, localstore.ErrNotFound):
	case errors.Is(err, localstore.ErrCorrupt):
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Discarding unreadable wishlist")
		items = nil
	default:
		return Wishlist{}, err
	}
	return New(items...), nil
}

// GetWishlist returns the session wishlist
func (s *Service) GetWishlist(ctx context.Context, sessionID string) (*Response, error) {
	w, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

// AddItem adds a catalog product; adding twice keeps one entry
func (s *Service) AddItem(ctx context.Context, sessionID, productID string) (*Response, error) {
	w, err := s.update(ctx, sessionID, productID, Wishlist.Add)
	if err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

// ToggleItem adds or removes a catalog product
func (s *Service) ToggleItem(ctx context.Context, sessionID, productID string) (*ToggleResponse, error) {
	current, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Removing needs no catalog lookup
	if current.Contains(productID) {
		w := current.Remove(productID)
		if err := s.save(ctx, sessionID, w); err != nil {
			return nil, err
		}
		return &ToggleResponse{Response: *toResponse(w), InWishlist: false}, nil
	}

	w, err := s.update(ctx, sessionID, productID, Wishlist.Toggle)
	if err != nil {
		return nil, err
	}
	return &ToggleResponse{Response: *toResponse(w), InWishlist: w.Contains(productID)}, nil
}

// RemoveItem removes productID from the wishlist
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*Response, error) {
	w, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	w = w.Remove(productID)
	if err := s.save(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

// Count returns the number of wishlist entries
func (s *Service) Count(ctx context.Context, sessionID string) (int, error) {
	w, err := s.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return w.Len(), nil
}

func (s *Service) update(ctx context.Context, sessionID, productID string, op func(Wishlist, product.Product) Wishlist) (Wishlist, error) {
	w, err := s.Load(ctx, sessionID)
	if err != nil {
		return Wishlist{}, err
	}

	p, err := s.products.Product(ctx, productID)
	if err != nil {
		return Wishlist{}, err
	}

	w = op(w, *p)
	if err := s.save(ctx, sessionID, w); err != nil {
		return Wishlist{}, err
	}
	return w, nil
}

func (s *Service) save(ctx context.Context, sessionID string, w Wishlist) error {
	if err := s.store.SetJSON(ctx, sessionID, localstore.KeyWishlist, w.Items()); err != nil {
		return fmt.Errorf("failed to save wishlist: %w", err)
	}
	return nil
}

func toResponse(w Wishlist) *Response {
	return &Response{Items: w.Items(), Count: w.Len()}
}
