// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/infrastructure/cms"
	"github.com/your-org/storefront-backend/internal/pkg/navigation"
	"golang.org/x/sync/errgroup"
)

// ErrProductNotFound is returned when the content store has no such product
var ErrProductNotFound = errors.New("product not found")

// Service handles catalog reads
type Service struct {
	cms    cms.Querier
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new product service
func NewService(querier cms.Querier, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		cms:    querier,
		config: cfg,
		logger: logger,
	}
}

// List returns the catalog slice with the featured product appended, each
// identifier once.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	var (
		slice    []Product
		featured *Product
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.cms.Fetch(gctx, CatalogSliceQuery, nil, &slice); err != nil && !errors.Is(err, cms.ErrNoResult) {
			return fmt.Errorf("failed to fetch products: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var p Product
		err := s.cms.Fetch(gctx, featuredQuery, map[string]any{"title": s.config.Catalog.FeaturedTitle}, &p)
		switch {
		case err == nil:
			featured = &p
		case errors.Is(err, cms.ErrNoResult):
		default:
			// The slice alone is still a usable listing
			s.logger.WithError(err).WithField("title", s.config.Catalog.FeaturedTitle).Warn("Failed to fetch featured product")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if featured != nil {
		slice = append(slice, *featured)
	}

	return Dedupe(slice), nil
}

// Product returns a single product with its discount
func (s *Service) Product(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := s.cms.Fetch(ctx, detailQuery, map[string]any{"id": id}, &p); err != nil {
		if errors.Is(err, cms.ErrNoResult) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", id, err)
	}
	if p.ID == "" {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

// Get returns a product detail with final price and share links
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	p, err := s.Product(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Product:    *p,
		FinalPrice: p.FinalPrice(),
		Path:       navigation.ProductPath(p.ID),
		Share:      navigation.ProductShareLinks(s.config.App.BaseURL, p.ID, p.Title),
	}, nil
}

// Categories returns all categories
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.cms.Fetch(ctx, categoriesQuery, nil, &categories); err != nil && !errors.Is(err, cms.ErrNoResult) {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}
