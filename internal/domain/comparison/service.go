package comparison

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/cms"
	"github.com/your-org/storefront-backend/internal/infrastructure/localstore"
)

// ErrNotComparable is returned when a product is not part of the comparison catalog
var ErrNotComparable = errors.New("product is not available for comparison")

// Service handles the session's comparison selection
type Service struct {
	cms    cms.Querier
	store  *localstore.Store
	images *cms.ImageBuilder
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new comparison service
func NewService(querier cms.Querier, store *localstore.Store, images *cms.ImageBuilder, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		cms:    querier,
		store:  store,
		images: images,
		config: cfg,
		logger: logger,
	}
}

// View is the comparison page: the products on offer, the selection and its table
type View struct {
	Catalog  []product.Product `json:"catalog"`
	Selected []product.Product `json:"selected"`
	Table    Table             `json:"table"`
}

// Catalog returns the products that may be compared
func (s *Service) Catalog(ctx context.Context) ([]product.Product, error) {
	var products []product.Product
	if err := s.cms.Fetch(ctx, product.ComparisonSliceQuery, nil, &products); err != nil && !errors.Is(err, cms.ErrNoResult) {
		return nil, fmt.Errorf("failed to fetch comparison products: %w", err)
	}
	return product.Dedupe(products), nil
}

// Load returns the session selection; a missing or unreadable value is empty
func (s *Service) Load(ctx context.Context, sessionID string) (Selection, error) {
	var products []product.Product
	err := s.store.GetJSON(ctx, sessionID, localstore.KeyComparison, &products)
	switch {
	case err == nil, errors.Is(err, localstore.ErrNotFound):
	case errors.Is(err, localstore.ErrCorrupt):
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Discarding unreadable comparison selection")
		products = nil
	default:
		return Selection{}, err
	}
	return NewSelection(products...), nil
}

// Get returns the comparison view. A catalog failure renders an empty catalog.
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	sel, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch comparison catalog")
		catalog = []product.Product{}
	}

	return s.view(catalog, sel), nil
}

// Toggle adds or removes productID from the selection
func (s *Service) Toggle(ctx context.Context, sessionID, productID string) (*View, error) {
	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}

	var target *product.Product
	for i := range catalog {
		if catalog[i].ID == productID {
			target = &catalog[i]
			break
		}
	}

	sel, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch {
	case target != nil:
		sel = sel.Toggle(*target)
	case sel.Contains(productID):
		// dropped from the catalog since it was selected
		sel = sel.Toggle(product.Product{ID: productID})
	default:
		return nil, ErrNotComparable
	}

	if err := s.save(ctx, sessionID, sel); err != nil {
		return nil, err
	}

	return s.view(catalog, sel), nil
}

// Clear empties the selection
func (s *Service) Clear(ctx context.Context, sessionID string) (*View, error) {
	if err := s.store.RemoveItem(ctx, sessionID, localstore.KeyComparison); err != nil {
		return nil, err
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch comparison catalog")
		catalog = []product.Product{}
	}

	return s.view(catalog, Selection{}.Clear()), nil
}

func (s *Service) save(ctx context.Context, sessionID string, sel Selection) error {
	if err := s.store.SetJSONTTL(ctx, sessionID, localstore.KeyComparison, sel.Products(), s.config.Storage.ComparisonTTL); err != nil {
		return fmt.Errorf("failed to save comparison selection: %w", err)
	}
	return nil
}

func (s *Service) view(catalog []product.Product, sel Selection) *View {
	return &View{
		Catalog:  catalog,
		Selected: sel.Products(),
		Table:    sel.Table(s.imageURL),
	}
}

func (s *Service) imageURL(p product.Product) string {
	width := s.images.DefaultWidth()
	if p.Image != nil {
		if u := s.images.URL(p.Image, width); u != "" {
			return u
		}
	}
	return cms.WithWidth(p.ImageURL, width)
}
