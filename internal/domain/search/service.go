// Package search runs title searches against the catalog. Each session sees
// only the result of its most recent search.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/infrastructure/cms"
)

// ErrSuperseded is returned to a search whose result arrived after a newer
// search for the same session started.
var ErrSuperseded = errors.New("search superseded by a newer query")

// Result is a committed search result
type Result struct {
	Query      string            `json:"query"`
	Products   []product.Product `json:"products"`
	Generation uint64            `json:"generation"`
}

type tracker struct {
	generation uint64
	cancel     context.CancelFunc
	latest     Result
	lastUsed   time.Time
}

// Service handles product search
type Service struct {
	cms     cms.Querier
	idleTTL time.Duration
	logger  *logrus.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*tracker
}

// NewService creates a new search service
func NewService(querier cms.Querier, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		cms:      querier,
		idleTTL:  cfg.Storage.SearchIdleTTL,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*tracker),
	}
}

// Search runs a title search for the session, cancelling the session's
// previous in-flight search. An empty fragment yields an empty result
// without querying the catalog.
func (s *Service) Search(ctx context.Context, sessionID, fragment string) (Result, error) {
	fragment = strings.TrimSpace(fragment)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	gen := s.begin(sessionID, cancel)

	if fragment == "" {
		return s.commit(sessionID, gen, Result{Query: fragment, Products: []product.Product{}})
	}

	var products []product.Product
	err := s.cms.Fetch(ctx, product.SearchQuery, map[string]any{"query": "*" + fragment + "*"}, &products)
	if err != nil && !errors.Is(err, cms.ErrNoResult) {
		if !s.release(sessionID, gen) {
			return Result{}, ErrSuperseded
		}
		return Result{}, fmt.Errorf("failed to search products: %w", err)
	}

	return s.commit(sessionID, gen, Result{Query: fragment, Products: product.Dedupe(products)})
}

// Latest returns the last committed result for the session
func (s *Service) Latest(sessionID string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.sessions[sessionID]
	if !ok {
		return Result{Products: []product.Product{}}
	}
	t.lastUsed = s.now()
	return t.latest
}

// Run prunes idle session trackers until ctx is done
func (s *Service) Run(ctx context.Context) error {
	interval := s.idleTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.Prune(); n > 0 {
				s.logger.WithField("sessions", n).Debug("Pruned idle search sessions")
			}
		}
	}
}

// Prune drops trackers idle for longer than the idle TTL and reports how many
func (s *Service) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	pruned := 0
	for id, t := range s.sessions {
		if t.cancel == nil && t.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			pruned++
		}
	}
	return pruned
}

func (s *Service) begin(sessionID string, cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.sessions[sessionID]
	if !ok {
		t = &tracker{latest: Result{Products: []product.Product{}}}
		s.sessions[sessionID] = t
	}
	if t.cancel != nil {
		t.cancel()
	}

	t.generation++
	t.cancel = cancel
	t.lastUsed = s.now()
	return t.generation
}

// release ends generation gen without committing a result and reports
// whether it was still the session's current search
func (s *Service) release(sessionID string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.sessions[sessionID]
	if !ok || t.generation != gen {
		return false
	}
	t.cancel = nil
	return true
}

func (s *Service) commit(sessionID string, gen uint64, r Result) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.sessions[sessionID]
	if !ok || t.generation != gen {
		return Result{}, ErrSuperseded
	}

	r.Generation = gen
	t.latest = r
	t.cancel = nil
	t.lastUsed = s.now()
	return r, nil
}
