// Package cmstest provides an in-process content store for tests.
package cmstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/your-org/storefront-backend/internal/config"
)

// Handler produces the result for a query given its decoded parameters
type Handler func(params map[string]any) any

type route struct {
	match   string
	status  int
	handler Handler
}

// Server answers query requests from registered routes. Routes are matched
// in registration order by substring of the query text.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	routes     []route
	calls      int
	lastParams map[string]any
	lastAuth   string
}

// NewServer starts a server that is closed when the test ends
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle answers queries containing match with result
func (s *Server) Handle(match string, result any) {
	s.HandleFunc(match, func(map[string]any) any { return result })
}

// HandleFunc answers queries containing match with fn's result
func (s *Server) HandleFunc(match string, fn Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route{match: match, status: http.StatusOK, handler: fn})
}

// Fail answers queries containing match with the given status
func (s *Server) Fail(match string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route{match: match, status: status})
}

// Calls is the number of requests served so far
func (s *Server) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// LastParams returns the decoded $-parameters of the last request
func (s *Server) LastParams() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastParams
}

// LastAuthorization returns the Authorization header of the last request
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

// Config returns a configuration pointing the CMS client at this server
func (s *Server) Config() *config.Config {
	return &config.Config{
		CMS: config.CMSConfig{
			ProjectID:   "test",
			Dataset:     "production",
			APIVersion:  "2025-01-01",
			BaseURL:     s.URL,
			MaxAttempts: 1,
			ImageWidth:  200,
		},
		Catalog: config.CatalogConfig{FeaturedTitle: "ComfyChair"},
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	params := make(map[string]any)
	for key, values := range r.URL.Query() {
		if !strings.HasPrefix(key, "$") || len(values) == 0 {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(values[0]), &v); err != nil {
			http.Error(w, `{"error":{"description":"bad param"}}`, http.StatusBadRequest)
			return
		}
		params[strings.TrimPrefix(key, "$")] = v
	}

	s.mu.Lock()
	s.calls++
	s.lastParams = params
	s.lastAuth = r.Header.Get("Authorization")
	var matched *route
	for i := range s.routes {
		if strings.Contains(query, s.routes[i].match) {
			matched = &s.routes[i]
			break
		}
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if matched == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"result": nil})
		return
	}
	if matched.status != http.StatusOK {
		w.WriteHeader(matched.status)
		_, _ = w.Write([]byte(`{"error":{"description":"forced failure","type":"test"}}`))
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"result": matched.handler(params), "ms": 1})
}
