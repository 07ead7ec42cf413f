// internal/infrastructure/cms/client.go
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/retry"
)

var (
	// ErrUnavailable marks transport failures and 5xx/429 answers; these are retried.
	ErrUnavailable = errors.New("cms unavailable")
	// ErrQuery marks answers the CMS rejected; these are not retried.
	ErrQuery = errors.New("cms rejected query")
)

// Querier runs a query with parameters and decodes the result into dest.
// A null result leaves dest untouched and returns ErrNoResult.
type Querier interface {
	Fetch(ctx context.Context, query string, params map[string]any, dest any) error
}

// ErrNoResult is returned when the query projection yields null
var ErrNoResult = errors.New("cms query returned no result")

// Client talks to the content store's HTTP query endpoint
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	retry      retry.Config
	logger     *logrus.Logger
}

// queryResponse is the envelope returned by the query endpoint
type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Ms     int             `json:"ms"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
		Type        string `json:"type"`
	} `json:"error"`
}

// NewClient creates a new CMS client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		endpoint: queryEndpoint(cfg.CMS),
		token:    cfg.CMS.Token,
		httpClient: &http.Client{
			Timeout: cfg.CMS.Timeout,
		},
		retry: retry.Config{
			MaxAttempts: cfg.CMS.MaxAttempts,
			Backoff:     retry.ExponentialBackoff(cfg.CMS.RetryDelay),
			ShouldRetry: func(err error) bool { return errors.Is(err, ErrUnavailable) },
		},
		logger: logger,
	}
}

func queryEndpoint(cfg config.CMSConfig) string {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		host := "api.sanity.io"
		if cfg.UseCDN {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}

	version := strings.TrimPrefix(cfg.APIVersion, "v")
	return fmt.Sprintf("%s/v%s/data/query/%s", base, version, url.PathEscape(cfg.Dataset))
}

// Fetch runs query with params and decodes the result into dest
func (c *Client) Fetch(ctx context.Context, query string, params map[string]any, dest any) error {
	reqURL, err := c.buildURL(query, params)
	if err != nil {
		return err
	}

	started := time.Now()
	raw, err := retry.DoWithResult(ctx, c.retry, func() (json.RawMessage, error) {
		return c.do(ctx, reqURL)
	})
	if err != nil {
		c.logger.WithError(err).WithField("query", compact(query)).Error("CMS query failed")
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"query":   compact(query),
		"latency": time.Since(started),
	}).Debug("CMS query completed")

	if len(raw) == 0 || string(raw) == "null" {
		return ErrNoResult
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode CMS result: %w", err)
	}

	return nil
}

func (c *Client) buildURL(query string, params map[string]any) (string, error) {
	values := url.Values{}
	values.Set("query", query)

	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to encode CMS parameter %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	return c.endpoint + "?" + values.Encode(), nil
}

func (c *Client) do(ctx context.Context, reqURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create CMS request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("%w: %s", ErrQuery, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("%w: status %d", ErrQuery, resp.StatusCode)
	}

	var envelope queryResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode CMS response: %w", err)
	}

	return envelope.Result, nil
}

// compact squeezes whitespace so queries log on one line
func compact(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
