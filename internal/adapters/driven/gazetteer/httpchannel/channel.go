// Package httpchannel provides a QueryChannel adapter speaking to the
// GeoNames FST gazetteer service over HTTP.
package httpchannel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/annolab/geotag/internal/core/ports/driven"
)

// Ensure Channel implements the interface.
var _ driven.QueryChannel = (*Channel)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:9714"
	DefaultTimeout = 60 * time.Second

	// DefaultRequestsPerSecond is conservative; one tagging call is one
	// request, so the limiter only matters for batch runs.
	DefaultRequestsPerSecond = 10.0
	DefaultBurstSize         = 5
)

// Config holds configuration for the gazetteer channel.
type Config struct {
	// BaseURL is the gazetteer service base URL (default: http://localhost:9714).
	BaseURL string

	// Timeout is the round-trip timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained request rate (default: 10).
	RequestsPerSecond float64

	// BurstSize is the token bucket burst size (default: 5).
	BurstSize int
}

// Channel posts query payloads to the service's process endpoint.
type Channel struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewChannel creates a new HTTP gazetteer channel.
func NewChannel(cfg Config) *Channel {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.BurstSize == 0 {
		cfg.BurstSize = DefaultBurstSize
	}

	return &Channel{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// RoundTrip sends one query document and returns the response document.
func (c *Channel) RoundTrip(ctx context.Context, query []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/process",
		bytes.NewReader(query),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gazetteer error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Ping validates the service is reachable by fetching its documentation
// endpoint. This is a lightweight check that does not run a search.
func (c *Channel) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/documentation", http.NoBody)
	if err != nil {
		return fmt.Errorf("gazetteer: failed to create ping request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gazetteer: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gazetteer: service returned status %d", resp.StatusCode)
	}
	return nil
}
