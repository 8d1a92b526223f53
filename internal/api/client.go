// Package api fetches the country list from the configured REST endpoint.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single fetch when no timeout is configured
const DefaultTimeout = 10 * time.Second

// ClientConfig holds configuration options for the client
type ClientConfig struct {
	// URL of the endpoint returning the JSON array of countries
	URL string

	// Timeout for the whole request including the body (default: 10s)
	Timeout time.Duration
}

// Client performs one GET per FetchCountries call. It never retries and
// never caches.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a new client
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		url:        cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// URL returns the configured endpoint
func (c *Client) URL() string {
	return c.url
}

// FetchCountries downloads and decodes the raw country list.
// Every failure is a *FetchError.
func (c *Client) FetchCountries(ctx context.Context) ([]RawCountry, error) {
	if c.url == "" {
		return nil, &FetchError{Kind: KindTransport, Cause: ErrNoEndpoint}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: c.url, Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, URL: c.url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &FetchError{Kind: KindStatus, URL: c.url, StatusCode: resp.StatusCode}
	}

	var raw []RawCountry
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &FetchError{Kind: KindDecode, URL: c.url, Cause: err}
	}
	return raw, nil
}
