package rebrickable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bricksort/internal/services"
)

const (
	defaultBaseURL     = "https://rebrickable.com"
	defaultHTTPTimeout = 30 * time.Second

	// Set numbers carry a variant suffix ("10179-1"); a bare number gets the
	// first variant appended before the lookup.
	defaultVariantSuffix = "-1"

	minSetNumberLength = 4
)

// Client wraps the Rebrickable v3 API for set part inventories.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the Rebrickable client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a Rebrickable API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// NormalizeSetNumber validates a set number and appends the default variant
// suffix when the caller supplied a bare number.
func NormalizeSetNumber(setNumber string) (string, error) {
	trimmed := strings.TrimSpace(setNumber)
	if len(trimmed) < minSetNumberLength {
		return "", services.Wrap(services.ErrInvalidParameter, "rebrickable", "normalize set number",
			fmt.Sprintf("%q is not a valid set number", setNumber), nil)
	}
	if !strings.Contains(trimmed, "-") {
		trimmed += defaultVariantSuffix
	}
	return trimmed, nil
}

// SetParts fetches the part inventory for a set number and returns the raw
// JSON body as served by the API.
func (c *Client) SetParts(ctx context.Context, setNumber string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "rebrickable", "set parts",
			"rebrickable.api_key is not configured (set REBRICKABLE_API_KEY or edit the config file)", nil)
	}

	normalized, err := NormalizeSetNumber(setNumber)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/v3/lego/sets/%s/parts/", c.baseURL, normalized)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrRemoteLookup, "rebrickable", "set parts", "build request", err)
	}
	req.Header.Set("Authorization", "key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrRemoteLookup, "rebrickable", "set parts", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ErrRemoteLookup, "rebrickable", "set parts",
			fmt.Sprintf("set %s returned status %d", normalized, resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrRemoteLookup, "rebrickable", "set parts", "read response", err)
	}
	return body, nil
}
