package brickarchitect

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bricksort/internal/services"
)

const (
	defaultBaseURL     = "https://brickarchitect.com"
	defaultHTTPTimeout = 30 * time.Second
)

// RootTerm is the top-level taxonomy term shared by every part.
const RootTerm = "Lego"

// PartInfo is the taxonomy result for one part lookup. The service may
// redirect a queried part to its canonical mold; ResolvedID carries the ID
// the final page belongs to, which is where metadata should be cached.
type PartInfo struct {
	ResolvedID int64
	Labels     []string
}

// Client scrapes taxonomy breadcrumbs and part images from BrickArchitect.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the BrickArchitect client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default service base (useful for tests/mocks).
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

// NewClient constructs a BrickArchitect client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// PartInfo fetches the part page and extracts the breadcrumb taxonomy path,
// root-most term first. The resolved ID is read from the final URL after
// redirects so renamed molds cache under their canonical ID.
func (c *Client) PartInfo(ctx context.Context, designID int64) (PartInfo, error) {
	url := fmt.Sprintf("%s/parts/%d", c.baseURL, designID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PartInfo{}, services.Wrap(services.ErrRemoteLookup, "brickarchitect", "part info", "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PartInfo{}, services.Wrap(services.ErrRemoteLookup, "brickarchitect", "part info", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PartInfo{}, services.Wrap(services.ErrRemoteLookup, "brickarchitect", "part info",
			fmt.Sprintf("part %d returned status %d", designID, resp.StatusCode), nil)
	}

	labels, err := parseBreadcrumb(resp.Body)
	if err != nil {
		return PartInfo{}, services.Wrap(services.ErrRemoteLookup, "brickarchitect", "part info",
			fmt.Sprintf("part %d breadcrumb", designID), err)
	}

	resolved := designID
	if resp.Request != nil && resp.Request.URL != nil {
		if id, ok := trailingID(resp.Request.URL.Path); ok {
			resolved = id
		}
	}

	return PartInfo{ResolvedID: resolved, Labels: labels}, nil
}

// Image fetches the PNG for a part and returns it base64-encoded.
func (c *Client) Image(ctx context.Context, designID int64) (string, error) {
	url := fmt.Sprintf("%s/content/parts/%d.png", c.baseURL, designID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", services.Wrap(services.ErrRemoteLookup, "brickarchitect", "image", "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrRemoteLookup, "brickarchitect", "image", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrRemoteLookup, "brickarchitect", "image",
			fmt.Sprintf("part %d returned status %d", designID, resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrRemoteLookup, "brickarchitect", "image", "read response", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// trailingID extracts the numeric ID from the final path segment, ignoring
// any non-numeric decoration after the leading digit run.
func trailingID(path string) (int64, bool) {
	segment := path
	if idx := strings.LastIndexByte(strings.TrimRight(path, "/"), '/'); idx >= 0 {
		segment = strings.TrimRight(path, "/")[idx+1:]
	}
	end := 0
	for end < len(segment) && segment[end] >= '0' && segment[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(segment[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
