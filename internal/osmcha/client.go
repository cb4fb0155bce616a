package osmcha

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// authScheme is the token scheme the OSMCHA API expects in the Authorization header.
const authScheme = "Token "

// defaultPageSize is the changeset listing page size when none is configured.
const defaultPageSize = 100

// Client issues authenticated requests against the OSMCHA API.
type Client struct {
	logger   *slog.Logger
	http     *http.Client
	baseURL  string
	token    string
	pageSize int
	maxPages int
}

// Options configures a Client beyond its required fields.
type Options struct {
	// PageSize is the changeset listing page size; defaults to 100.
	PageSize int
	// MaxPages bounds the pagination loop; 0 disables the guard.
	MaxPages int
	// Timeout is the per-request timeout; 0 means no timeout.
	Timeout time.Duration
}

// NewClient builds a Client for the given API root and raw token.
func NewClient(logger *slog.Logger, baseURL, token string, opts Options) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is empty")
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("API token is empty")
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		logger:   logger,
		http:     &http.Client{Timeout: opts.Timeout},
		baseURL:  baseURL,
		token:    token,
		pageSize: pageSize,
		maxPages: opts.MaxPages,
	}, nil
}

// Do validates req, applies the token scheme, and performs a single HTTP
// exchange, returning the raw response body. There are no retries: any
// transport failure or non-2xx status fails the call.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		c.logger.Error("request validation failed", "url", req.URL, "error", err)
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", req.URL, err)
	}
	httpReq.Header.Set("Authorization", authScheme+req.Authorization)
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}

	c.logger.Debug("osmcha request", "method", req.Method, "url", req.URL)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		reqErr := &RequestError{URL: req.URL, Err: err}
		c.logger.Error("osmcha request failed", "url", req.URL, "error", err)
		return nil, reqErr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		reqErr := &RequestError{URL: req.URL, Err: err}
		c.logger.Error("osmcha response read failed", "url", req.URL, "error", err)
		return nil, reqErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{URL: req.URL, StatusCode: resp.StatusCode}
		c.logger.Error("osmcha request failed", "url", req.URL, "status", resp.StatusCode)
		return nil, reqErr
	}
	return body, nil
}

// request builds a GET descriptor carrying the client token.
func (c *Client) request(url string) Request {
	return Request{URL: url, Method: http.MethodGet, Authorization: c.token}
}
