// Package fetch provides the raw text/HTML retrieval capability consumed by
// the scraping adapters. Transport details of any single provider stay
// behind this boundary.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 12 * time.Second
	maxBodyBytes   = 2 << 20
)

// Options tune a single fetch call.
type Options struct {
	// Timeout bounds the whole call. Zero means the default.
	Timeout time.Duration
	// ViaProxy routes the request through the configured render proxy,
	// for hosts that refuse plain clients.
	ViaProxy bool
}

// Fetcher retrieves the raw text behind an absolute URL, or fails.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, opts Options) (string, error)
}

type ClientOptions struct {
	ProxyBaseURL string
	UserAgent    string
	HTTPClient   *http.Client
}

// Client is the default HTTP-backed Fetcher.
type Client struct {
	proxyBase string
	userAgent string
	client    *http.Client
}

func NewClient(opts ClientOptions) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = "stylist/1.0 (+https://stylist.app)"
	}
	return &Client{
		proxyBase: strings.TrimRight(strings.TrimSpace(opts.ProxyBaseURL), "/"),
		userAgent: ua,
		client:    client,
	}
}

func (c *Client) Fetch(ctx context.Context, rawURL string, opts Options) (string, error) {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return "", fmt.Errorf("fetch: empty url")
	}
	if opts.ViaProxy {
		if c.proxyBase == "" {
			return "", fmt.Errorf("fetch: proxy requested but not configured")
		}
		target = c.proxyBase + "?url=" + url.QueryEscape(target)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/json;q=0.9,*/*;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch: %s returned status %d", req.URL.Hostname(), resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("fetch: read body: %w", err)
	}
	return string(body), nil
}

var _ Fetcher = (*Client)(nil)
