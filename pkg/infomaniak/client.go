package infomaniak

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const userAgent = "streamstats/1.0"

// Client fetches statistics for a single radio account.
type Client struct {
	httpClient *http.Client
	baseURL    string
	identity   string
	secret     string
}

func NewClient(cfg Config, identity, secret string) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		ResponseHeaderTimeout: cfg.Timeout,
	}

	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		identity:   identity,
		secret:     secret,
	}
}

// Status returns the raw diagnostic text for a mount.
func (c *Client) Status(ctx context.Context, m Mount) (string, error) {
	q := url.Values{}
	q.Set("mount", "/"+m.String())

	body, err := c.get(ctx, "/radio/diag/status.php", q, true)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Stats returns the audience counters from stats.xml.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	body, err := c.get(ctx, "/admin/stats.xml", nil, true)
	if err != nil {
		return nil, err
	}

	return parseStats(bytes.NewReader(body))
}

// Listeners returns the roster of currently connected listeners for a mount.
func (c *Client) Listeners(ctx context.Context, m Mount) ([]Listener, error) {
	q := url.Values{}
	q.Set("radio", m.String())
	q.Set("id", c.secret)

	body, err := c.get(ctx, "/mediastats.php", q, false)
	if err != nil {
		return nil, err
	}

	return parseRoster(bytes.NewReader(body))
}

func (c *Client) get(ctx context.Context, path string, query url.Values, auth bool) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Add("accept", "*/*")
	req.Header.Add("user-agent", userAgent)
	if auth {
		req.SetBasicAuth(c.identity, c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request URL can carry the account secret.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", path, ErrAuthFailed)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	return body, nil
}
