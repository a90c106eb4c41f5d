package ipapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var ErrLookupFailed = errors.New("geolocation lookup failed")

// Location is the subset of the ip-api.com response kept for a listener.
type Location struct {
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Region      string  `json:"region"`
	RegionName  string  `json:"regionName"`
	City        string  `json:"city"`
	Zip         string  `json:"zip,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone,omitempty"`
	ISP         string  `json:"isp,omitempty"`
	Org         string  `json:"org,omitempty"`
	AS          string  `json:"as,omitempty"`
}

type response struct {
	Location
	Status  string `json:"status"`
	Message string `json:"message"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	dialer := &net.Dialer{Timeout: 5 * time.Second}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{DialContext: dialer.DialContext},
			Timeout:   cfg.Timeout,
		},
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Locate looks up a single IP address.
func (c *Client) Locate(ctx context.Context, ip string) (*Location, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json/"+url.PathEscape(ip), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d for %s", ErrLookupFailed, resp.StatusCode, ip)
	}

	var r response
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if r.Status != "success" {
		return nil, fmt.Errorf("%w: %s: %s", ErrLookupFailed, ip, r.Message)
	}

	return &r.Location, nil
}
