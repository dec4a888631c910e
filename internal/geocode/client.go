package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apperrors "cityform/internal/errors"
)

// Default configuration values.
const (
	DefaultLimit     = 5
	DefaultTimeout   = 5 * time.Second
	DefaultUserAgent = "cityform/1.0"

	// maxBodyBytes caps how much of a response body is decoded.
	maxBodyBytes = 1 << 20
)

// Searcher returns display names for a free-text city query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string) ([]string, error)

// Search calls f(ctx, query).
func (f SearcherFunc) Search(ctx context.Context, query string) ([]string, error) {
	return f(ctx, query)
}

// place mirrors the relevant part of one search result.
type place struct {
	DisplayName string `json:"display_name"`
}

// Client issues search requests against a configured endpoint.
type Client struct {
	endpoint   *url.URL
	userAgent  string
	limit      int
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds each HTTP round trip. Time spent waiting for a rate
// limit slot does not count against it.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLimit sets the maximum number of results requested and returned.
func WithLimit(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithRateLimit throttles outgoing requests to rps per second with the given
// burst. A request waits for a token; it is never dropped. rps <= 0 disables
// throttling.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewClient creates a client for endpoint. The endpoint is required; there
// is no built-in default service.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "geocoder endpoint is required", nil)
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError,
			fmt.Sprintf("invalid geocoder endpoint %q", endpoint), err)
	}

	c := &Client{
		endpoint:  u,
		userAgent: DefaultUserAgent,
		limit:      DefaultLimit,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Search requests at most the configured limit of results for query and
// returns their display names in response order. A throttled call waits for
// its slot until ctx is done; the request timeout starts once the slot is
// granted.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperrors.New(apperrors.CodeRateLimited, "wait for search slot", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query), nil)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeNetworkFailure, "build search request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeNetworkFailure, "search request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.CodeUpstreamStatus,
			fmt.Sprintf("geocoder returned status %d", resp.StatusCode), nil)
	}

	var places []place
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&places); err != nil {
		return nil, apperrors.New(apperrors.CodeDecodeFailed, "decode search response", err)
	}

	names := make([]string, 0, min(len(places), c.limit))
	for _, p := range places {
		if len(names) == c.limit {
			break
		}
		if p.DisplayName == "" {
			continue
		}
		names = append(names, p.DisplayName)
	}
	return names, nil
}

// searchURL keeps any query parameters already present on the endpoint.
func (c *Client) searchURL(query string) string {
	u := *c.endpoint
	params := u.Query()
	params.Set("format", "json")
	params.Set("city", query)
	params.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = params.Encode()
	return u.String()
}
