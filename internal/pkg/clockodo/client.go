package clockodo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/config"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/go-resty/resty/v2"
)

const (
	headerAPIUser     = "X-ClockodoApiUser"
	headerAPIKey      = "X-ClockodoApiKey"
	headerExternalApp = "X-Clockodo-External-Application"

	defaultAppName   = "clockodo-mcp"
	defaultUserAgent = "clockodo-mcp/unknown"
)

var _ clockodo.Client = (*Client)(nil)

// Observer receives one call per upstream round trip. status is 0 when no
// response was received.
type Observer interface {
	ObserveRequest(family clockodo.Family, method string, status int, duration time.Duration)
}

// Client talks to the Clockodo REST API. It holds only the normalized base
// URL and credentials and is safe for concurrent use.
type Client struct {
	http     *resty.Client
	baseURL  string
	apiUser  string
	observer Observer
}

type Option func(*Client)

// WithObserver reports every request to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// NewClient builds a client from configuration.
func NewClient(cfg config.ClockodoConfig, opts ...Option) *Client {
	c := &Client{
		http:    resty.New(),
		baseURL: NormalizeBaseURL(cfg.BaseURL),
		apiUser: cfg.APIUser,
	}
	for _, opt := range opts {
		opt(c)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c.http.
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeaders(defaultHeaders(cfg)).
		SetHeader("Accept", "application/json")

	return c
}

func defaultHeaders(cfg config.ClockodoConfig) map[string]string {
	appName := cfg.UserAgent
	if appName == "" {
		appName = defaultAppName
	}
	contact := cfg.ExternalAppContact
	if contact == "" {
		contact = cfg.APIUser
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return map[string]string{
		headerAPIUser:     cfg.APIUser,
		headerAPIKey:      cfg.APIKey,
		headerExternalApp: appName + ";" + contact,
		"User-Agent":      userAgent,
	}
}

// BaseURL returns the normalized base URL, always ending in "/api/".
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL builds the absolute endpoint of a family.
func (c *Client) URL(family clockodo.Family) string {
	return c.baseURL + family.Path()
}

// APIUser implements clockodo.Client.
func (c *Client) APIUser() string {
	return c.apiUser
}

// Fetch reads a family and normalizes its envelope.
func (c *Client) Fetch(ctx context.Context, family clockodo.Family, params clockodo.Params) (clockodo.Envelope, error) {
	env, err := c.do(ctx, family, http.MethodGet, c.URL(family), params, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeCollection(family, env)
}

// Create posts a new record of the family.
func (c *Client) Create(ctx context.Context, family clockodo.Family, body map[string]any) (clockodo.Envelope, error) {
	env, err := c.do(ctx, family, http.MethodPost, c.URL(family), nil, body)
	if err != nil {
		return nil, err
	}
	return NormalizeRecord(family, env), nil
}

// Update replaces fields of the record id.
func (c *Client) Update(ctx context.Context, family clockodo.Family, id int, body map[string]any) (clockodo.Envelope, error) {
	env, err := c.do(ctx, family, http.MethodPut, c.baseURL+family.RecordPath(id), nil, body)
	if err != nil {
		return nil, err
	}
	return NormalizeRecord(family, env), nil
}

// Delete removes the record id.
func (c *Client) Delete(ctx context.Context, family clockodo.Family, id int) (clockodo.Envelope, error) {
	env, err := c.do(ctx, family, http.MethodDelete, c.baseURL+family.RecordPath(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return NormalizeRecord(family, env), nil
}

func (c *Client) do(ctx context.Context, family clockodo.Family, method, url string, params clockodo.Params, body map[string]any) (clockodo.Envelope, error) {
	if !family.Valid() {
		return nil, fmt.Errorf("unknown resource family %q", family)
	}

	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, url)
	if err != nil {
		c.observe(family, method, 0, time.Since(start))
		return nil, &clockodo.UpstreamRequestError{Method: method, URL: url, Err: err}
	}
	c.observe(family, method, resp.StatusCode(), time.Since(start))

	if !resp.IsSuccess() {
		return nil, &clockodo.UpstreamRequestError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	return decodeEnvelope(family, resp.Body())
}

func (c *Client) observe(family clockodo.Family, method string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(family, method, status, d)
	}
}
