package operator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// API defines the operator endpoints the dashboard consumes.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	Devices(ctx context.Context) ([]string, error)
	StationState(ctx context.Context, name string) ([]bool, error)
	ArmState(ctx context.Context) (bool, error)
	Status(ctx context.Context, name string) (string, error)
	Dispatch(ctx context.Context, op Operation) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Config points the client at an operator service.
type Config struct {
	BaseAddress string
}

// Client talks to the operator HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.log = logger }
}

const (
	DefaultBaseAddress = "http://localhost:5000"
	defaultUserAgent   = "labmon/0.1"
	requestTimeout     = 5 * time.Second
	contentTypeJSON    = "application/json"
)

// NewClient builds a Client for cfg.BaseAddress.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(cfg.BaseAddress)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised operator address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Devices lists every addressable device name.
func (c *Client) Devices(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.Get(ctx, "/driver", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// StationState returns the occupancy of each spot on the named station.
func (c *Client) StationState(ctx context.Context, name string) ([]bool, error) {
	var spots []bool
	if err := c.Get(ctx, devicePath(name, "state"), &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

// ArmState reports whether the arm currently holds a sample.
func (c *Client) ArmState(ctx context.Context) (bool, error) {
	var spot bool
	if err := c.Get(ctx, devicePath(ArmName, "state"), &spot); err != nil {
		return false, err
	}
	return spot, nil
}

// Status returns the free-form status label of a device.
func (c *Client) Status(ctx context.Context, name string) (string, error) {
	var status string
	if err := c.Get(ctx, devicePath(name, "status"), &status); err != nil {
		return "", err
	}
	return status, nil
}

// Dispatch posts an operation for the arm. The response body is ignored.
func (c *Client) Dispatch(ctx context.Context, op Operation) error {
	return c.Post(ctx, devicePath(ArmName, "operation"), op, nil)
}

// Get issues a GET for path and decodes the JSON body into dest.
func (c *Client) Get(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodGet, path, nil, dest)
}

// Post sends body as JSON to path and decodes the JSON response into dest
// when dest is non-nil.
func (c *Client) Post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, path, body, dest)
}

func devicePath(name, leaf string) string {
	return "/driver/" + name + "/" + leaf
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.log.Trace().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("operator request")

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s %s returned status %d", method, rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	// The operator does not always label its responses, so the body is
	// parsed as JSON whatever Content-Type says.
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(address string) (*url.URL, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		trimmed = DefaultBaseAddress
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse operator address %q: %w", address, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse operator address %q: missing host", address)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
