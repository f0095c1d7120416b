// Package folioapi provides a Go client for the portfolio backend.
//
// The backend keeps the list of holdings, supplies live prices and answers
// symbol searches. This package only builds requests and decodes responses;
// it keeps no state between calls.
package folioapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"resty.dev/v3"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second

	// RequestIDHeader carries a per-request id so client and backend logs can be matched.
	RequestIDHeader = "X-Request-Id"
)

// Logger receives the client's diagnostic output. It is also handed to resty.
type Logger interface {
	Errorf(format string, v ...any)
	Warnf(format string, v ...any)
	Debugf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Errorf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Debugf(string, ...any) {}

// Client handles HTTP requests to the portfolio backend.
type Client struct {
	BaseURL string

	rc      *resty.Client
	limiter *rate.Limiter
	logger  Logger
	timeout time.Duration
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRateLimit sets the rate limit. Zero or less disables limiting.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient creates a new client for the backend at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  nopLogger{},
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.rc = resty.New().
		SetBaseURL(c.BaseURL).
		SetTimeout(c.timeout).
		SetLogger(c.logger)

	return c
}

// get performs a rate-limited GET request and decodes the body into result.
func (c *Client) get(ctx context.Context, path string, params map[string]string, result any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, result)
}

// post performs a rate-limited POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

func (c *Client) do(ctx context.Context, method, path string, params map[string]string, body, result any) error {
	op := method + " " + path

	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	requestID := uuid.NewString()
	req := c.rc.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader(RequestIDHeader, requestID).
		SetHeader("Accept", "application/json")

	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		req.SetHeader("Content-Type", "application/json").SetBody(payload)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debugf("%s -> %d in %s (request %s)", op, resp.StatusCode(), resp.Duration(), requestID)

	if err := checkResponse(resp.StatusCode(), data, path); err != nil {
		return err
	}

	if result == nil || len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, result); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}
