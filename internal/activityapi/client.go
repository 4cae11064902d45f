// Package activityapi is the HTTP client for the activities service.
package activityapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nfrund/signupboard/internal/domain"
)

const (
	opList       = "list activities"
	opSignup     = "sign up"
	opUnregister = "unregister"

	// maxWriteBodySize caps how much of a sign-up or removal response is
	// read. Collection bodies are read whole.
	maxWriteBodySize = 1 << 20
)

// Result is the outcome of a successful write call.
type Result struct {
	// Message is the service's confirmation text; empty when it sent none.
	Message string
}

// Client talks to the activities service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a request timeout. Zero keeps the HTTP client's own
// timeout. The client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the service base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListActivities fetches the full activity collection.
func (c *Client) ListActivities(ctx context.Context) (*domain.Collection, error) {
	body, err := c.do(ctx, opList, http.MethodGet, c.baseURL+"/activities", 0)
	if err != nil {
		return nil, err
	}

	collection, err := domain.ParseCollection(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opList, ErrMalformedResponse)
	}
	return collection, nil
}

// Signup registers email for the named activity.
func (c *Client) Signup(ctx context.Context, activity, email string) (Result, error) {
	return c.write(ctx, opSignup, http.MethodPost, activityURL(c.baseURL, activity, "signup", email))
}

// Unregister removes email from the named activity.
func (c *Client) Unregister(ctx context.Context, activity, email string) (Result, error) {
	return c.write(ctx, opUnregister, http.MethodDelete, activityURL(c.baseURL, activity, "participants", email))
}

// activityURL builds base/activities/{activity}/{action}?email={email} with
// the activity escaped as a path segment and the email as a query value.
func activityURL(base, activity, action, email string) string {
	q := url.Values{"email": {email}}
	return base + "/activities/" + url.PathEscape(activity) + "/" + action + "?" + q.Encode()
}

func (c *Client) write(ctx context.Context, op, method, target string) (Result, error) {
	body, err := c.do(ctx, op, method, target, maxWriteBodySize)
	if err != nil {
		return Result{}, err
	}
	// A 2xx body that is not a JSON object is treated as {}.
	return Result{Message: bodyMessage(body)}, nil
}

// do sends the request and returns the body. limit > 0 truncates the body to
// that many bytes.
func (c *Client) do(ctx context.Context, op, method, target string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("activities request failed", "op", op, "method", method, "error", err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("activities request",
		"op", op,
		"method", method,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestError{Op: op, Status: resp.StatusCode, Message: bodyMessage(body)}
	}
	return body, nil
}
