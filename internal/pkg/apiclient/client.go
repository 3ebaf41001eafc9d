package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	HeaderCompanyID = "X-Company-ID"

	maxResponseBytes = 10 << 20
)

// Session is the part of the client session the gateway reads and clears.
type Session interface {
	Token() string
	CompanyPublicID() string
	Logout(ctx context.Context) error
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	session    Session
	logger     *slog.Logger
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its transport is wrapped so
// auth headers are still attached.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		c.httpClient = &clone
	}
}

// WithTimeout bounds every request, whatever client WithHTTPClient supplies.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(baseURL string, session Session, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme must be http or https", baseURL)
	}
	if session == nil {
		return nil, fmt.Errorf("api client requires a session")
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		session:    session,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient.Transport = &authTransport{base: base, session: session}

	return c, nil
}

// URL builds the absolute backend URL for path and query.
func (c *Client) URL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	u.RawQuery = query.Encode()
	return u.String()
}

// Call sends one request and decodes the envelope. Non-2xx responses return
// an *APIError; a 401 additionally clears the session before returning.
func Call[T any](ctx context.Context, c *Client, method, path string, body any, query url.Values) (*Response[T], error) {
	resp, err := c.send(ctx, method, path, body, query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, raw)
	}

	out := &Response[T]{}
	if len(bytes.TrimSpace(raw)) == 0 {
		out.Status = StatusSuccess
		return out, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
	}
	return out, nil
}

// Do is Call with a declared business failure also reported as an error.
func Do[T any](ctx context.Context, c *Client, method, path string, body any, query url.Values) (*Response[T], error) {
	resp, err := Call[T](ctx, c, method, path, body, query)
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}

// Download streams a backend-generated file into w and returns its content type.
func (c *Client) Download(ctx context.Context, path string, query url.Values, w io.Writer) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, path, nil, query)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return "", newAPIError(resp.StatusCode, raw)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("download %s: %w", path, err)
	}
	return resp.Header.Get("Content-Type"), nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, query url.Values) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api call failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx, method, path)
	}
	return resp, nil
}

// handleUnauthorized clears the session. Concurrent 401s clear an already
// cleared session, which is a no-op.
func (c *Client) handleUnauthorized(ctx context.Context, method, path string) {
	c.logger.Info("session cleared after 401", "method", method, "path", path)
	if err := c.session.Logout(context.WithoutCancel(ctx)); err != nil {
		c.logger.Warn("failed to persist cleared session", "error", err)
	}
}
