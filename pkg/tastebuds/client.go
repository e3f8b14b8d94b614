// Package tastebuds is a typed client for the TasteBuds REST API. It maps
// each domain operation onto exactly one HTTP exchange against a configured
// base URL, attaches the current bearer token, decodes JSON, and normalizes
// failures into a single error type.
//
// The client is stateless: no retries, no response caching, no de-duplication
// of in-flight requests. Two concurrent calls produce two independent
// exchanges, and callers own the ordering of results.
package tastebuds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apierrors "tastebuds-client/internal/common/errors"
	"tastebuds-client/internal/common/logger"
	"tastebuds-client/internal/common/metrics"
	"tastebuds-client/internal/common/session"
)

const (
	// DefaultBaseURL points at a local backend, path prefix included.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "tastebuds-go"
)

// Client talks to the TasteBuds backend. It holds no session state of its
// own: the token source is consulted on every call, so a rotated token is
// picked up without reconstructing the client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     session.TokenSource
	logger     logger.Logger
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a custom *http.Client (timeout, transport, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Client for the given base URL. A nil token source behaves
// like a logged-out session: no Authorization header is ever sent.
func New(baseURL string, tokens session.TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		logger:     logger.NewNoOpLogger(),
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, "", out)
}

// post issues a POST request with a JSON body (nil body allowed) and decodes
// the JSON response into out.
func (c *Client) post(ctx context.Context, op, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, op, http.MethodPost, path, query, reader, "application/json", out)
}

// do performs a single HTTP exchange. Every failure surfaces as an
// *apierrors.APIError; transport failures carry KindNetwork.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Token is read at call time, never cached on the client.
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Debug("API request", map[string]interface{}{
		"operation": op,
		"method":    method,
		"url":       endpoint,
		"requestId": requestID,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.APIRequestErrors.WithLabelValues(op, string(apierrors.KindNetwork)).Inc()
		c.logger.Warn("API request failed", map[string]interface{}{
			"operation": op,
			"requestId": requestID,
			"error":     err.Error(),
		})
		netErr := apierrors.NewNetworkError(err)
		netErr.RequestID = requestID
		return netErr
	}
	defer resp.Body.Close()

	metrics.APIRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequestErrors.WithLabelValues(op, string(apierrors.KindNetwork)).Inc()
		netErr := apierrors.NewNetworkError(fmt.Errorf("failed to read response body: %w", err))
		netErr.RequestID = requestID
		return netErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := apierrors.FromResponse(resp.StatusCode, "", respBody)
		apiErr.RequestID = requestID
		metrics.APIRequestErrors.WithLabelValues(op, string(apiErr.Kind)).Inc()
		c.logger.Warn("API error response", map[string]interface{}{
			"operation": op,
			"status":    resp.StatusCode,
			"requestId": requestID,
			"error":     apiErr.Message,
		})
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}
