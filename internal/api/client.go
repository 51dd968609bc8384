// Package api is the HTTP client for the closet service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/service"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// Config configures a Client.
type Config struct {
	HTTPClient        *http.Client
	BaseURL           string
	Breaker           BreakerConfig
	Timeout           time.Duration
	RequestsPerSecond float64
	RetryAttempts     int
}

// Client talks to the closet service. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *breaker
	baseURL    string
	retry      common.RetryOptions
}

var _ service.ClothesService = (*Client)(nil)

// New creates a client for the service rooted at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", common.ErrInvalidConfig, cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	retry := common.DefaultRetryOptions()
	if cfg.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.RetryAttempts
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		breaker:    newBreaker(cfg.Breaker),
		baseURL:    strings.TrimRight(base.String(), "/"),
		retry:      retry,
	}, nil
}

// envelope is the service's standard reply wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count,omitempty"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

// request describes one call. Exactly one of JSON and Body may be set.
type request struct {
	JSON        any
	Body        []byte
	Query       url.Values
	Method      string
	Path        string
	ContentType string
	Fallback    string
}

// endpoint joins the base URL with an already escaped path.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// call performs r and decodes the envelope. GETs are retried on transient failures.
func (c *Client) call(ctx context.Context, r request) (*envelope, error) {
	var env *envelope
	op := func() error {
		resp, err := c.send(ctx, r)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		var decoded envelope
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &decoded); err != nil {
				return fmt.Errorf("failed to decode response from %s %s: %w", r.Method, r.Path, err)
			}
		}
		env = &decoded
		return nil
	}

	var err error
	if r.Method == http.MethodGet {
		err = common.WithRetry(ctx, op, c.retry)
	} else {
		err = op()
	}
	if err != nil {
		return nil, err
	}
	return env, nil
}

// fetch performs a GET whose body is not an envelope and returns the raw bytes.
func (c *Client) fetch(ctx context.Context, r request) ([]byte, string, error) {
	var (
		body        []byte
		contentType string
	)
	err := common.WithRetry(ctx, func() error {
		resp, err := c.send(ctx, r)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		contentType = resp.Header.Get("Content-Type")
		return nil
	}, c.retry)
	return body, contentType, err
}

// send issues one HTTP request. Non-2xx replies are turned into *APIError and their body is closed.
func (c *Client) send(ctx context.Context, r request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var (
		payload     io.Reader
		contentType = r.ContentType
	)
	switch {
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
		contentType = "application/json"
	case r.Body != nil:
		payload = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.endpoint(r.Path, r.Query), payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.breaker.execute(func() (*http.Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		fallback := r.Fallback
		if fallback == "" {
			fallback = msgRequestFailed
		}
		return nil, &APIError{
			Method:     r.Method,
			Path:       r.Path,
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(body, fallback),
			RequestID:  requestID,
		}
	})

	attrs := []any{
		"method", r.Method,
		"path", r.Path,
		"request_id", requestID,
		"duration", time.Since(start),
	}
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			attrs = append(attrs, "status", apiErr.StatusCode)
		}
		slog.Debug("Request failed", append(attrs, "error", err)...)
		return nil, err
	}
	slog.Debug("Request completed", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}

// decodeData unmarshals the envelope's data into out. A missing data field leaves out untouched.
func decodeData(env *envelope, out any) error {
	if env == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
