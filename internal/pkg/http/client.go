package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/piresc/fleetsim/internal/pkg/circuitbreaker"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/retry"
)

// HTTPError represents a non-2xx response
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, truncate(e.Body, 256))
}

// Temporary reports whether retrying the request could succeed
func (e *HTTPError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// Client wraps http.Client with retry and circuit breaker functionality
type Client struct {
	httpClient *http.Client
	retrier    *retry.Retrier
	breaker    *circuitbreaker.CircuitBreaker
	logger     *logger.ZapLogger
}

// Config holds HTTP client configuration
type Config struct {
	Name    string
	Timeout time.Duration
	Retry   retry.Config
}

// NewClient creates a new HTTP client
func NewClient(config Config, log *logger.ZapLogger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	retryConfig := config.Retry
	retryConfig.IsRetryable = IsTemporary

	breakerConfig := circuitbreaker.DefaultConfig(config.Name)
	breakerConfig.IsFailure = IsTemporary

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		retrier:    retry.New(retryConfig, log),
		breaker:    circuitbreaker.New(breakerConfig, log),
		logger:     log,
	}
}

// GetJSON performs a GET request and decodes a 2xx JSON body into out
func (c *Client) GetJSON(ctx context.Context, url string, out interface{}) error {
	var body []byte
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			var err error
			body, err = c.get(ctx, url)
			return err
		})
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// BreakerStats returns the circuit breaker counters of the client
func (c *Client) BreakerStats() circuitbreaker.Stats {
	return c.breaker.Stats()
}

// IsTemporary reports whether err is worth retrying: transport failures and
// 5xx/429 responses are, 4xx responses and cancellations are not
func IsTemporary(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	return true
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
