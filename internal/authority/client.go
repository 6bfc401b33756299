// Package authority is the typed client for the remote backend authority.
// All booking/offer/payment truth lives server-side; responses are trusted
// once HTTP-successful.
package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"venuepay/internal/shared/config"
	"venuepay/pkg/logger"
)

var (
	// ErrTimeout marks a bounded request that ran out of time. Surfaced as a
	// distinct "request timed out, please retry" condition, never conflated
	// with a generic failure.
	ErrTimeout = errors.New("authority request timed out")

	// ErrTransport marks a network-level failure before any HTTP status was
	// received.
	ErrTransport = errors.New("authority request failed in transit")
)

// APIError is a non-2xx response from the authority. Message carries the
// server's own message verbatim when it supplies one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authority returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("authority returned %d", e.StatusCode)
}

// IsRetryableStatus reports whether err is an APIError with a status the
// gateway order flow may retry (bad gateway / unavailable / gateway timeout).
func IsRetryableStatus(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsTransport reports whether err never produced an HTTP status (timeouts included)
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrTimeout)
}

// Client talks JSON-over-HTTPS to the backend authority
type Client struct {
	baseURL         string
	httpClient      *http.Client
	defaultTimeout  time.Duration
	criticalTimeout time.Duration
	logger          *logger.Logger
}

// NewClient creates a new authority client
func NewClient(cfg config.AuthorityConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		// Per-request deadlines come from contexts, not a client-wide timeout
		httpClient:      &http.Client{},
		defaultTimeout:  cfg.DefaultTimeout,
		criticalTimeout: cfg.CriticalTimeout,
		logger:          log,
	}
}

// envelope is the authority's standard response shape
type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// do performs one JSON round-trip. token is forwarded as a bearer header
// when non-empty; out, when non-nil, receives the envelope's data payload.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if jsonErr := json.Unmarshal(respBody, &env); jsonErr == nil && env.Message != "" {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(env.Data) == 0 {
		// Some endpoints respond with the payload at the top level
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response payload: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
