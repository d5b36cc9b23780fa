package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"yenepay-go/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultTimeout = 15 * time.Second

// HTTPTransport posts JSON payloads to the YenePay API. It is safe for
// concurrent use.
type HTTPTransport struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURLs   BaseURLs
	limiter    *rate.Limiter
}

type TransportOption func(*HTTPTransport)

// WithHTTPClient replaces the underlying http.Client. The client itself is
// never modified; WithTimeout applies to a copy.
func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		if c != nil {
			t.httpClient = c
		}
	}
}

// WithTimeout sets the per-request timeout, whatever the option order.
func WithTimeout(d time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithRateLimit throttles outgoing calls. Calls wait for a token; a context
// cancelled while waiting surfaces as an error. A zero limit disables it.
func WithRateLimit(limit rate.Limit, burst int) TransportOption {
	return func(t *HTTPTransport) {
		if limit <= 0 {
			t.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithBaseURLs points the transport at other endpoints, e.g. a local mock
// of the gateway.
func WithBaseURLs(urls BaseURLs) TransportOption {
	return func(t *HTTPTransport) {
		if urls != nil {
			t.baseURLs = urls
		}
	}
}

// ----------------- Constructor -----------------

func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURLs:   DefaultBaseURLs,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.timeout > 0 && t.httpClient.Timeout != t.timeout {
		c := *t.httpClient
		c.Timeout = t.timeout
		t.httpClient = &c
	}
	return t
}

// ----------------- Send -----------------

func (t *HTTPTransport) Send(ctx context.Context, endpoint Endpoint, payload any, sandbox bool) (*Response, error) {
	url := t.baseURLs.URL(endpoint, sandbox)
	if url == "" {
		return nil, fmt.Errorf("no url configured for %s endpoint", endpoint)
	}

	log := logger.FromCtx(ctx).With(
		zap.Stringer("endpoint", endpoint),
		zap.Bool("sandbox", sandbox),
	)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error("Failed to marshal gateway request", zap.Error(err))
		return nil, fmt.Errorf("failed to marshal %s request: %w", endpoint, err)
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			log.Warn("Gateway call throttled", zap.Error(err))
			return nil, fmt.Errorf("%s request throttled: %w", endpoint, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		req.Header.Set(logger.RequestIDHeader, reqID)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Error("Gateway request failed", zap.Error(err))
		return nil, fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	log.Info("Gateway responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return NewResponse(resp.StatusCode, raw), nil
}
