package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vss-session/internal/config"
	apperrors "vss-session/internal/errors"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"

	maxResponseBytes = 1 << 20
)

// Sender sends one request, attaching accessToken as a bearer credential when it is not empty
type Sender interface {
	Send(ctx context.Context, req *Request, accessToken string) (*Response, error)
}

// Breaker trips after repeated transport failures
type Breaker interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
}

// MetricsRecorder receives request counters and latencies
type MetricsRecorder interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
}

// Client is the HTTP transport to the session backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    Breaker
	metrics    MetricsRecorder
	log        *slog.Logger
}

var _ Sender = (*Client)(nil)

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithBreaker(breaker Breaker) ClientOption {
	return func(c *Client) {
		c.breaker = breaker
	}
}

func WithMetrics(metrics MetricsRecorder) ClientOption {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient creates a transport for cfg.BaseURL. A non-positive rate limit disables limiting.
func NewClient(cfg config.APIConfig, log *slog.Logger, opts ...ClientOption) *Client {
	limit := rate.Inf
	if cfg.RateLimitPerSecond > 0 {
		limit = rate.Limit(cfg.RateLimitPerSecond)
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send performs req. Non-2xx responses return *StatusError; calls that get no
// response return a network *errors.Error.
func (c *Client) Send(ctx context.Context, req *Request, accessToken string) (*Response, error) {
	if c.breaker != nil && c.breaker.IsOpen() {
		c.count("api.request.rejected", req, "circuit_open")
		return nil, apperrors.NewNetworkError(apperrors.NetworkCircuitOpen, ErrCircuitOpen)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.count("api.request.rejected", req, "rate_limited")
		return nil, apperrors.NewNetworkError(apperrors.NetworkTimeout, fmt.Errorf("rate limiter: %w", err))
	}

	httpReq, err := c.newHTTPRequest(ctx, req, accessToken)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.recordFailure()
		c.observe(req, "error", start)
		c.log.Warn("Backend request failed", "method", req.Method, "path", req.Path, "error", err)
		return nil, networkError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		c.recordFailure()
		c.observe(req, "error", start)
		return nil, networkError(err)
	}

	if httpResp.StatusCode >= http.StatusInternalServerError {
		c.recordFailure()
	} else if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
	c.observe(req, strconv.Itoa(httpResp.StatusCode), start)

	c.log.Debug("Backend request completed",
		"method", req.Method,
		"path", req.Path,
		"status", httpResp.StatusCode,
		"request_id", httpReq.Header.Get(HeaderRequestID),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &StatusError{
			Method:  req.Method,
			Path:    req.Path,
			Status:  httpResp.StatusCode,
			Message: errorMessage(body),
			Body:    body,
		}
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   body,
	}, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request, accessToken string) (*http.Request, error) {
	url := c.baseURL + req.Path
	if len(req.Query) > 0 {
		url += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if httpReq.Header.Get(HeaderRequestID) == "" {
		id := RequestIDFromContext(ctx)
		if id == "" {
			id = uuid.New().String()
		}
		httpReq.Header.Set(HeaderRequestID, id)
	}
	if accessToken != "" {
		httpReq.Header.Set(HeaderAuthorization, "Bearer "+accessToken)
	}

	return httpReq, nil
}

func (c *Client) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}

func (c *Client) count(name string, req *Request, status string) {
	if c.metrics == nil {
		return
	}
	c.metrics.IncrementCounter(name, map[string]string{
		"method": req.Method,
		"status": status,
	})
}

func (c *Client) observe(req *Request, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.count("api.request", req, status)
	c.metrics.RecordProcessingTime("api.request", time.Since(start))
}

func networkError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewNetworkError(apperrors.NetworkTimeout, err)
	}
	return apperrors.NewNetworkError(apperrors.NetworkUnreachable, err)
}
