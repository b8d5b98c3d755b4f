package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bank-mediator/pkg/bank"
	"bank-mediator/pkg/logging"
	"bank-mediator/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

const maxResponseSize = 4 << 20

// Client is the request mediator for the banking REST API. Every method
// issues at most one HTTP request and returns either a typed payload or a
// *bank.Error. A Client has no mutable state after New and is safe for
// concurrent use.
type Client struct {
	baseURL    string
	healthURL  string
	timeout    time.Duration
	policy     bank.Policy
	httpClient *http.Client
	userAgent  string
	logger     *logging.Logger
	metrics    metrics.MetricsCollector
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its own Timeout, if
// any, applies in addition to the configured request timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector. Defaults to a no-op collector.
func WithMetrics(collector metrics.MetricsCollector) Option {
	return func(c *Client) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// New creates a Client. Zero fields in config take their defaults.
func New(config Config, opts ...Option) (*Client, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    config.BaseURL,
		healthURL:  resolve(config.BaseURL, config.HealthPath),
		timeout:    config.Timeout,
		policy:     config.Policy,
		httpClient: &http.Client{},
		userAgent:  "bank-mediator",
		logger:     logging.Global(),
		metrics:    metrics.NoOpCollector{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("client")

	c.logger.Debug("client initialized",
		zap.String("base_url", c.baseURL),
		zap.String("health_url", c.healthURL),
		zap.Duration("timeout", c.timeout),
	)

	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Policy returns the ceilings applied to deposits and withdrawals.
func (c *Client) Policy() bank.Policy {
	return c.policy
}

func resolve(baseURL, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}

// request describes one outbound call.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any

	// entity and id name the record for error messages.
	entity string
	id     string

	// allowEmpty accepts a 2xx response without a body.
	allowEmpty bool
}

// do sends req and decodes a 2xx body into out (which may be nil). Any
// other outcome is returned as a classified *bank.Error.
func (c *Client) do(ctx context.Context, req request, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := resolve(c.baseURL, req.path)
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	requestID := uuid.NewString()
	logger := c.logger.ForRequest(req.op, req.method, req.path, requestID)

	var payload []byte
	if req.body != nil {
		var err error
		payload, err = json.Marshal(req.body)
		if err != nil {
			return c.fail(logger, req, &bank.Error{
				Kind:    bank.KindUnexpected,
				Op:      req.op,
				Message: "An unexpected error occurred",
				Err:     fmt.Errorf("encode request body: %w", err),
			})
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, bytes.NewReader(payload))
	if err != nil {
		return c.fail(logger, req, &bank.Error{
			Kind:    bank.KindUnexpected,
			Op:      req.op,
			Message: "An unexpected error occurred",
			Err:     fmt.Errorf("build request: %w", err),
		})
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(RequestIDHeader, requestID)
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	logger.Debug("dispatching request", zap.ByteString("body", payload))

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RecordRequest(req.op, 0, time.Since(start))
		return c.fail(logger, req, c.transportError(ctx, req, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	duration := time.Since(start)
	c.metrics.RecordRequest(req.op, resp.StatusCode, duration)
	if err != nil {
		return c.fail(logger, req, c.transportError(ctx, req, err))
	}

	logger.Info("response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(logger, req, classifyResponse(req, resp.StatusCode, data))
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if req.allowEmpty {
			return nil
		}
		return c.fail(logger, req, &bank.Error{
			Kind:    bank.KindUnexpected,
			Op:      req.op,
			Status:  resp.StatusCode,
			Message: "An unexpected error occurred",
			Err:     errors.New("empty response body"),
		})
	}
	if err := json.Unmarshal(data, out); err != nil {
		return c.fail(logger, req, &bank.Error{
			Kind:    bank.KindUnexpected,
			Op:      req.op,
			Status:  resp.StatusCode,
			Message: "An unexpected error occurred",
			Err:     fmt.Errorf("decode response: %w", err),
		})
	}
	return nil
}

// transportError classifies a failure to get a response at all.
func (c *Client) transportError(ctx context.Context, req request, err error) *bank.Error {
	e := &bank.Error{
		Op:     req.op,
		Entity: req.entity,
		ID:     req.id,
		Err:    err,
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err):
		e.Kind = bank.KindTimeout
		e.Message = "Request timeout. Please try again."
	case errors.Is(err, context.Canceled):
		e.Kind = bank.KindTransport
		e.Message = "Request cancelled."
	default:
		e.Kind = bank.KindTransport
		e.Message = fmt.Sprintf("Cannot connect to server at %s. Please ensure the backend is running.", c.baseURL)
	}
	return e
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

// fail logs and counts a classified failure and returns it.
func (c *Client) fail(logger *logging.Logger, req request, e *bank.Error) error {
	kind := e.Kind.String()
	c.metrics.RecordFailure(req.op, kind)

	fields := []zap.Field{
		zap.String("kind", kind),
		zap.Int("status", e.Status),
		zap.String("message", e.Message),
	}
	if e.Code != "" {
		fields = append(fields, zap.String("code", e.Code))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}

	switch e.Kind {
	case bank.KindServer, bank.KindTransport, bank.KindTimeout, bank.KindUnexpected:
		logger.Error("request failed", fields...)
	default:
		logger.Warn("request rejected", fields...)
	}
	return e
}

// reject records an input rejected before dispatch.
func (c *Client) reject(op string, err error) error {
	var e *bank.Error
	field := "unknown"
	if errors.As(err, &e) && e.Field != "" {
		field = e.Field
	}
	c.metrics.RecordRejected(op, field)
	c.logger.Debug("input rejected",
		zap.String("operation", op),
		zap.String("field", field),
		zap.Error(err),
	)
	return err
}
