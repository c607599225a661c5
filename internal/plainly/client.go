package plainly

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// BaseURL is the Plainly REST API root
	BaseURL = "https://api.plainlyvideos.com/api/v2"

	// Timeout bounds every outbound request
	Timeout = 30 * time.Second

	tracerName = "github.com/koios/plainly-mcp/internal/plainly"
)

// Client talks to the Plainly REST API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	authHeader string
	logger     *zap.Logger
	tracer     trace.Tracer
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTransport replaces the HTTP round tripper. The timeout stays fixed.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// New creates a new Plainly client authenticated with apiKey
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: Timeout},
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+":")),
		logger:     zap.NewNop(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request and decodes a successful JSON response into out (when non-nil).
// Every failure is returned as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "plainly "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	endpoint := BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &APIError{Err: err}
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Plainly request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &APIError{Err: fmt.Errorf("%w: %v", ErrNoResponse, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Err: fmt.Errorf("%w: %v", ErrNoResponse, err)}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.Debug("Plainly request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: data}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

func pathf(pattern string, ids ...string) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(pattern, args...)
}
