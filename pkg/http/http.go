// Package http provides a marquee.Fetcher implementation for HTTP endpoints.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/zoobzio/marquee"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxBytes caps the size of a response body.
const DefaultMaxBytes = 8 << 20

// ErrResponseTooLarge is wrapped by the payload error returned when a
// response body exceeds the configured maximum.
var ErrResponseTooLarge = errors.New("response exceeds maximum size")

// Fetcher issues a GET request against a single endpoint.
// Responses outside the 2xx range are reported with marquee.NewStatusError.
type Fetcher struct {
	client   *http.Client
	url      string
	header   http.Header
	maxBytes int64
	tracer   trace.Tracer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client. Defaults to http.DefaultClient.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithHeader adds a request header, e.g. an API key.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Add(key, value)
	}
}

// WithMaxBytes caps the response body size. Larger bodies fail as a
// payload error wrapping ErrResponseTooLarge.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithTracer sets the tracer used for fetch spans. Defaults to the global
// tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(f *Fetcher) {
		f.tracer = tracer
	}
}

// New creates a Fetcher for url.
func New(url string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   http.DefaultClient,
		url:      url,
		header:   http.Header{"Accept": []string{"application/json"}},
		maxBytes: DefaultMaxBytes,
		tracer:   otel.Tracer("github.com/zoobzio/marquee/pkg/http"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs the request and returns the response body.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	ctx, span := f.tracer.Start(ctx, "marquee.http.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", f.url)),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, marquee.NewTransportError(fmt.Errorf("build request: %w", err))
	}
	req.Header = f.header.Clone()

	resp, err := f.client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, marquee.NewTransportError(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // Drain for connection reuse
		span.SetStatus(codes.Error, resp.Status)
		return nil, marquee.NewStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, marquee.NewTransportError(fmt.Errorf("read body: %w", err))
	}
	if int64(len(body)) > f.maxBytes {
		err := fmt.Errorf("%w: limit %d bytes", ErrResponseTooLarge, f.maxBytes)
		span.RecordError(err)
		span.SetStatus(codes.Error, "response too large")
		return nil, marquee.NewParseError(err)
	}
	span.SetAttributes(attribute.Int("http.response_size", len(body)))
	return body, nil
}

// Ensure Fetcher implements marquee.Fetcher.
var _ marquee.Fetcher = (*Fetcher)(nil)
