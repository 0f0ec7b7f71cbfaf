package marquee

import (
	"context"

	"github.com/zoobzio/pipz"
)

// Option configures the processing pipeline of a Loader.
// Pipeline options wrap the fetch → decode → validate sequence with
// post-processing or error observation.
//
// Instance configuration (clock, codec, fetch timeout, etc.) is handled via
// chainable methods on the Loader before calling Activate().
type Option[T any] func(pipz.Chainable[*Request[T]]) pipz.Chainable[*Request[T]]

// buildPipeline wraps the core pipeline with options.
func buildPipeline[T any](core pipz.Chainable[*Request[T]], opts []Option[T]) pipz.Chainable[*Request[T]] {
	pipeline := core
	for _, opt := range opts {
		pipeline = opt(pipeline)
	}
	return pipeline
}

// WithMiddleware runs processors after the items have been decoded and
// validated, in order. A failing processor fails the fetch attempt as a
// payload parse failure unless it returns a *FetchError of its own.
//
// Example:
//
//	marquee.NewLoader[marquee.Item](
//	    fetcher,
//	    render,
//	    marquee.WithMiddleware(
//	        marquee.UseTransform[marquee.Item](dropNoBackdropID, dropNoBackdrop),
//	        marquee.UseEffect[marquee.Item](auditID, audit),
//	    ),
//	)
func WithMiddleware[T any](processors ...pipz.Chainable[*Request[T]]) Option[T] {
	return func(p pipz.Chainable[*Request[T]]) pipz.Chainable[*Request[T]] {
		all := make([]pipz.Chainable[*Request[T]], 0, len(processors)+1)
		all = append(all, p)
		all = append(all, processors...)
		return pipz.NewSequence(middlewareID, all...)
	}
}

// WithErrorHandler adds error observation to the pipeline.
// Errors are passed to the handler for logging, metrics, or alerting,
// but the error still propagates and the attempt still fails.
func WithErrorHandler[T any](handler pipz.Chainable[*pipz.Error[*Request[T]]]) Option[T] {
	return func(p pipz.Chainable[*Request[T]]) pipz.Chainable[*Request[T]] {
		return pipz.NewHandle(handlerID, p, handler)
	}
}

// UseTransform creates a processor that transforms the request.
// Cannot fail. Use for sorting or trimming the collection.
func UseTransform[T any](id pipz.Identity, fn func(context.Context, *Request[T]) *Request[T]) pipz.Chainable[*Request[T]] {
	return pipz.Transform(id, fn)
}

// UseApply creates a processor that can transform the request and fail.
func UseApply[T any](id pipz.Identity, fn func(context.Context, *Request[T]) (*Request[T], error)) pipz.Chainable[*Request[T]] {
	return pipz.Apply(id, fn)
}

// UseEffect creates a processor that performs a side effect.
// The request passes through unchanged.
func UseEffect[T any](id pipz.Identity, fn func(context.Context, *Request[T]) error) pipz.Chainable[*Request[T]] {
	return pipz.Effect(id, fn)
}
