package marquee

import (
	"context"

	"github.com/zoobzio/pipz"
)

// Request carries one fetch attempt through the processing pipeline.
type Request[T any] struct {
	// Generation identifies the attempt. Pipeline stages must not rely on
	// it being current; the Loader decides that on completion.
	Generation uint64

	// Raw contains the payload returned by the Fetcher.
	Raw []byte

	// Items is the decoded collection. Middleware may reorder, filter or
	// enrich it before it is committed.
	Items []T
}

// Processor identities for the built-in pipeline stages.
var (
	fetchID      = pipz.NewIdentity("marquee:fetch", "Fetch raw payload from the source")
	decodeID     = pipz.NewIdentity("marquee:decode", "Decode payload into items")
	validateID   = pipz.NewIdentity("marquee:validate", "Validate decoded items")
	pipelineID   = pipz.NewIdentity("marquee:pipeline", "Fetch, decode and validate")
	middlewareID = pipz.NewIdentity("marquee:middleware", "Post-processing middleware")
	handlerID    = pipz.NewIdentity("marquee:error-handler", "Fetch error observer")
)

// newPipeline builds the fetch → decode → validate sequence for l.
func newPipeline[T any](l *Loader[T]) pipz.Chainable[*Request[T]] {
	fetch := pipz.Apply(fetchID, func(ctx context.Context, req *Request[T]) (*Request[T], error) {
		raw, err := l.fetcher.Fetch(ctx)
		if err != nil {
			return req, classify(err)
		}
		req.Raw = raw
		return req, nil
	})

	decode := pipz.Apply(decodeID, func(_ context.Context, req *Request[T]) (*Request[T], error) {
		items, err := decodeCollection[T](l.codec, req.Raw)
		if err != nil {
			return req, NewParseError(err)
		}
		req.Items = items
		return req, nil
	})

	check := pipz.Apply(validateID, func(_ context.Context, req *Request[T]) (*Request[T], error) {
		if err := validateItems(req.Items); err != nil {
			return req, NewParseError(err)
		}
		return req, nil
	})

	return pipz.NewSequence(pipelineID, fetch, decode, check)
}
