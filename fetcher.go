package marquee

import "context"

// Fetcher retrieves the raw payload of a remote collection.
//
// Implementations report a non-success response from the remote source
// with NewStatusError so it can be told apart from a transport failure.
// Any other error is treated as a transport failure.
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) ([]byte, error)

// Fetch calls f(ctx).
func (f FetcherFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// StaticFetcher returns the same payload on every fetch.
type StaticFetcher []byte

// Fetch returns a copy of the payload.
func (s StaticFetcher) Fetch(_ context.Context) ([]byte, error) {
	out := make([]byte, len(s))
	copy(out, s)
	return out, nil
}
