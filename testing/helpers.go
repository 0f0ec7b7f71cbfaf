// Package testing provides test utilities and helpers for marquee carousels
// and loaders.
package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/marquee"
)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForStatus waits until the loader reaches the expected status or timeout occurs.
func WaitForStatus[T any](t *testing.T, l *marquee.Loader[T], expected marquee.Status, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return l.State().Status == expected
	})
}

// WaitForIndex waits until the carousel shows the expected index or timeout occurs.
func WaitForIndex(t *testing.T, c *marquee.Carousel, expected int, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return c.State().ActiveIndex == expected
	})
}

// RequireStatus fails the test immediately if the loader is not in the expected status.
func RequireStatus[T any](t *testing.T, l *marquee.Loader[T], expected marquee.Status) {
	t.Helper()
	if got := l.State(); got.Status != expected {
		t.Fatalf("expected status %s, got %s (err: %v)", expected, got.Status, got.Err)
	}
}

// RequireIndex fails the test immediately if the carousel is not at the expected index.
func RequireIndex(t *testing.T, c *marquee.Carousel, expected int) {
	t.Helper()
	if got := c.State().ActiveIndex; got != expected {
		t.Fatalf("expected index %d, got %d", expected, got)
	}
}

// Items builds n valid items with IDs "0" through "n-1".
func Items(n int) []marquee.Item {
	items := make([]marquee.Item, n)
	for i := range items {
		items[i] = marquee.Item{
			ID:            marquee.ID(fmt.Sprint(i)),
			Title:         fmt.Sprintf("Movie %d", i),
			BackdropImage: fmt.Sprintf("/backdrop/%d.jpg", i),
		}
	}
	return items
}

// Payload encodes items as a {"results": [...]} envelope.
func Payload(t *testing.T, items []marquee.Item) []byte {
	t.Helper()
	data, err := json.Marshal(marquee.Collection[marquee.Item]{Results: items})
	if err != nil {
		t.Fatalf("failed to encode payload: %v", err)
	}
	return data
}

// NewTestLoader creates a sync mode loader serving n items, recording every
// snapshot it emits. The returned function reports the snapshots so far.
func NewTestLoader(t *testing.T, n int) (*marquee.Loader[marquee.Item], func() []marquee.LoadState[marquee.Item]) {
	t.Helper()
	var (
		mu     sync.Mutex
		states []marquee.LoadState[marquee.Item]
	)
	l := marquee.NewLoader[marquee.Item](
		marquee.StaticFetcher(Payload(t, Items(n))),
		func(s marquee.LoadState[marquee.Item]) {
			mu.Lock()
			defer mu.Unlock()
			states = append(states, s)
		},
	).SyncMode()
	t.Cleanup(l.Deactivate)

	return l, func() []marquee.LoadState[marquee.Item] {
		mu.Lock()
		defer mu.Unlock()
		return append([]marquee.LoadState[marquee.Item](nil), states...)
	}
}

// GatedFetcher holds every fetch until the test resolves it, so tests can
// choose the order in which overlapping fetches complete. Fetches ignore
// context cancellation.
type GatedFetcher struct {
	mu      sync.Mutex
	pending []chan result
	started chan int
}

type result struct {
	data []byte
	err  error
}

// NewGatedFetcher creates a GatedFetcher.
func NewGatedFetcher() *GatedFetcher {
	return &GatedFetcher{started: make(chan int, 64)}
}

// Fetch implements marquee.Fetcher.
func (g *GatedFetcher) Fetch(_ context.Context) ([]byte, error) {
	g.mu.Lock()
	ch := make(chan result, 1)
	g.pending = append(g.pending, ch)
	n := len(g.pending)
	g.mu.Unlock()

	g.started <- n
	r := <-ch
	return r.data, r.err
}

// AwaitStart blocks until the nth fetch (1-based) has started.
func (g *GatedFetcher) AwaitStart(t *testing.T, n int, timeout time.Duration) {
	t.Helper()
	ok := WaitFor(t, timeout, func() bool {
		g.mu.Lock()
		defer g.mu.Unlock()
		return len(g.pending) >= n
	})
	if !ok {
		t.Fatalf("timeout waiting for fetch %d to start", n)
	}
}

// Started returns a channel receiving the 1-based number of each fetch as
// it begins.
func (g *GatedFetcher) Started() <-chan int {
	return g.started
}

// Resolve completes the nth fetch (1-based) with data.
func (g *GatedFetcher) Resolve(n int, data []byte) {
	g.complete(n, result{data: data})
}

// Fail completes the nth fetch (1-based) with err.
func (g *GatedFetcher) Fail(n int, err error) {
	g.complete(n, result{err: err})
}

func (g *GatedFetcher) complete(n int, r result) {
	g.mu.Lock()
	ch := g.pending[n-1]
	g.mu.Unlock()
	ch <- r
}

// Ensure GatedFetcher implements marquee.Fetcher.
var _ marquee.Fetcher = (*GatedFetcher)(nil)
