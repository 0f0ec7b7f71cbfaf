package marquee

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/clockz"
)

// Navigator performs the side effect of selecting an item, typically a
// route change in the rendering layer.
type Navigator func(ctx context.Context, id string) error

// Showcase feeds a Loader's collection into a Carousel. Every successful
// load is capped at the carousel's maximum and restarts the carousel at
// index 0; a failed load deactivates it.
type Showcase[T Identifiable] struct {
	loader   *Loader[T]
	carousel *Carousel
	navigate Navigator
	onLoad   func(LoadState[T])
	onSlide  func(CarouselState)

	// swapMu serializes collection swaps. version is odd while the items
	// and the carousel are being replaced together.
	swapMu  sync.Mutex
	mu      sync.RWMutex
	items   []T
	version uint64
}

// NewShowcase creates a Showcase fetching from fetcher. Selecting the
// active item calls navigate with its identity.
//
// Example:
//
//	showcase := marquee.NewShowcase[marquee.Item](
//	    http.New(trendingURL),
//	    func(ctx context.Context, id string) error {
//	        return router.Push(ctx, "/movie/"+id)
//	    },
//	).OnLoad(renderLoad).OnSlide(renderSlide)
//
//	showcase.Start(ctx)
//	defer showcase.Stop()
func NewShowcase[T Identifiable](fetcher Fetcher, navigate Navigator, opts ...Option[T]) *Showcase[T] {
	s := &Showcase[T]{navigate: navigate}
	s.carousel = NewCarousel(s.slideChanged)
	s.loader = NewLoader[T](fetcher, s.loaded, opts...)
	return s
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// OnLoad sets the callback receiving loader snapshots.
// Must be called before Start().
func (s *Showcase[T]) OnLoad(fn func(LoadState[T])) *Showcase[T] {
	s.onLoad = fn
	return s
}

// OnSlide sets the callback receiving carousel snapshots.
// Must be called before Start().
func (s *Showcase[T]) OnSlide(fn func(CarouselState)) *Showcase[T] {
	s.onSlide = fn
	return s
}

// Configure applies cfg to both the carousel and the loader.
// Must be called before Start().
func (s *Showcase[T]) Configure(cfg Config) *Showcase[T] {
	s.carousel.Configure(cfg)
	s.loader.Configure(cfg)
	return s
}

// Clock sets the clock of both the carousel and the loader.
// Must be called before Start().
func (s *Showcase[T]) Clock(clock clockz.Clock) *Showcase[T] {
	s.carousel.Clock(clock)
	s.loader.Clock(clock)
	return s
}

// Loader exposes the underlying Loader for further configuration.
func (s *Showcase[T]) Loader() *Loader[T] {
	return s.loader
}

// Carousel exposes the underlying Carousel for further configuration and
// navigation.
func (s *Showcase[T]) Carousel() *Carousel {
	return s.carousel
}

// Start activates the loader. The carousel follows once items arrive.
func (s *Showcase[T]) Start(ctx context.Context) uint64 {
	return s.loader.Activate(ctx)
}

// Stop deactivates the loader, its watches and the carousel, and drops
// the items.
func (s *Showcase[T]) Stop() {
	s.loader.Deactivate()
	s.swap(nil, s.carousel.Deactivate)
}

// Items returns the collection currently shown by the carousel.
func (s *Showcase[T]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...)
}

// Active returns the item at the carousel's active index. It reports
// false while a reload is replacing the collection.
func (s *Showcase[T]) Active() (T, bool) {
	var zero T

	s.mu.RLock()
	items, version := s.items, s.version
	s.mu.RUnlock()
	if version%2 == 1 {
		return zero, false
	}

	state := s.carousel.State()

	s.mu.RLock()
	changed := s.version != version
	s.mu.RUnlock()
	if changed || !state.Active() || state.ActiveIndex >= len(items) {
		return zero, false
	}
	return items[state.ActiveIndex], true
}

// Select navigates to the active item.
func (s *Showcase[T]) Select(ctx context.Context) error {
	item, ok := s.Active()
	if !ok {
		return fmt.Errorf("%w: no active item", ErrNavigationOutOfRange)
	}
	if s.navigate == nil {
		return nil
	}
	return s.navigate(ctx, item.Identity())
}

// loaded reacts to loader transitions. Loading keeps the previous
// collection on screen until the new generation settles.
func (s *Showcase[T]) loaded(state LoadState[T]) {
	switch state.Status {
	case StatusSuccess:
		items := state.Items
		if limit := s.carousel.SlideLimit(); len(items) > limit {
			items = items[:limit]
		}
		s.swap(items, func() {
			if s.onLoad != nil {
				s.onLoad(state)
			}
			// Activate cannot fail for a non-negative count.
			_ = s.carousel.Activate(len(items)) //nolint:errcheck
		})

	case StatusFailed:
		s.swap(nil, func() {
			if s.onLoad != nil {
				s.onLoad(state)
			}
			s.carousel.Deactivate()
		})

	default:
		if s.onLoad != nil {
			s.onLoad(state)
		}
	}
}

// swap replaces the items and runs apply to bring the carousel in line.
// Readers see either the old pair or the new one.
func (s *Showcase[T]) swap(items []T, apply func()) {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()

	s.mu.Lock()
	s.version++
	s.items = items
	s.mu.Unlock()

	apply()

	s.mu.Lock()
	s.version++
	s.mu.Unlock()
}

func (s *Showcase[T]) slideChanged(state CarouselState) {
	if s.onSlide != nil {
		s.onSlide(state)
	}
}
