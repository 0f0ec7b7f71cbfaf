package marquee

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultInterval is the default automatic advance cadence.
const DefaultInterval = 6 * time.Second

// DefaultMaxSlides is the default cap on the number of navigable slides.
const DefaultMaxSlides = 5

// Carousel cycles an active index through [0, slideCount) on a recurring
// timer. Manual navigation moves the index immediately and restarts the
// timer from the moment of the call.
//
// All transitions, including timer ticks, are serialized. The onChange
// callback runs inside that critical section and must not call back into
// the Carousel.
type Carousel struct {
	onChange  func(CarouselState)
	interval  time.Duration
	maxSlides int
	clock     clockz.Clock
	metrics   MetricsProvider

	mu    sync.Mutex
	mode  Mode
	count int
	index int

	// timer is non-nil iff mode is ModeCycling. stop releases the goroutine
	// waiting on it. epoch changes on every arm and cancel so a tick that
	// was already dequeued when its timer was cancelled is recognised.
	timer clockz.Timer
	stop  chan struct{}
	epoch uint64
}

// NewCarousel creates an inactive Carousel. The callback receives a
// snapshot on every state change.
//
// Example:
//
//	carousel := marquee.NewCarousel(func(s marquee.CarouselState) {
//	    render(s.ActiveIndex)
//	}).Interval(6 * time.Second).MaxSlides(5)
//
//	carousel.Activate(len(items))
//	defer carousel.Deactivate()
func NewCarousel(onChange func(CarouselState)) *Carousel {
	return &Carousel{
		onChange:  onChange,
		interval:  DefaultInterval,
		maxSlides: DefaultMaxSlides,
		clock:     clockz.RealClock,
	}
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Interval sets the automatic advance cadence. Non-positive durations are
// ignored. Default: 6s. Must be called before Activate().
func (c *Carousel) Interval(d time.Duration) *Carousel {
	if d > 0 {
		c.interval = d
	}
	return c
}

// MaxSlides caps the number of navigable slides. Non-positive values are
// ignored. Default: 5. Must be called before Activate().
func (c *Carousel) MaxSlides(n int) *Carousel {
	if n > 0 {
		c.maxSlides = n
	}
	return c
}

// SlideLimit returns the configured cap on navigable slides.
func (c *Carousel) SlideLimit() int {
	return c.maxSlides
}

// Clock sets a custom clock for the advance timer.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Activate().
func (c *Carousel) Clock(clock clockz.Clock) *Carousel {
	c.clock = clock
	return c
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Activate().
func (c *Carousel) Metrics(provider MetricsProvider) *Carousel {
	c.metrics = provider
	return c
}

// Configure applies the carousel fields of cfg.
// Must be called before Activate().
func (c *Carousel) Configure(cfg Config) *Carousel {
	if cfg.Interval > 0 {
		c.interval = cfg.Interval
	}
	if cfg.MaxSlides > 0 {
		c.maxSlides = cfg.MaxSlides
	}
	return c
}

// State returns the current snapshot.
func (c *Carousel) State() CarouselState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Activate resets the Carousel to index 0 over slideCount slides, capped
// at the configured maximum. Two or more slides start the advance timer,
// one slide is shown statically and zero slides leave the Carousel
// inactive. Any previously armed timer is cancelled first.
func (c *Carousel) Activate(slideCount int) error {
	if slideCount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSlideCount, slideCount)
	}
	ctx := context.Background()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimer()
	if slideCount > c.maxSlides {
		slideCount = c.maxSlides
	}

	old := c.mode
	c.count = slideCount
	c.index = 0
	switch {
	case slideCount >= 2:
		c.mode = ModeCycling
		c.arm()
	case slideCount == 1:
		c.mode = ModeStatic
	default:
		c.mode = ModeInactive
	}

	capitan.Emit(ctx, CarouselActivated,
		KeySlideCount.Field(slideCount),
		KeyInterval.Field(c.interval),
	)
	c.transition(ctx, old)
	c.emit()
	return nil
}

// GoTo moves to index and restarts the advance timer so the next tick
// happens one full interval from now. An index outside [0, slideCount)
// fails with ErrNavigationOutOfRange and leaves the state unchanged.
func (c *Carousel) GoTo(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goTo(index)
}

// Next moves to the following slide, wrapping to 0 after the last.
func (c *Carousel) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return c.goTo(0)
	}
	return c.goTo((c.index + 1) % c.count)
}

// Previous moves to the preceding slide, wrapping to the last after 0.
func (c *Carousel) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.count == 0 {
		return c.goTo(0)
	}
	return c.goTo((c.index - 1 + c.count) % c.count)
}

// Pause suspends the advance timer while keeping the active index.
// It is a no-op unless the Carousel is cycling.
func (c *Carousel) Pause() {
	ctx := context.Background()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeCycling {
		return
	}

	c.cancelTimer()
	old := c.mode
	c.mode = ModePaused
	c.transition(ctx, old)
	c.emit()
}

// Resume re-arms the advance timer for a full interval.
// It is a no-op unless the Carousel is paused.
func (c *Carousel) Resume() {
	ctx := context.Background()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModePaused {
		return
	}

	old := c.mode
	c.mode = ModeCycling
	c.arm()
	c.transition(ctx, old)
	c.emit()
}

// Deactivate cancels any pending timer and returns the Carousel to the
// inactive mode. Calling it on an inactive Carousel is a no-op.
func (c *Carousel) Deactivate() {
	ctx := context.Background()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode == ModeInactive && c.timer == nil {
		return
	}

	c.cancelTimer()
	old := c.mode
	c.mode = ModeInactive
	c.count = 0
	c.index = 0

	capitan.Emit(ctx, CarouselDeactivated,
		KeyOldMode.Field(old.String()),
	)
	c.transition(ctx, old)
	c.emit()
}

// goTo validates index and applies the override. The caller holds mu, so
// the index update and the timer restart form one transition.
func (c *Carousel) goTo(index int) error {
	ctx := context.Background()

	if c.mode == ModeInactive || index < 0 || index >= c.count {
		capitan.Emit(ctx, CarouselNavigationRejected,
			KeyTarget.Field(index),
			KeySlideCount.Field(c.count),
		)
		return fmt.Errorf("%w: index %d, slide count %d", ErrNavigationOutOfRange, index, c.count)
	}

	c.index = index
	if c.mode == ModeCycling {
		c.arm()
	}

	capitan.Emit(ctx, CarouselNavigated,
		KeyIndex.Field(index),
		KeySlideCount.Field(c.count),
	)
	if c.metrics != nil {
		c.metrics.OnAdvance(index, true)
	}
	c.emit()
	return nil
}

// tick handles a timer firing. Ticks from a timer that has since been
// cancelled carry a stale epoch and are dropped.
func (c *Carousel) tick(epoch uint64) {
	ctx := context.Background()

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch || c.mode != ModeCycling {
		capitan.Emit(ctx, CarouselTickDiscarded,
			KeyIndex.Field(c.index),
		)
		return
	}

	c.index = (c.index + 1) % c.count
	c.arm()

	capitan.Emit(ctx, CarouselAdvanced,
		KeyIndex.Field(c.index),
		KeySlideCount.Field(c.count),
	)
	if c.metrics != nil {
		c.metrics.OnAdvance(c.index, false)
	}
	c.emit()
}

// arm cancels the current timer, if any, then starts a new one.
func (c *Carousel) arm() {
	c.cancelTimer()

	c.epoch++
	epoch := c.epoch
	timer := c.clock.NewTimer(c.interval)
	stop := make(chan struct{})
	c.timer = timer
	c.stop = stop

	go c.await(timer, stop, epoch)
}

// cancelTimer stops the current timer and releases its goroutine.
func (c *Carousel) cancelTimer() {
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	close(c.stop)
	c.timer = nil
	c.stop = nil
	c.epoch++
}

// await blocks until the timer fires or is cancelled.
func (c *Carousel) await(timer clockz.Timer, stop <-chan struct{}, epoch uint64) {
	select {
	case <-stop:
	case <-timer.C():
		c.tick(epoch)
	}
}

// transition emits a mode change event if the mode changed.
func (c *Carousel) transition(ctx context.Context, old Mode) {
	if old == c.mode {
		return
	}
	capitan.Emit(ctx, CarouselModeChanged,
		KeyOldMode.Field(old.String()),
		KeyNewMode.Field(c.mode.String()),
	)
	if c.metrics != nil {
		c.metrics.OnModeChange(old, c.mode)
	}
}

func (c *Carousel) snapshot() CarouselState {
	return CarouselState{
		Mode:        c.mode,
		SlideCount:  c.count,
		ActiveIndex: c.index,
	}
}

func (c *Carousel) emit() {
	if c.onChange != nil {
		c.onChange(c.snapshot())
	}
}
