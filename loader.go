package marquee

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/pipz"
)

// DefaultDebounce is the default debounce duration for watcher driven
// re-activation.
const DefaultDebounce = 100 * time.Millisecond

// Loader fetches a remote collection once per activation and publishes a
// LoadState to its consumer on every transition.
//
// Each activation starts a new generation. A completion is committed only
// if its generation is still current and the Loader is still active; this
// check and the commit happen under one lock. Anything else is discarded
// without touching the state.
type Loader[T any] struct {
	fetcher      Fetcher
	onChange     func(LoadState[T])
	pipeline     pipz.Chainable[*Request[T]]
	codec        Codec
	clock        clockz.Clock
	fetchTimeout time.Duration
	debounce     time.Duration
	syncMode     bool
	metrics      MetricsProvider
	errorHistory *errorRing

	mu        sync.Mutex
	state     LoadState[T]
	active    bool
	cancel    context.CancelFunc
	lastError error

	// Watch subscriptions, stopped by Deactivate.
	watches map[uint64]context.CancelFunc
	watchID uint64

	// For sync mode: channel to receive change notifications
	changes  <-chan struct{}
	watchCtx context.Context
}

// NewLoader creates an idle Loader for fetcher. The callback receives a
// snapshot on every status transition; it runs while the Loader holds its
// lock and must not call back into the Loader.
//
// Pipeline options (With*) configure post-processing. Instance
// configuration uses chainable methods before calling Activate().
//
// Example:
//
//	loader := marquee.NewLoader[marquee.Item](
//	    http.New("https://api.example.com/trending"),
//	    func(s marquee.LoadState[marquee.Item]) {
//	        render(s)
//	    },
//	).FetchTimeout(10 * time.Second)
//
//	loader.Activate(ctx)
//	defer loader.Deactivate()
func NewLoader[T any](
	fetcher Fetcher,
	onChange func(LoadState[T]),
	opts ...Option[T],
) *Loader[T] {
	l := &Loader[T]{
		fetcher:  fetcher,
		onChange: onChange,
		codec:    JSONCodec{},
		clock:    clockz.RealClock,
		debounce: DefaultDebounce,
	}
	l.pipeline = buildPipeline(newPipeline(l), opts)
	return l
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Codec sets the codec for decoding fetched payloads.
// Default: JSONCodec. Must be called before Activate().
func (l *Loader[T]) Codec(codec Codec) *Loader[T] {
	l.codec = codec
	return l
}

// Clock sets a custom clock for timeouts and debouncing.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Activate().
func (l *Loader[T]) Clock(clock clockz.Clock) *Loader[T] {
	l.clock = clock
	return l
}

// FetchTimeout caps how long a single fetch attempt may stay pending.
// An attempt exceeding it fails as a transport failure.
// Default: no timeout (a hung fetch stays loading). Must be called before Activate().
func (l *Loader[T]) FetchTimeout(d time.Duration) *Loader[T] {
	l.fetchTimeout = d
	return l
}

// Debounce sets the debounce duration applied to watcher notifications.
// Notifications arriving within this duration cause a single re-activation.
// Default: 100ms. Must be called before Watch().
func (l *Loader[T]) Debounce(d time.Duration) *Loader[T] {
	l.debounce = d
	return l
}

// SyncMode makes Activate run the fetch on the calling goroutine and
// return after completion, and makes Watch defer notifications to
// Process(). Intended for deterministic tests. Must be called before Activate().
func (l *Loader[T]) SyncMode() *Loader[T] {
	l.syncMode = true
	return l
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Activate().
func (l *Loader[T]) Metrics(provider MetricsProvider) *Loader[T] {
	l.metrics = provider
	return l
}

// ErrorHistorySize sets the number of recent fetch errors to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before Activate().
func (l *Loader[T]) ErrorHistorySize(n int) *Loader[T] {
	l.errorHistory = newErrorRing(n)
	return l
}

// Configure applies the loader fields of cfg.
// Must be called before Activate().
func (l *Loader[T]) Configure(cfg Config) *Loader[T] {
	l.fetchTimeout = cfg.FetchTimeout
	return l
}

// State returns the current snapshot.
func (l *Loader[T]) State() LoadState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// Active reports whether the Loader accepts completions.
func (l *Loader[T]) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// LastError returns the last committed fetch error, or nil if the last
// committed attempt succeeded.
func (l *Loader[T]) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastError
}

// ErrorHistory returns the recent fetch errors, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (l *Loader[T]) ErrorHistory() []error {
	return l.errorHistory.all()
}

// Activate starts a new fetch generation and returns it. The status moves
// to loading and any prior error is cleared. A fetch still in flight from
// an earlier generation is cancelled and its result will be discarded.
//
// The fetch runs on its own goroutine; in sync mode it runs before
// Activate returns.
func (l *Loader[T]) Activate(ctx context.Context) uint64 {
	gen, _ := l.activate(ctx, nil)
	return gen
}

// activate starts a new generation. A non-nil guard is the context of the
// watch that requested it; a cancelled guard skips the activation. The
// guard is checked under mu, the lock Deactivate cancels watches under.
func (l *Loader[T]) activate(ctx, guard context.Context) (uint64, bool) {
	l.mu.Lock()
	if guard != nil && guard.Err() != nil {
		gen := l.state.Generation
		l.mu.Unlock()
		return gen, false
	}
	if l.cancel != nil {
		l.cancel()
	}

	old := l.state.Status
	l.state.Generation++
	gen := l.state.Generation
	l.state.Status = StatusLoading
	l.state.Items = nil
	l.state.Err = nil
	l.active = true

	fetchCtx, cancel := context.WithCancel(ctx)
	if l.fetchTimeout > 0 {
		var cancelTimeout context.CancelFunc
		fetchCtx, cancelTimeout = l.clock.WithTimeout(fetchCtx, l.fetchTimeout)
		release := cancel
		cancel = func() {
			cancelTimeout()
			release()
		}
	}
	l.cancel = cancel

	capitan.Emit(ctx, LoaderActivated,
		KeyGeneration.Field(int(gen)),
	)
	l.transition(ctx, old, StatusLoading)
	l.emit()
	l.mu.Unlock()

	if l.syncMode {
		l.run(fetchCtx, gen, cancel)
		return gen, true
	}
	go l.run(fetchCtx, gen, cancel)
	return gen, true
}

// Deactivate stops accepting completions, cancels any fetch in flight and
// stops every Watch. The state is left as it was and no snapshot is
// emitted. Calling it again is a no-op.
func (l *Loader[T]) Deactivate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopWatches()
	if !l.active {
		return
	}

	l.active = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	capitan.Emit(context.Background(), LoaderDeactivated,
		KeyGeneration.Field(int(l.state.Generation)),
		KeyStatus.Field(l.state.Status.String()),
	)
}

// Watch re-activates the Loader whenever w reports that the remote
// collection changed. Notifications are debounced. Watching stops when ctx
// is canceled, the watcher closes its channel or the Loader is
// deactivated. A deactivated Loader needs a new Watch after it is
// activated again.
//
// In sync mode, Watch only subscribes. Use Process() to handle
// notifications one at a time.
func (l *Loader[T]) Watch(ctx context.Context, w Watcher) error {
	watchCtx, stop := context.WithCancel(ctx)
	changes, err := w.Watch(watchCtx)
	if err != nil {
		stop()
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	l.mu.Lock()
	if l.watches == nil {
		l.watches = make(map[uint64]context.CancelFunc)
	}
	l.watchID++
	id := l.watchID
	l.watches[id] = stop
	if l.syncMode {
		l.changes = changes
		l.watchCtx = watchCtx
	}
	l.mu.Unlock()

	if l.syncMode {
		return nil
	}

	go func() {
		defer l.endWatch(id)
		l.watch(watchCtx, changes)
	}()
	return nil
}

// Process handles the next pending watcher notification by re-activating
// the Loader. This is only available in sync mode and is used for
// deterministic testing. Returns false if no notification is available.
// Notifications pending when the Loader is deactivated are dropped.
func (l *Loader[T]) Process(ctx context.Context) bool {
	l.mu.Lock()
	changes, guard := l.changes, l.watchCtx
	l.mu.Unlock()
	if !l.syncMode || changes == nil {
		return false
	}

	select {
	case _, ok := <-changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, LoaderChangeReceived)
		_, activated := l.activate(ctx, guard)
		return activated
	default:
		return false
	}
}

// stopWatches cancels every watch subscription. The caller holds mu.
func (l *Loader[T]) stopWatches() {
	for id, stop := range l.watches {
		stop()
		delete(l.watches, id)
	}
	l.changes = nil
	l.watchCtx = nil
}

// endWatch releases the subscription of a watch loop that has returned.
func (l *Loader[T]) endWatch(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if stop, ok := l.watches[id]; ok {
		stop()
		delete(l.watches, id)
	}
}

// run executes the pipeline for generation gen and commits the outcome.
func (l *Loader[T]) run(ctx context.Context, gen uint64, release context.CancelFunc) {
	defer release()

	start := l.clock.Now()
	req := &Request[T]{Generation: gen}
	out, err := l.pipeline.Process(ctx, req)
	if err == nil && out != nil {
		req = out
	}
	l.complete(context.WithoutCancel(ctx), req, err, l.clock.Since(start))
}

// complete applies the commit guard and, if it passes, records the outcome.
func (l *Loader[T]) complete(ctx context.Context, req *Request[T], err error, elapsed time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.active || req.Generation != l.state.Generation {
		reason := "superseded"
		if !l.active {
			reason = "inactive"
		}
		capitan.Emit(ctx, LoaderResultDiscarded,
			KeyGeneration.Field(int(req.Generation)),
			KeyCurrentGeneration.Field(int(l.state.Generation)),
			KeyReason.Field(reason),
		)
		if l.metrics != nil {
			l.metrics.OnDiscard(reason)
		}
		return
	}

	l.cancel = nil
	old := l.state.Status

	if err != nil {
		fe := classifyAttempt(req, err)
		l.state.Status = StatusFailed
		l.state.Err = fe
		l.lastError = fe
		l.errorHistory.push(fe)
		capitan.Emit(ctx, LoaderFetchFailed,
			KeyGeneration.Field(int(req.Generation)),
			KeyErrorKind.Field(fe.Kind.String()),
			KeyError.Field(fe.Error()),
			KeyDuration.Field(elapsed),
		)
		if l.metrics != nil {
			l.metrics.OnFetchFailure(fe.Kind, elapsed)
		}
	} else {
		items := req.Items
		if items == nil {
			items = []T{}
		}
		l.state.Status = StatusSuccess
		l.state.Items = items
		l.lastError = nil
		l.errorHistory.clear()
		capitan.Emit(ctx, LoaderFetchSucceeded,
			KeyGeneration.Field(int(req.Generation)),
			KeyItemCount.Field(len(items)),
			KeyDuration.Field(elapsed),
		)
		if l.metrics != nil {
			l.metrics.OnFetchSuccess(len(items), elapsed)
		}
	}

	l.transition(ctx, old, l.state.Status)
	l.emit()
}

// classifyAttempt turns a pipeline error into a *FetchError. Unclassified
// errors raised after a payload arrived come from decoding or middleware
// and count as payload failures; earlier ones are transport failures.
func classifyAttempt[T any](req *Request[T], err error) *FetchError {
	fe := classify(err)
	if fe.Kind == KindTransport && req.Raw != nil && !isContextError(err) {
		return NewParseError(err)
	}
	return fe
}

// watch re-activates the Loader on debounced watcher notifications.
func (l *Loader[T]) watch(ctx context.Context, changes <-chan struct{}) {
	var (
		timer      clockz.Timer
		hasPending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case _, ok := <-changes:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				if hasPending {
					l.activate(ctx, ctx)
				}
				return
			}

			capitan.Emit(ctx, LoaderChangeReceived)
			if l.debounce <= 0 {
				l.activate(ctx, ctx)
				continue
			}
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = l.clock.NewTimer(l.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(l.debounce)
			}

		case <-timerC:
			if hasPending {
				l.activate(ctx, ctx)
				hasPending = false
			}
		}
	}
}

// transition updates metrics and emits a status change event if changed.
func (l *Loader[T]) transition(ctx context.Context, oldStatus, newStatus Status) {
	if oldStatus == newStatus {
		return
	}
	capitan.Emit(ctx, LoaderStatusChanged,
		KeyOldStatus.Field(oldStatus.String()),
		KeyNewStatus.Field(newStatus.String()),
	)
	if l.metrics != nil {
		l.metrics.OnStatusChange(oldStatus, newStatus)
	}
}

func (l *Loader[T]) snapshot() LoadState[T] {
	s := l.state
	s.Items = slices.Clone(s.Items)
	return s
}

func (l *Loader[T]) emit() {
	if l.onChange != nil {
		l.onChange(l.snapshot())
	}
}
