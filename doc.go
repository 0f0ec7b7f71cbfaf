// Package marquee drives a rotating set of featured items and keeps it in
// sync with asynchronously loaded data.
//
// Two independent components make up the core:
//
//   - Carousel cycles an active index through a bounded set of slides on a
//     recurring timer and accepts manual overrides that restart the timer.
//   - Loader fetches a remote collection once per activation and publishes
//     a loading / success / failed state, discarding any completion that
//     belongs to a superseded generation or arrives after deactivation.
//
// Showcase wires a Loader's collection into a Carousel for the common case.
//
// # Carousel
//
// A Carousel is in one of four modes:
//
//   - Inactive: no slides, no timer
//   - Static: one slide, no timer
//   - Cycling: two or more slides, exactly one timer armed
//   - Paused: cycling suspended, index retained
//
// GoTo, Next and Previous move the index and re-arm the timer in one
// transition, so the next automatic advance happens a full interval after
// the call. Out of range targets fail with ErrNavigationOutOfRange.
//
// # Loader
//
// A Loader moves through idle → loading → success | failed. Every
// Activate starts a new generation; a completion is committed only if it
// belongs to the current generation and the Loader is still active.
// Failures are recorded as *FetchError, classified as transport,
// non-success response or payload parse failures:
//
//	state := loader.State()
//	switch {
//	case state.Status == marquee.StatusFailed && errors.Is(state.Err, marquee.ErrNonSuccessResponse):
//	    showError(state.Err)
//	case state.Status == marquee.StatusSuccess && len(state.Items) == 0:
//	    showEmpty()
//	}
//
// # Sources
//
// The Fetcher interface abstracts the remote collection. Implementations
// are available in pkg/:
//
//   - pkg/http: HTTP GET endpoint
//   - pkg/file: JSON or YAML document on disk, watched with fsnotify
//   - pkg/redis: Redis key, watched with keyspace notifications
//   - pkg/postgres: PostgreSQL row, watched with LISTEN/NOTIFY
//
// A Watcher reports remote changes; Loader.Watch re-activates on each one
// until the Loader is deactivated.
//
// # Observability
//
// Carousel and Loader transitions are emitted as capitan signals (see
// signals.go). pkg/zap logs them; pkg/prometheus implements
// MetricsProvider.
//
// # Example
//
//	showcase := marquee.NewShowcase[marquee.Item](
//	    http.New("https://api.example.com/trending"),
//	    func(ctx context.Context, id string) error {
//	        return router.Push(ctx, "/movie/"+id)
//	    },
//	).Configure(cfg).OnLoad(renderLoad).OnSlide(renderSlide)
//
//	showcase.Start(ctx)
//	defer showcase.Stop()
package marquee
