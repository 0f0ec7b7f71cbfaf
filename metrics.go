package marquee

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key carousel and loader events.
type MetricsProvider interface {
	// OnModeChange is called when a Carousel transitions between modes.
	OnModeChange(from, to Mode)

	// OnAdvance is called when a Carousel moves to a new index.
	// Manual is true for GoTo/Next/Previous and false for timer ticks.
	OnAdvance(index int, manual bool)

	// OnStatusChange is called when a Loader transitions between statuses.
	OnStatusChange(from, to Status)

	// OnFetchSuccess is called when a fetch result is committed.
	// Duration is the time taken by the fetch pipeline.
	OnFetchSuccess(items int, duration time.Duration)

	// OnFetchFailure is called when a fetch failure is committed.
	OnFetchFailure(kind ErrorKind, duration time.Duration)

	// OnDiscard is called when a completion is dropped because it was
	// superseded or the Loader was deactivated.
	OnDiscard(reason string)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnModeChange(_, _ Mode)                      {}
func (NoOpMetricsProvider) OnAdvance(_ int, _ bool)                     {}
func (NoOpMetricsProvider) OnStatusChange(_, _ Status)                  {}
func (NoOpMetricsProvider) OnFetchSuccess(_ int, _ time.Duration)       {}
func (NoOpMetricsProvider) OnFetchFailure(_ ErrorKind, _ time.Duration) {}
func (NoOpMetricsProvider) OnDiscard(_ string)                          {}
