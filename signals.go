package marquee

import "github.com/zoobzio/capitan"

// Carousel lifecycle signals.
var (
	// CarouselActivated is emitted when a Carousel receives a slide count.
	CarouselActivated = capitan.NewSignal(
		"marquee.carousel.activated",
		"Carousel activated with a slide count",
	)

	// CarouselDeactivated is emitted when a Carousel releases its timer.
	CarouselDeactivated = capitan.NewSignal(
		"marquee.carousel.deactivated",
		"Carousel deactivated",
	)

	// CarouselModeChanged is emitted when a Carousel transitions between modes.
	CarouselModeChanged = capitan.NewSignal(
		"marquee.carousel.mode.changed",
		"Carousel mode transition",
	)
)

// Carousel navigation signals.
var (
	// CarouselAdvanced is emitted when the automatic timer advances the index.
	CarouselAdvanced = capitan.NewSignal(
		"marquee.carousel.advanced",
		"Automatic advance to the next slide",
	)

	// CarouselNavigated is emitted when a manual override moves the index.
	CarouselNavigated = capitan.NewSignal(
		"marquee.carousel.navigated",
		"Manual navigation to a slide",
	)

	// CarouselNavigationRejected is emitted when a navigation target is out of range.
	CarouselNavigationRejected = capitan.NewSignal(
		"marquee.carousel.navigation.rejected",
		"Navigation target out of range",
	)

	// CarouselTickDiscarded is emitted when a tick from a cancelled timer arrives.
	CarouselTickDiscarded = capitan.NewSignal(
		"marquee.carousel.tick.discarded",
		"Stale timer tick dropped",
	)
)

// Loader lifecycle signals.
var (
	// LoaderActivated is emitted when a Loader starts a new fetch generation.
	LoaderActivated = capitan.NewSignal(
		"marquee.loader.activated",
		"Loader fetch generation started",
	)

	// LoaderDeactivated is emitted when a Loader is deactivated.
	LoaderDeactivated = capitan.NewSignal(
		"marquee.loader.deactivated",
		"Loader deactivated",
	)

	// LoaderStatusChanged is emitted when a Loader transitions between statuses.
	LoaderStatusChanged = capitan.NewSignal(
		"marquee.loader.status.changed",
		"Loader status transition",
	)
)

// Fetch completion signals.
var (
	// LoaderFetchSucceeded is emitted when a fetch result is committed.
	LoaderFetchSucceeded = capitan.NewSignal(
		"marquee.loader.fetch.succeeded",
		"Fetch result committed",
	)

	// LoaderFetchFailed is emitted when a fetch failure is committed.
	LoaderFetchFailed = capitan.NewSignal(
		"marquee.loader.fetch.failed",
		"Fetch failure committed",
	)

	// LoaderResultDiscarded is emitted when a superseded or inactive
	// fetch completes and its result is dropped.
	LoaderResultDiscarded = capitan.NewSignal(
		"marquee.loader.result.discarded",
		"Stale fetch result dropped",
	)

	// LoaderChangeReceived is emitted when a watcher reports a remote change.
	LoaderChangeReceived = capitan.NewSignal(
		"marquee.loader.change.received",
		"Remote change notification received",
	)
)
