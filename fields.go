package marquee

import "github.com/zoobzio/capitan"

// Field keys for Carousel events.
var (
	// KeyIndex is the active slide index after a transition.
	KeyIndex = capitan.NewIntKey("index")

	// KeyTarget is the requested slide index of a navigation.
	KeyTarget = capitan.NewIntKey("target")

	// KeySlideCount is the number of navigable slides.
	KeySlideCount = capitan.NewIntKey("slide_count")

	// KeyInterval is the configured automatic advance interval.
	KeyInterval = capitan.NewDurationKey("interval")

	// KeyOldMode is the mode before a transition.
	KeyOldMode = capitan.NewStringKey("old_mode")

	// KeyNewMode is the mode after a transition.
	KeyNewMode = capitan.NewStringKey("new_mode")
)

// Field keys for Loader events.
var (
	// KeyGeneration is the fetch generation an event belongs to.
	KeyGeneration = capitan.NewIntKey("generation")

	// KeyCurrentGeneration is the loader's generation when a stale result arrived.
	KeyCurrentGeneration = capitan.NewIntKey("current_generation")

	// KeyStatus is the current status of the Loader.
	KeyStatus = capitan.NewStringKey("status")

	// KeyOldStatus is the status before a transition.
	KeyOldStatus = capitan.NewStringKey("old_status")

	// KeyNewStatus is the status after a transition.
	KeyNewStatus = capitan.NewStringKey("new_status")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyErrorKind is the classification of a fetch failure.
	KeyErrorKind = capitan.NewStringKey("error_kind")

	// KeyItemCount is the number of items in a committed collection.
	KeyItemCount = capitan.NewIntKey("item_count")

	// KeyReason explains why a result was discarded.
	KeyReason = capitan.NewStringKey("reason")

	// KeyDuration is the time a fetch attempt took.
	KeyDuration = capitan.NewDurationKey("duration")
)
