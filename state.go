package marquee

// Mode represents the current mode of a Carousel.
type Mode int32

const (
	// ModeInactive indicates the Carousel has no slides to show, either
	// because it was never activated, was activated with zero slides, or
	// has been deactivated.
	ModeInactive Mode = iota

	// ModeStatic indicates a single slide is shown and no timer is running.
	ModeStatic

	// ModeCycling indicates two or more slides are shown and the automatic
	// advance timer is armed.
	ModeCycling

	// ModePaused indicates a cycling Carousel whose timer has been
	// suspended. The active index is retained.
	ModePaused
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeInactive:
		return "inactive"
	case ModeStatic:
		return "static"
	case ModeCycling:
		return "cycling"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Status represents the current status of a Loader.
type Status int32

const (
	// StatusIdle indicates the Loader has never been activated.
	StatusIdle Status = iota

	// StatusLoading indicates a fetch attempt is in flight.
	StatusLoading

	// StatusSuccess indicates the current generation's fetch completed and
	// its items were committed.
	StatusSuccess

	// StatusFailed indicates the current generation's fetch failed. The
	// error describes whether the transport, the response status, or the
	// payload was at fault.
	StatusFailed
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CarouselState is an immutable snapshot of a Carousel.
type CarouselState struct {
	Mode        Mode
	SlideCount  int
	ActiveIndex int
}

// Active reports whether the snapshot has a slide to display.
func (s CarouselState) Active() bool {
	return s.Mode != ModeInactive && s.SlideCount > 0
}

// LoadState is an immutable snapshot of a Loader.
type LoadState[T any] struct {
	// Status is the lifecycle status of the current generation.
	Status Status

	// Items holds the committed collection. Only meaningful when Status is
	// StatusSuccess; may be empty for an empty successful load.
	Items []T

	// Err describes the failure. Only meaningful when Status is
	// StatusFailed; always a *FetchError.
	Err error

	// Generation identifies the fetch attempt this snapshot belongs to.
	Generation uint64
}
