package marquee

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNavigationOutOfRange is returned when a navigation target lies
	// outside [0, slideCount), including any navigation on an inactive
	// Carousel.
	ErrNavigationOutOfRange = errors.New("navigation out of range")

	// ErrInvalidSlideCount is returned when a Carousel is activated with a
	// negative slide count.
	ErrInvalidSlideCount = errors.New("invalid slide count")

	// ErrTransport matches fetch failures where the remote source could not
	// be reached or did not answer in time.
	ErrTransport = errors.New("transport failure")

	// ErrNonSuccessResponse matches fetch failures where the remote source
	// answered with a non-success status.
	ErrNonSuccessResponse = errors.New("non-success response")

	// ErrPayloadParse matches fetch failures where the response could not be
	// decoded or failed item validation.
	ErrPayloadParse = errors.New("payload parse failure")
)

// ErrorKind classifies a fetch failure.
type ErrorKind int

const (
	// KindTransport covers network errors, timeouts and cancellation.
	KindTransport ErrorKind = iota
	// KindNonSuccessResponse covers responses with a non-success status.
	KindNonSuccessResponse
	// KindPayloadParse covers malformed or invalid payloads.
	KindPayloadParse
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindNonSuccessResponse:
		return "non_success_response"
	case KindPayloadParse:
		return "payload_parse"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindNonSuccessResponse:
		return ErrNonSuccessResponse
	case KindPayloadParse:
		return ErrPayloadParse
	default:
		return ErrTransport
	}
}

// FetchError describes why a fetch attempt failed.
type FetchError struct {
	Kind ErrorKind

	// StatusCode is the status reported by the remote source. Only set for
	// KindNonSuccessResponse.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *FetchError) Error() string {
	switch {
	case e.Kind == KindNonSuccessResponse && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Kind.sentinel(), e.StatusCode, e.Err)
	case e.Kind == KindNonSuccessResponse:
		return fmt.Sprintf("%s: status %d", e.Kind.sentinel(), e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind.sentinel(), e.Err)
	default:
		return e.Kind.sentinel().Error()
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *FetchError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// NewStatusError reports a non-success response from the remote source.
// Fetcher implementations return it so the Loader can tell a status
// failure apart from a transport failure.
func NewStatusError(code int) *FetchError {
	return &FetchError{Kind: KindNonSuccessResponse, StatusCode: code}
}

// NewTransportError wraps err as a transport failure.
func NewTransportError(err error) *FetchError {
	return &FetchError{Kind: KindTransport, Err: err}
}

// NewParseError wraps err as a payload parse failure.
func NewParseError(err error) *FetchError {
	return &FetchError{Kind: KindPayloadParse, Err: err}
}

// classify converts any error produced by a fetch attempt into a
// *FetchError. Errors that carry no classification are transport failures.
func classify(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return NewTransportError(err)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
