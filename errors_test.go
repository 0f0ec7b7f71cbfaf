package marquee

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindTransport, "transport"},
		{KindNonSuccessResponse, "non_success_response"},
		{KindPayloadParse, "payload_parse"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if s := tt.kind.String(); s != tt.want {
			t.Errorf("expected %q, got %q", tt.want, s)
		}
	}
}

func TestFetchError_Is(t *testing.T) {
	tests := []struct {
		err  *FetchError
		want error
	}{
		{NewTransportError(errors.New("dial")), ErrTransport},
		{NewStatusError(404), ErrNonSuccessResponse},
		{NewParseError(errors.New("eof")), ErrPayloadParse},
	}
	sentinels := []error{ErrTransport, ErrNonSuccessResponse, ErrPayloadParse}

	for _, tt := range tests {
		for _, s := range sentinels {
			if got := errors.Is(tt.err, s); got != (s == tt.want) {
				t.Errorf("errors.Is(%v, %v) = %v", tt.err, s, got)
			}
		}
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("attempt 1: %w", NewTransportError(cause))

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if !errors.Is(err, ErrTransport) {
		t.Error("expected wrapped error to match ErrTransport")
	}
}

func TestFetchError_Error(t *testing.T) {
	tests := []struct {
		err  *FetchError
		want string
	}{
		{NewStatusError(503), "non-success response: status 503"},
		{NewTransportError(errors.New("timeout")), "transport failure: timeout"},
		{NewParseError(errors.New("unexpected EOF")), "payload parse failure: unexpected EOF"},
		{&FetchError{Kind: KindNonSuccessResponse, StatusCode: 404, Err: errors.New("missing")}, "non-success response: status 404: missing"},
		{&FetchError{Kind: KindPayloadParse}, "payload parse failure"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestClassify(t *testing.T) {
	status := NewStatusError(500)
	if got := classify(fmt.Errorf("wrapped: %w", status)); got != status {
		t.Errorf("expected existing FetchError to be returned, got %v", got)
	}

	got := classify(context.Canceled)
	if got.Kind != KindTransport || !errors.Is(got, context.Canceled) {
		t.Errorf("expected transport wrapping context.Canceled, got %v", got)
	}
}

func TestClassifyAttempt(t *testing.T) {
	cause := errors.New("middleware rejected")

	// Before a payload arrived the failure is a transport failure
	if got := classifyAttempt(&Request[Item]{}, cause); got.Kind != KindTransport {
		t.Errorf("expected transport, got %v", got.Kind)
	}

	// After a payload arrived it is a payload failure
	if got := classifyAttempt(&Request[Item]{Raw: []byte(`[]`)}, cause); got.Kind != KindPayloadParse {
		t.Errorf("expected payload parse, got %v", got.Kind)
	}

	// Cancellation stays a transport failure
	if got := classifyAttempt(&Request[Item]{Raw: []byte(`[]`)}, context.DeadlineExceeded); got.Kind != KindTransport {
		t.Errorf("expected transport for deadline, got %v", got.Kind)
	}
}
