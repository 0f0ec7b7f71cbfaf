package marquee

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m NoOpMetricsProvider

	// These should not panic
	m.OnModeChange(ModeInactive, ModeCycling)
	m.OnAdvance(1, false)
	m.OnStatusChange(StatusIdle, StatusLoading)
	m.OnFetchSuccess(3, 100*time.Millisecond)
	m.OnFetchFailure(KindTransport, 50*time.Millisecond)
	m.OnDiscard("superseded")
}

// recordingMetrics embeds NoOpMetricsProvider and records selected calls.
type recordingMetrics struct {
	NoOpMetricsProvider
	mu       sync.Mutex
	modes    []Mode
	advances []bool
	statuses []Status
	failures []ErrorKind
	discards []string
}

func (m *recordingMetrics) OnModeChange(_, to Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes = append(m.modes, to)
}

func (m *recordingMetrics) OnAdvance(_ int, manual bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances = append(m.advances, manual)
}

func (m *recordingMetrics) OnStatusChange(_, to Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, to)
}

func (m *recordingMetrics) OnFetchFailure(kind ErrorKind, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, kind)
}

func (m *recordingMetrics) OnDiscard(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discards = append(m.discards, reason)
}

func TestMetrics_Carousel(t *testing.T) {
	m := &recordingMetrics{}
	clock := clockz.NewFakeClock()
	c := NewCarousel(nil).Clock(clock).Interval(time.Second).Metrics(m)
	defer c.Deactivate()

	if err := c.Activate(3); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if err := c.Next(); err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	c.Deactivate()

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.modes) != 2 || m.modes[0] != ModeCycling || m.modes[1] != ModeInactive {
		t.Errorf("expected [cycling inactive], got %v", m.modes)
	}
	if len(m.advances) != 1 || !m.advances[0] {
		t.Errorf("expected one manual advance, got %v", m.advances)
	}
}

func TestMetrics_Loader(t *testing.T) {
	m := &recordingMetrics{}
	fetcher := FetcherFunc(func(_ context.Context) ([]byte, error) {
		return nil, NewStatusError(503)
	})
	l := NewLoader[Item](fetcher, nil).SyncMode().Metrics(m)

	l.Activate(context.Background())

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.statuses) != 2 || m.statuses[0] != StatusLoading || m.statuses[1] != StatusFailed {
		t.Errorf("expected [loading failed], got %v", m.statuses)
	}
	if len(m.failures) != 1 || m.failures[0] != KindNonSuccessResponse {
		t.Errorf("expected one non-success failure, got %v", m.failures)
	}
}
