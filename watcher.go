package marquee

import "context"

// Watcher observes a remote collection and signals when it has changed.
// A Loader following a Watcher re-activates on every signal, superseding
// any fetch still in flight.
type Watcher interface {
	// Watch begins observing the source and returns a channel that
	// receives a value each time the collection changes. The channel is
	// closed when the context is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// ChannelWatcher wraps an existing notification channel as a Watcher.
// Useful for testing and custom sources that already produce signals.
type ChannelWatcher struct {
	ch   <-chan struct{}
	sync bool
}

// NewChannelWatcher creates a ChannelWatcher that forwards values from the
// given channel through an internal goroutine.
func NewChannelWatcher(ch <-chan struct{}) *ChannelWatcher {
	return &ChannelWatcher{ch: ch}
}

// NewSyncChannelWatcher creates a ChannelWatcher that returns the source
// channel directly without an intermediate goroutine.
// Use with Loader.SyncMode() for deterministic testing.
func NewSyncChannelWatcher(ch <-chan struct{}) *ChannelWatcher {
	return &ChannelWatcher{ch: ch, sync: true}
}

// Watch returns a channel that emits values from the wrapped channel.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if w.sync {
		return w.ch, nil
	}

	out := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.ch:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
