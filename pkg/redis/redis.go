// Package redis provides marquee.Fetcher and marquee.Watcher
// implementations for a collection stored under a Redis key. Changes are
// observed with keyspace notifications.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/marquee"
)

// Source reads a collection document from a Redis key.
// Watching requires Redis to have keyspace notifications enabled:
//
//	CONFIG SET notify-keyspace-events KEA
//
// Or in redis.conf:
//
//	notify-keyspace-events KEA
type Source struct {
	client *redis.Client
	key    string
	db     int
}

// Option configures a Source.
type Option func(*Source)

// WithDB sets the database index used in the keyspace channel name.
// Defaults to 0 and should match the client's DB option.
func WithDB(db int) Option {
	return func(s *Source) {
		s.db = db
	}
}

// New creates a Source for the given Redis key.
func New(client *redis.Client, key string, opts ...Option) *Source {
	s := &Source{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the key's value. A missing key is reported as a
// not-found status.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, &marquee.FetchError{
			Kind:       marquee.KindNonSuccessResponse,
			StatusCode: 404,
			Err:        fmt.Errorf("key %s not found", s.key),
		}
	}
	if err != nil {
		return nil, marquee.NewTransportError(err)
	}
	return val, nil
}

// Watch subscribes to keyspace notifications for the key and returns a
// channel that receives a value whenever the key is written.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	// Subscribe to keyspace notifications for this key
	channel := fmt.Sprintf("__keyspace@%d__:%s", s.db, s.key)
	pubsub := s.client.Subscribe(ctx, channel)

	// Verify subscription worked
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to keyspace notifications: %w", err)
	}

	out := make(chan struct{})

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				// Only react to write operations
				switch msg.Payload {
				case "set", "mset", "setex", "psetex", "setnx", "setrange", "append", "del", "expired":
				default:
					continue
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

// Ensure Source implements marquee.Fetcher and marquee.Watcher.
var (
	_ marquee.Fetcher = (*Source)(nil)
	_ marquee.Watcher = (*Source)(nil)
)
