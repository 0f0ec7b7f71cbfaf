// Package postgres provides marquee.Fetcher and marquee.Watcher
// implementations for a collection stored in a PostgreSQL table row.
// Changes are observed with LISTEN/NOTIFY.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zoobzio/marquee"
)

// DefaultTable is the table queried when WithTable is not given.
const DefaultTable = "showcase"

// Source reads a collection document from the value column of a keyed
// row. Watching requires a trigger that notifies with the row's key:
//
//	CREATE OR REPLACE FUNCTION notify_showcase_change() RETURNS trigger AS $$
//	BEGIN
//	    PERFORM pg_notify('showcase_changed', NEW.key);
//	    RETURN NEW;
//	END;
//	$$ LANGUAGE plpgsql;
//
//	CREATE TRIGGER showcase_change_trigger
//	    AFTER INSERT OR UPDATE ON showcase
//	    FOR EACH ROW EXECUTE FUNCTION notify_showcase_change();
type Source struct {
	pool    *pgxpool.Pool
	channel string
	key     string
	table   string
}

// Option configures a Source.
type Option func(*Source)

// WithTable sets the table name to query for values.
// Defaults to DefaultTable.
func WithTable(table string) Option {
	return func(s *Source) {
		s.table = table
	}
}

// New creates a Source for the given notification channel and key.
// The channel should match the channel used in pg_notify.
// The key identifies which row to read.
func New(pool *pgxpool.Pool, channel, key string, opts ...Option) *Source {
	s := &Source{
		pool:    pool,
		channel: channel,
		key:     key,
		table:   DefaultTable,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the row's value. A missing row is reported as a not-found
// status.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = $1", pgx.Identifier{s.table}.Sanitize())
	err := s.pool.QueryRow(ctx, query, s.key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &marquee.FetchError{
			Kind:       marquee.KindNonSuccessResponse,
			StatusCode: 404,
			Err:        fmt.Errorf("row %s not found in %s", s.key, s.table),
		}
	}
	if err != nil {
		return nil, marquee.NewTransportError(err)
	}
	return value, nil
}

// Watch listens on the notification channel and returns a channel that
// receives a value whenever a notification names the Source's key.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	// Start listening
	_, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{s.channel}.Sanitize())
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to listen on channel %s: %w", s.channel, err)
	}

	out := make(chan struct{})

	go func() {
		defer close(out)
		// The connection still holds the LISTEN; drop it from the pool.
		defer func() {
			_ = conn.Conn().Close(context.Background()) //nolint:errcheck
			conn.Release()
		}()

		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() != nil || conn.Conn().IsClosed() {
					return
				}
				continue
			}

			// Check if notification is for our key
			if notification.Payload != s.key {
				continue
			}

			select {
			case out <- struct{}{}:
			case <-ctx.Done():
				return
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
