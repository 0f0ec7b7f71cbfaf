package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/zoobzio/marquee"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})
	t.Cleanup(func() { client.Close() })

	// Enable keyspace notifications
	if err := client.ConfigSet(ctx, "notify-keyspace-events", "KEA").Err(); err != nil {
		t.Fatalf("failed to enable keyspace notifications: %v", err)
	}

	return client
}

func TestSource_Fetch(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "showcase:trending"
	value := []byte(`[{"id": "1", "title": "Dune"}]`)

	if err := client.Set(ctx, key, value, 0).Err(); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	data, err := New(client, key).Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != string(value) {
		t.Errorf("expected %q, got %q", value, data)
	}
}

func TestSource_Fetch_MissingKey(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := New(client, "showcase:missing").Fetch(ctx)
	if !errors.Is(err, marquee.ErrNonSuccessResponse) {
		t.Errorf("expected ErrNonSuccessResponse, got %v", err)
	}
}

func TestSource_Watch_SignalsOnChange(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "showcase:trending"
	if err := client.Set(ctx, key, []byte(`[]`), 0).Err(); err != nil {
		t.Fatalf("failed to set initial value: %v", err)
	}

	source := New(client, key)
	ch, err := source.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	updated := []byte(`[{"id": "2", "title": "Arrival"}]`)
	if err := client.Set(ctx, key, updated, 0).Err(); err != nil {
		t.Fatalf("failed to update value: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}

	data, err := source.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != string(updated) {
		t.Errorf("expected %q, got %q", updated, data)
	}
}

func TestSource_Watch_ClosesOnContextCancel(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	ch, err := New(client, "showcase:trending").Watch(ctx)
	if err != nil {
		cancel()
		t.Fatalf("Watch() error = %v", err)
	}

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}

func TestSource_LoaderWatch(t *testing.T) {
	client := setupRedis(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := "showcase:trending"
	if err := client.Set(ctx, key, []byte(`[{"id": "1", "title": "Dune"}]`), 0).Err(); err != nil {
		t.Fatalf("failed to set initial value: %v", err)
	}

	source := New(client, key)
	states := make(chan marquee.LoadState[marquee.Item], 16)
	loader := marquee.NewLoader[marquee.Item](source, func(s marquee.LoadState[marquee.Item]) {
		states <- s
	}).Debounce(10 * time.Millisecond)
	defer loader.Deactivate()

	if err := loader.Watch(ctx, source); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	loader.Activate(ctx)
	waitForItems(t, states, 1)

	if err := client.Set(ctx, key, []byte(`[{"id": "1", "title": "Dune"}, {"id": "2", "title": "Arrival"}]`), 0).Err(); err != nil {
		t.Fatalf("failed to update value: %v", err)
	}
	waitForItems(t, states, 2)
}

func waitForItems(t *testing.T, states <-chan marquee.LoadState[marquee.Item], n int) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case s := <-states:
			if s.Status == marquee.StatusSuccess && len(s.Items) == n {
				return
			}
		case <-timeout:
			t.Fatalf("timeout waiting for %d items", n)
		}
	}
}
