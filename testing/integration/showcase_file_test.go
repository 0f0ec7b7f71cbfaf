package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/marquee"
	"github.com/zoobzio/marquee/pkg/file"
)

func writeItems(t *testing.T, path string, n int) {
	t.Helper()
	items := make([]marquee.Item, n)
	for i := range items {
		items[i] = marquee.Item{ID: marquee.ID(fmt.Sprint(i)), Title: fmt.Sprintf("Movie %d", i)}
	}
	data, err := json.Marshal(marquee.Collection[marquee.Item]{Results: items})
	if err != nil {
		t.Fatalf("failed to encode items: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

func TestShowcase_FileSource_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trending.json")
	writeItems(t, path, 3)

	source := file.New(path)
	var loads atomic.Int32

	showcase := marquee.NewShowcase[marquee.Item](source, nil).
		OnLoad(func(s marquee.LoadState[marquee.Item]) {
			if s.Status == marquee.StatusSuccess {
				loads.Add(1)
			}
		})
	showcase.Loader().Codec(source.Codec()).Debounce(20 * time.Millisecond)
	defer showcase.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := showcase.Loader().Watch(ctx, source); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	showcase.Start(ctx)

	if !waitFor(t, 2*time.Second, func() bool { return len(showcase.Items()) == 3 }) {
		t.Fatalf("expected 3 items, got %d", len(showcase.Items()))
	}
	if m := showcase.Carousel().State().Mode; m != marquee.ModeCycling {
		t.Errorf("expected cycling, got %v", m)
	}

	writeItems(t, path, 1)

	if !waitFor(t, 2*time.Second, func() bool { return len(showcase.Items()) == 1 }) {
		t.Fatalf("expected reload to 1 item, got %d", len(showcase.Items()))
	}
	if !waitFor(t, time.Second, func() bool { return showcase.Carousel().State().Mode == marquee.ModeStatic }) {
		t.Errorf("expected static carousel, got %v", showcase.Carousel().State().Mode)
	}
	if loads.Load() < 2 {
		t.Errorf("expected at least 2 successful loads, got %d", loads.Load())
	}
}

func TestShowcase_FileSource_InvalidPayload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trending.json")
	if err := os.WriteFile(path, []byte(`{"results": [{"title": "no id"}]}`), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	showcase := marquee.NewShowcase[marquee.Item](file.New(path), nil)
	defer showcase.Stop()

	showcase.Start(context.Background())

	loader := showcase.Loader()
	if !waitFor(t, 2*time.Second, func() bool { return loader.State().Status == marquee.StatusFailed }) {
		t.Fatalf("expected failed, got %v", loader.State().Status)
	}
	if err := loader.State().Err; !errors.Is(err, marquee.ErrPayloadParse) {
		t.Errorf("expected ErrPayloadParse, got %v", err)
	}
	if m := showcase.Carousel().State().Mode; m != marquee.ModeInactive {
		t.Errorf("expected inactive carousel, got %v", m)
	}
}
