// Package file provides marquee.Fetcher and marquee.Watcher implementations
// for a collection stored in a local JSON or YAML document.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/marquee"
)

// Source reads a collection document from disk.
type Source struct {
	path string
}

// New creates a Source for the document at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Codec returns the codec matching the document's extension:
// YAMLCodec for .yaml and .yml, JSONCodec otherwise.
func (s *Source) Codec() marquee.Codec {
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return marquee.YAMLCodec{}
	default:
		return marquee.JSONCodec{}
	}
}

// Fetch reads the document. A missing document is reported as a
// not-found status so it reads as an absent resource rather than an I/O
// failure.
func (s *Source) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &marquee.FetchError{Kind: marquee.KindNonSuccessResponse, StatusCode: 404, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

// Watch begins watching the document and returns a channel that receives
// a value whenever it is written or recreated.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch file %s: %w", s.path, err)
	}

	out := make(chan struct{})

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Only signal on write or create events
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				select {
				case out <- struct{}{}:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
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
