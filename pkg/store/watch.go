package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventStateChanged indicates some persisted tracker state was written
	// by another process; callers should reload before trusting their view.
	EventStateChanged EventType = iota
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel to avoid blocking the watcher. The channel is closed
// once ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		// Writes arrive in bursts, one per key; a short debounce collapses a
		// full Save into a single notification.
		var pending map[string]struct{}
		var flush <-chan time.Time

		emit := func() {
			for key := range pending {
				select {
				case events <- Event{Type: EventStateChanged, Key: key}:
				default:
				}
			}
			pending = nil
			flush = nil
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-flush:
				emit()
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				key := keyFromPath(ev.Name)
				if key == "" {
					continue
				}
				if pending == nil {
					pending = make(map[string]struct{})
				}
				pending[key] = struct{}{}
				if flush == nil {
					flush = time.After(100 * time.Millisecond)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "store: watch error: %v\n", err)
			}
		}
	}()

	return events, nil
}

func keyFromPath(path string) string {
	parts := strings.Split(path, string(os.PathSeparator))
	name := parts[len(parts)-1]
	if name == "" || strings.HasPrefix(name, ".") {
		return ""
	}
	return name
}
