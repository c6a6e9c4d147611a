// Package watch turns file system events on one file into a coalesced
// change feed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher signals when the target file changes. It watches the parent
// directory so replacements done through rename are seen too.
type Watcher struct {
	targetPath string
	parentPath string
	watcher    *fsnotify.Watcher
	changes    chan struct{}

	mu      sync.Mutex
	running bool
	closed  bool
}

func New(targetPath string) (*Watcher, error) {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, fmt.Errorf("resolve watch target: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		targetPath: filepath.Clean(absPath),
		parentPath: filepath.Dir(absPath),
		watcher:    fsw,
		changes:    make(chan struct{}, 1),
	}, nil
}

// Changes delivers at most one pending signal; bursts collapse into one.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.New("watcher is closed")
	}
	if w.running {
		return nil
	}

	if err := w.watcher.Add(w.parentPath); err != nil {
		return fmt.Errorf("watch %s: %w", w.parentPath, err)
	}
	w.running = true

	go w.watchLoop(ctx)
	return nil
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	w.running = false
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.targetPath || event.Op&relevantOps == 0 {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("session log changed")
			w.signal()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Str("path", w.parentPath).Msg("file watcher error")
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
