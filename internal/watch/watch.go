// Package watch notifies about changes to a single file.
//
// The watch is placed on the file's parent directory and filtered by name:
// editors and AtomicWrite replace the file through a rename, which would
// silently end a watch placed on the file itself. Bursts of events are
// debounced into a single Change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a Change
// is delivered.
const DefaultDebounce = 150 * time.Millisecond

// Op is the most significant operation seen during a debounce window.
type Op int

const (
	// OpWrite indicates the file was written or created.
	OpWrite Op = iota

	// OpRemove indicates the file was removed or renamed away.
	OpRemove
)

func (op Op) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change is a debounced notification about the watched file.
type Change struct {
	Path string
	Op   Op
	// Events is the number of raw events folded into this change
	Events int
	Time   time.Time
}

// Handler receives changes. It is called from a single goroutine.
type Handler func(Change)

// Options configures a Watcher.
type Options struct {
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher watches one file.
type Watcher struct {
	path     string
	handler  Handler
	debounce time.Duration
	logger   *slog.Logger

	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	started bool
}

// New creates a watcher for path. Call Start to begin watching.
func New(path string, handler Handler, opts *Options) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch: nil handler")
	}
	if opts == nil {
		opts = &Options{}
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		path:     abs,
		handler:  handler,
		debounce: debounce,
		logger:   logger,
		watcher:  fw,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. It returns once the watch is registered; changes
// are delivered until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	// started stays false on failure so Stop does not wait for a loop
	// that never ran.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.started = true

	go w.loop(ctx)
	return nil
}

// Stop stops watching and waits for the delivery goroutine to exit.
// It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		if err := w.watcher.Close(); err != nil {
			w.logger.Debug("closing file watcher", "error", err)
		}

		w.mu.Lock()
		started := w.started
		w.mu.Unlock()
		if started {
			<-w.stopped
		}
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.stopped)

	var (
		pending *Change
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	flush := func() {
		if pending != nil {
			w.handler(*pending)
			pending = nil
		}
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-w.done:
			flush()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				flush()
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			op, ok := convertOp(event.Op)
			if !ok {
				continue
			}

			if pending == nil {
				pending = &Change{Path: w.path}
			}
			pending.Op = op
			pending.Events++
			pending.Time = time.Now()

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer, timerC = nil, nil
			if pending != nil {
				change := *pending
				pending = nil
				w.handler(change)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				flush()
				return
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)
		}
	}
}

// convertOp maps an fsnotify operation to an Op. Chmod-only events are
// dropped.
func convertOp(op fsnotify.Op) (Op, bool) {
	switch {
	case op.Has(fsnotify.Create), op.Has(fsnotify.Write):
		return OpWrite, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return OpRemove, true
	default:
		return OpWrite, false
	}
}
