package reload

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/okian/webbasics/pkg/logger"
)

const (
	defaultDebounce = 100 * time.Millisecond
	writeWait       = time.Second
)

func deadline() time.Time { return time.Now().Add(writeWait) }

// Reloader re-reads whatever changed on disk.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Broadcaster tells connected browsers to refresh.
type Broadcaster interface {
	Broadcast(ctx context.Context)
}

// Watcher reloads templates and notifies browsers when files in a directory change.
type Watcher struct {
	dir      string
	reloader Reloader
	notify   Broadcaster
	debounce time.Duration
	log      logger.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce coalesces bursts of file events (editors often write several).
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string, reloader Reloader, notify Broadcaster, log logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:      dir,
		reloader: reloader,
		notify:   notify,
		debounce: defaultDebounce,
		log:      log,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is done. A failed reload is logged and browsers are not notified.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info(ctx, "watching templates", logger.String("dir", w.dir))

	// Idle until the first change; Stop guarantees no stale fire on Go 1.23+ timers.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug(ctx, "template change", logger.String("file", ev.Name), logger.String("op", ev.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, "template watcher error", logger.Error(err))
		case <-timer.C:
			if err := w.reloader.Reload(ctx); err != nil {
				continue
			}
			w.notify.Broadcast(ctx)
		}
	}
}
