// Package watch monitors the seed artifact directory and triggers corpus
// rebuilds when artifacts change.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceWindow coalesces bursts of file events (a fetch run writes many
// seeds in quick succession) into one rebuild.
const debounceWindow = 2 * time.Second

// Watcher triggers a callback when seed artifacts change.
type Watcher struct {
	dir      string
	onChange func(ctx context.Context) error
	logger   *zap.Logger
}

// New creates a Watcher over dir invoking onChange after each debounced
// burst of changes.
func New(dir string, onChange func(ctx context.Context) error, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{dir: dir, onChange: onChange, logger: logger}
}

// Run blocks watching the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer notifier.Close()

	if err := notifier.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching seed directory", zap.String("dir", w.dir))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case err, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("rebuild after change failed", zap.Error(err))
			}
		}
	}
}

// relevantEvent filters to completed seed writes: JSON artifacts only,
// ignoring the temp files the seed store renames over.
func relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".tmp")
}
