// Package watch reloads the widget configuration when its file changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
)

// DefaultDebounce is how long the file must stay quiet before a reload.
const DefaultDebounce = 300 * time.Millisecond

// ConfigWatcher reloads one config file. It watches the parent directory so
// editors that replace the file by rename are still noticed.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload func(*config.WidgetConfig)
	logger   *zap.Logger
}

// NewConfigWatcher prepares a watcher for path. onReload receives every
// configuration that loads and validates; broken edits are logged and the
// previous configuration stays in effect.
func NewConfigWatcher(path string, debounce time.Duration, onReload func(*config.WidgetConfig), logger *zap.Logger) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return &ConfigWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		onReload: onReload,
		logger:   logger,
	}, nil
}

// Run blocks until ctx is cancelled or the watcher fails.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	d := newDebouncer(w.debounce, w.reload)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !relevant(event.Op) {
				continue
			}
			d.trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("config reload rejected, keeping previous config", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("config reloaded", zap.String("path", w.path))
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) || op.Has(fsnotify.Rename) || op.Has(fsnotify.Remove)
}
