package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultReloadDebounce = 250 * time.Millisecond

// Watcher reloads the config file whenever it changes on disk and hands each
// new snapshot to a callback. Snapshots that fail to parse are logged and
// skipped; the previous snapshot stays in effect.
type Watcher struct {
	path     string
	onChange func(*Config)
	debounce time.Duration
	lastHash string
}

// NewWatcher creates a watcher for path. onChange runs on the watcher goroutine.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return &Watcher{
		path:     abs,
		onChange: onChange,
		debounce: defaultReloadDebounce,
	}, nil
}

// Run blocks until ctx is cancelled.
// The parent directory is watched so editors that replace the file
// (write to temp + rename) are picked up too.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("config watcher error", "error", err)
		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("config reload failed, keeping previous", "path", w.path, "error", err)
		return
	}
	hash := cfg.Hash()
	if hash == w.lastHash {
		slog.Debug("config unchanged, skipping reload", "path", w.path)
		return
	}
	w.lastHash = hash
	slog.Info("config reloaded", "path", w.path, "hash", hash)
	w.onChange(cfg)
}
