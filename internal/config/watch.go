package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the config file at path whenever it changes on disk and
// delivers each successfully parsed Config on the returned channel. Command
// line flags are re-applied to every reload, keeping the same priority as Load. Files that
// fail to parse are logged and skipped. The channel holds at most one pending
// config; a newer reload replaces an unread one. The channel is closed when
// ctx is done.
//
// The parent directory is watched rather than the file itself so that editors
// which save by renaming a temporary file are picked up.
func Watch(ctx context.Context, path string, log *zap.Logger) (<-chan *Config, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	out := make(chan *Config, 1)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				cfg, err := loadFileWithFlags(abs)
				if err != nil {
					log.Warn("config reload failed", zap.String("path", abs), zap.Error(err))
					continue
				}
				log.Debug("config reloaded", zap.String("path", abs))
				deliverLatest(out, cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	return out, nil
}

// deliverLatest sends cfg, discarding a stale pending config if the reader is behind.
func deliverLatest(out chan *Config, cfg *Config) {
	for {
		select {
		case out <- cfg:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
