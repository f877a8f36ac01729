package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const debounceDuration = 100 * time.Millisecond

// Watch reloads the config file whenever it changes and invokes onChange
// with the fresh configuration. It returns immediately; watching stops when
// the context is cancelled. A watcher that cannot be created is logged and
// skipped rather than failing startup.
func Watch(ctx context.Context, path string, onChange func(*Config)) {
	if path == "" || onChange == nil {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).Warn("failed to create config watcher; live reload disabled")
		return
	}

	if err := watcher.Add(path); err != nil {
		log.WithError(err).WithField("path", path).Warn("failed to watch config file; live reload disabled")
		watcher.Close()
		return
	}

	// Also watch the directory to catch atomic writes (rename operations).
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.WithError(err).WithField("dir", filepath.Dir(path)).Warn("failed to watch config directory")
	}

	log.WithField("path", path).Info("config watcher started")

	go func() {
		defer watcher.Close()

		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDuration, func() {
					cfg, err := Load(path)
					if err != nil {
						log.WithError(err).Warn("config reload failed; keeping previous configuration")
						return
					}
					onChange(cfg)
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("config watcher error")

			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}
				return
			}
		}
	}()
}
