package raycursor

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches a TOML config file and reconfigures a RayCursor whenever the file changes. File events arrive
// in the background, but are only acted upon in Update(), which should be called once every frame from the goroutine
// ticking the RayCursor.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changed chan struct{}
	logger  *slog.Logger
}

// WatchConfig starts watching the config file at the path given. The file's directory is watched rather than the
// file itself, so editors that save by replacing the file are picked up too. Passing a nil logger discards logs.
func WatchConfig(path string, logger *slog.Logger) (*ConfigWatcher, error) {

	if logger == nil {
		logger = discardLogger
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching config: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching config %s: %w", path, err)
	}

	cw := &ConfigWatcher{
		path:    path,
		watcher: watcher,
		changed: make(chan struct{}, 1),
		logger:  logger,
	}

	go cw.watch()

	return cw, nil

}

func (cw *ConfigWatcher) watch() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			// A pending change already covers this one
			select {
			case cw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("config watcher error", "path", cw.path, "error", err)
		}
	}
}

// Path returns the absolute path of the watched config file.
func (cw *ConfigWatcher) Path() string {
	return cw.path
}

// Update reloads the config file if it changed since the last call, and applies it to the RayCursor given through
// RayCursor.Reconfigure(). It returns true if the RayCursor was reconfigured. If the file can't be loaded, the
// RayCursor is left alone and the error is returned.
func (cw *ConfigWatcher) Update(rc *RayCursor, now float64) (bool, error) {

	select {
	case <-cw.changed:
	default:
		return false, nil
	}

	cfg, err := LoadConfig(cw.path)
	if err != nil {
		cw.logger.Warn("config not reloaded", "path", cw.path, "error", err)
		return false, err
	}

	if err := rc.Reconfigure(cfg, now); err != nil {
		return false, err
	}

	cw.logger.Info("config reloaded", "path", cw.path)
	return true, nil

}

// Close stops watching the config file.
func (cw *ConfigWatcher) Close() error {
	return cw.watcher.Close()
}
