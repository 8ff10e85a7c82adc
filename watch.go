package scrollview

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// View is the subset of Engine the watchers operate on. Engine satisfies it
// for any type parameters.
type View interface {
	Config() Config
	SetConfig(cfg Config)
	Relayout() error
}

// ConfigWatcher detects configuration changes between ticks and triggers an
// un-forced layout pass. This is a development convenience layered on top of
// the core: production callers that change configuration deliberately should
// call Relayout themselves.
type ConfigWatcher struct {
	view View
	last Config
}

// NewConfigWatcher snapshots the view's current configuration as the
// baseline.
func NewConfigWatcher(view View) *ConfigWatcher {
	return &ConfigWatcher{view: view, last: view.Config()}
}

// Tick compares the view's configuration against the last snapshot and, on
// a difference, relayouts. Returns true if a change was detected. Call once
// per frame from the update loop.
func (w *ConfigWatcher) Tick() (bool, error) {
	cfg := w.view.Config()
	if cfg == w.last {
		return false, nil
	}
	layoutLogger.Debug("view config changed",
		"interval", cfg.CellInterval,
		"offset", cfg.ScrollOffset,
		"loop", cfg.Loop)
	w.last = cfg
	return true, w.view.Relayout()
}

// FileWatcher reloads a TOML view configuration whenever the file changes on
// disk. The filesystem events arrive on a background goroutine, but the core
// is single-threaded, so the watcher only stages the reloaded config; the
// update loop applies it by calling Apply once per frame.
//
//	fw, err := scrollview.WatchConfigFile(view, "scrollview.toml")
//	...
//	defer fw.Close()
//
//	// in the update loop:
//	if applied, err := fw.Apply(); err != nil { ... }
type FileWatcher struct {
	view    View
	path    string
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending *Config
	loadErr error
}

// WatchConfigFile starts watching path for writes. The file must parse as a
// valid Config; see LoadConfig for the format.
func WatchConfigFile(view View, path string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("scrollview: watch config: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("scrollview: watch config %s: %w", path, err)
	}

	fw := &FileWatcher{view: view, path: path, watcher: watcher}
	go fw.loop()
	return fw, nil
}

func (w *FileWatcher) loop() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(w.path)
			w.mu.Lock()
			if err != nil {
				w.pending = nil
				w.loadErr = err
			} else {
				w.pending = &cfg
				w.loadErr = nil
			}
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			layoutLogger.Debug("config watcher error", "path", w.path, "err", err)
		}
	}
}

// Apply installs a pending reloaded configuration, if any, and relayouts.
// Returns true when a new configuration was applied. A file that failed to
// parse or validate surfaces here as an error and is not applied. Call from
// the same goroutine that drives the view.
func (w *FileWatcher) Apply() (bool, error) {
	w.mu.Lock()
	cfg, err := w.pending, w.loadErr
	w.pending, w.loadErr = nil, nil
	w.mu.Unlock()

	if err != nil {
		return false, err
	}
	if cfg == nil {
		return false, nil
	}
	layoutLogger.Debug("config reloaded", "path", w.path)
	w.view.SetConfig(*cfg)
	return true, w.view.Relayout()
}

// Close stops watching. The background goroutine exits once the event
// channel drains.
func (w *FileWatcher) Close() error {
	return w.watcher.Close()
}
