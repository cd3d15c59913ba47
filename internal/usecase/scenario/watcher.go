package scenario

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/errors"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/logger"
)

// WatchConfig controls how scenario file changes are picked up.
type WatchConfig struct {
	// Cooldown suppresses change bursts: events landing within the window
	// after a handled change are dropped. Editors emit several events per
	// save.
	Cooldown time.Duration
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Cooldown: 500 * time.Millisecond,
	}
}

// Watcher invokes a callback whenever the scenario file is written or
// recreated, so watch mode can re-run the simulation on fresh input.
type Watcher struct {
	config   WatchConfig
	path     string
	watcher  *fsnotify.Watcher
	onChange func()
	logger   *logger.Logger

	mu         sync.Mutex
	lastChange time.Time

	stopChan chan struct{}
	doneChan chan struct{}
}

// NewWatcher creates a watcher for the given scenario path.
func NewWatcher(path string, config WatchConfig, logger *logger.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewTracerCode(errors.ScenarioWatchError).Wrap(err)
	}

	return &Watcher{
		config:   config,
		path:     path,
		watcher:  watcher,
		logger:   logger,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}, nil
}

// Start begins watching. The callback runs on the watch goroutine.
func (w *Watcher) Start(onChange func()) error {
	w.onChange = onChange

	if err := w.watcher.Add(w.path); err != nil {
		return errors.NewTracerCode(errors.ScenarioWatchError).Wrap(err)
	}

	go w.watch()

	w.logger.Info("Watching scenario file", logger.Field{
		Key:   "path",
		Value: w.path,
	})

	return nil
}

// Stop ends the watch and releases the underlying watcher.
func (w *Watcher) Stop() error {
	select {
	case <-w.stopChan:
		// Already stopped
	default:
		close(w.stopChan)
	}

	// Wait for the watch goroutine, with a timeout in case it never ran
	select {
	case <-w.doneChan:
	case <-time.After(1 * time.Second):
	}

	return w.watcher.Close()
}

// watch runs the fsnotify event loop until stopped.
func (w *Watcher) watch() {
	defer close(w.doneChan)

	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Editors save via rename+create as often as via plain writes
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				w.handleChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log and keep watching
			w.logger.Error(err, logger.Field{
				Key:   "path",
				Value: w.path,
			})
		}
	}
}

// handleChange applies the cooldown window, then fires the callback
// outside the lock.
func (w *Watcher) handleChange() {
	w.mu.Lock()
	if time.Since(w.lastChange) < w.config.Cooldown {
		w.mu.Unlock()
		return
	}
	w.lastChange = time.Now()
	w.mu.Unlock()

	w.logger.Info("Scenario file changed", logger.Field{
		Key:   "path",
		Value: w.path,
	})

	w.onChange()
}
