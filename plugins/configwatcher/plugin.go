// Package configwatcher reloads configuration while the front end runs.
// It watches the config file the process was started with and calls a
// callback after each change.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/crmapp/pkg/crmapp"
	"github.com/bft-labs/crmapp/pkg/log"
)

// Plugin watches a single config file.
type Plugin struct {
	mu sync.Mutex

	debounceDelay time.Duration
	onChange      func(path string) error

	path     string
	logger   log.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	pending  sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// DebounceDelay is how long to wait after the last change event
	// before calling OnChange. Editors often write a file in several
	// steps. Default: 100 milliseconds
	DebounceDelay time.Duration

	// OnChange is called with the config path after it changed. An error
	// is logged; watching continues.
	OnChange func(path string) error
}

// DefaultConfig returns a Config with the default debounce delay and no
// callback.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		onChange:      cfg.OnChange,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching cfg.ConfigPath. The plugin stays idle, and
// Initialize still succeeds, when there is no path or no callback.
func (p *Plugin) Initialize(ctx context.Context, cfg crmapp.PluginConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	p.mu.Lock()
	p.path = cfg.ConfigPath
	p.logger = logger
	p.mu.Unlock()

	if p.path == "" || p.onChange == nil {
		logger.Warn("config watcher disabled: no config file or no change handler")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace files by rename, which drops
	// a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		_ = watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	logger.Info("config watcher started", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the watcher and any pending callback.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil && p.debounce.Stop() {
		p.pending.Done()
	}
	p.debounce = nil
	p.mu.Unlock()

	p.pending.Wait()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			p.debounceChange(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceChange(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil && p.debounce.Stop() {
		p.pending.Done()
	}
	p.pending.Add(1)
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		defer p.pending.Done()
		if ctx.Err() != nil {
			return
		}
		p.fire()
	})
}

func (p *Plugin) fire() {
	if err := p.onChange(p.path); err != nil {
		p.logger.Error("config reload failed",
			log.String("path", p.path),
			log.Err(err))
		return
	}
	p.logger.Info("config reloaded", log.String("path", p.path))
}
