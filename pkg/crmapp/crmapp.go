package crmapp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/bft-labs/crmapp/internal/app"
	"github.com/bft-labs/crmapp/internal/domain"
	"github.com/bft-labs/crmapp/internal/view"
	"github.com/bft-labs/crmapp/pkg/log"
)

// shutdownGrace is added to Config.ShutdownTimeout when Stop waits for
// the serving goroutine, which needs a moment after the HTTP drain ends.
const shutdownGrace = time.Second

// Frontend serves the placeholder page. Use New to create one, then
// Start and Stop it; it can be restarted after Stop.
type Frontend struct {
	config    Config
	lifecycle *app.Lifecycle
	handler   http.Handler
	logger    log.Logger
	plugins   []Plugin

	mu       sync.RWMutex
	listener net.Listener
	addr     string
	cancel   context.CancelFunc
	serveErr error
}

// New creates a Frontend in StateStopped.
func New(cfg Config, opts ...Option) (*Frontend, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	var emitter app.EventEmitter
	if len(o.eventHandlers) > 0 {
		emitter = &eventEmitter{handlers: o.eventHandlers}
	}

	return &Frontend{
		config:    cfg,
		lifecycle: app.NewLifecycle(logger, emitter),
		handler:   app.NewHandler(view.HTML(), logger),
		logger:    logger,
		plugins:   o.plugins,
		listener:  o.listener,
	}, nil
}

// Start binds the listener, initializes plugins and serves in the
// background. It returns once the Frontend is running.
//
// Canceling ctx stops serving; call Stop afterwards to shut plugins down
// and return to StateStopped.
func (f *Frontend) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := f.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	ln := f.listener
	f.listener = nil
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", f.config.ListenAddr)
		if err != nil {
			_ = f.lifecycle.TransitionTo(app.StateCrashed, "listen failed")
			return fmt.Errorf("listen on %s: %w", f.config.ListenAddr, err)
		}
	}
	f.addr = ln.Addr().String()
	f.serveErr = nil

	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		ConfigPath: f.config.ConfigPath,
		ListenAddr: f.addr,
		Logger:     f.logger,
	}
	for i, p := range f.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			f.logger.Error("plugin initialization failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			cancel()
			_ = ln.Close()
			f.shutdownPlugins(f.plugins[:i])
			_ = f.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return fmt.Errorf("initialize plugin %s: %w", p.Name(), err)
		}
		f.logger.Info("plugin initialized", log.String("plugin", p.Name()))
	}

	srv := app.NewServer(app.ServerConfig{
		ReadHeaderTimeout: f.config.ReadHeaderTimeout,
		ShutdownTimeout:   f.config.ShutdownTimeout,
	}, f.handler, f.logger)

	if err := f.lifecycle.TransitionTo(app.StateRunning, "listening on "+f.addr); err != nil {
		cancel()
		_ = ln.Close()
		return err
	}

	names := make([]string, 0, len(f.plugins))
	for _, p := range f.plugins {
		names = append(names, p.Name())
	}
	f.logger.Info("frontend running",
		log.String("addr", f.addr),
		log.Any("plugins", names))

	f.lifecycle.AddWorker()
	go func() {
		defer f.lifecycle.WorkerDone()

		err := srv.Serve(runCtx, ln)
		if err == nil {
			return
		}

		f.mu.Lock()
		f.serveErr = err
		f.mu.Unlock()

		if f.lifecycle.State() == app.StateRunning {
			f.logger.Error("server error", log.Err(err))
			f.lifecycle.Cancel()
			f.shutdownPlugins(f.plugins)
			_ = f.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop shuts the server down gracefully and then shuts plugins down in
// reverse order. It returns ErrShutdownTimeout, and leaves the Frontend
// in StateCrashed, when in-flight requests do not drain in time.
func (f *Frontend) Stop() error {
	f.mu.Lock()
	if !f.lifecycle.CanStop() {
		f.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := f.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.mu.Unlock()

	err := f.lifecycle.WaitWithTimeout(f.config.ShutdownTimeout + shutdownGrace)
	if err == nil {
		f.mu.RLock()
		err = f.serveErr
		f.mu.RUnlock()
	}

	f.shutdownPlugins(f.plugins)

	if err != nil {
		_ = f.lifecycle.TransitionTo(app.StateCrashed, "shutdown failed")
		return err
	}
	_ = f.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	return nil
}

// Status returns the current lifecycle state.
func (f *Frontend) Status() State {
	return f.lifecycle.State()
}

// Addr returns the address the last Start bound to, or "" before the
// first Start.
func (f *Frontend) Addr() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.addr
}

// Err returns the error that ended the last run, or nil if serving ended
// cleanly or is still in progress. After a crash it holds the cause.
func (f *Frontend) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.serveErr
}

// Handler returns the HTTP handler serving the page, for mounting the
// page in another server.
func (f *Frontend) Handler() http.Handler {
	return f.handler
}

func (f *Frontend) shutdownPlugins(plugins []Plugin) {
	ctx, cancel := context.WithTimeout(context.Background(), f.config.ShutdownTimeout)
	defer cancel()

	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if err := p.Shutdown(ctx); err != nil {
			f.logger.Error("plugin shutdown failed",
				log.String("plugin", p.Name()),
				log.Err(err))
			continue
		}
		f.logger.Info("plugin shutdown complete", log.String("plugin", p.Name()))
	}
}
