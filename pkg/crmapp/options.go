package crmapp

import (
	"net"

	"github.com/bft-labs/crmapp/pkg/log"
)

// Option configures optional behavior of a Frontend.
type Option func(*options)

type options struct {
	logger        log.Logger
	eventHandlers []EventHandler
	plugins       []Plugin
	listener      net.Listener
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler adds a handler for lifecycle events. Handlers are
// called in registration order.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		if handler != nil {
			o.eventHandlers = append(o.eventHandlers, handler)
		}
	}
}

// WithListener serves on ln instead of listening on Config.ListenAddr.
// The listener is used by the first Start only and is closed when
// serving ends; a later Start listens on ListenAddr.
func WithListener(ln net.Listener) Option {
	return func(o *options) {
		o.listener = ln
	}
}

// WithPlugin registers a plugin. Plugins are initialized in
// registration order and shut down in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
