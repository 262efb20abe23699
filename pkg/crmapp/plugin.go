package crmapp

import (
	"context"

	"github.com/bft-labs/crmapp/pkg/log"
)

// Plugin extends a Frontend with work that runs next to the server.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize is called by Start before the server accepts
	// connections. ctx is canceled when the Frontend stops. Returning an
	// error aborts Start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called by Stop, in reverse registration order.
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin gets to know about the Frontend.
type PluginConfig struct {
	ConfigPath string
	ListenAddr string
	Logger     log.Logger
}
