package crmapp

import (
	"fmt"
	"time"

	"github.com/bft-labs/crmapp/internal/domain"
)

// Default values applied by Config.SetDefaults.
const (
	// DefaultListenAddr is the front-end port the CRM backend accepts
	// cross-origin requests from.
	DefaultListenAddr        = ":3000"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Config configures a Frontend.
type Config struct {
	// ListenAddr is the TCP address to serve on.
	ListenAddr string

	// ReadHeaderTimeout bounds how long a client may take to send
	// request headers.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds how long Stop waits for in-flight requests.
	ShutdownTimeout time.Duration

	// ConfigPath is the config file the process was started with. It is
	// passed to plugins and may be empty.
	ConfigPath string
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// Validate checks the configuration. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("%w: listen address is required", domain.ErrInvalidConfig)
	}
	if c.ReadHeaderTimeout < 0 {
		return fmt.Errorf("%w: read header timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: shutdown timeout must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}
