package cliconfig

import "os"

// EnvPrefix prefixes every environment variable crmapp reads.
const EnvPrefix = "CRMAPP_"

// ApplyEnvConfig applies configuration from environment variables (CRMAPP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen-addr", os.Getenv(EnvPrefix+"LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvPrefix+"LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setDuration("read-header-timeout", os.Getenv(EnvPrefix+"READ_HEADER_TIMEOUT"), &cfg.ReadHeaderTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv(EnvPrefix+"SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	return s.setBoolFromString("watch-config", os.Getenv(EnvPrefix+"WATCH_CONFIG"), &cfg.WatchConfig)
}

// EnvOverrides reports, keyed by flag name, which settings the
// environment currently provides.
func EnvOverrides() map[string]bool {
	vars := map[string]string{
		"listen-addr":         "LISTEN_ADDR",
		"log-level":           "LOG_LEVEL",
		"log-format":          "LOG_FORMAT",
		"read-header-timeout": "READ_HEADER_TIMEOUT",
		"shutdown-timeout":    "SHUTDOWN_TIMEOUT",
		"watch-config":        "WATCH_CONFIG",
	}
	out := map[string]bool{}
	for flag, name := range vars {
		if os.Getenv(EnvPrefix+name) != "" {
			out[flag] = true
		}
	}
	return out
}
