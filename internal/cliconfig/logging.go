package cliconfig

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel parses a log level name such as "debug" or "warn".
func ParseLevel(level string) (zerolog.Level, error) {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if l == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// NewLogger builds the process logger writing to w. The level is applied
// globally so that ReloadLogLevel can change it later.
func NewLogger(w io.Writer, cfg Config) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.SetGlobalLevel(level)

	out := w
	if cfg.LogFormat != FormatJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Logger(), nil
}

// ReloadLogLevel re-reads the config file at path and applies its
// log_level, unless the level was fixed by a flag or the environment.
// It returns the level in effect afterwards.
func ReloadLogLevel(path string, changed map[string]bool) (zerolog.Level, error) {
	current := zerolog.GlobalLevel()
	if changed["log-level"] {
		return current, nil
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		return current, fmt.Errorf("load config: %w", err)
	}
	if fc.LogLevel == "" {
		return current, nil
	}

	level, err := ParseLevel(fc.LogLevel)
	if err != nil {
		return current, err
	}
	zerolog.SetGlobalLevel(level)
	return level, nil
}
