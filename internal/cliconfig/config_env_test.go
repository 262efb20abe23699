package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"CRMAPP_LISTEN_ADDR":         ":8080",
				"CRMAPP_LOG_LEVEL":           "warn",
				"CRMAPP_LOG_FORMAT":          "json",
				"CRMAPP_READ_HEADER_TIMEOUT": "3s",
				"CRMAPP_SHUTDOWN_TIMEOUT":    "20s",
				"CRMAPP_WATCH_CONFIG":        "false",
			},
			changed: map[string]bool{},
			initial: DefaultConfig(),
			expected: Config{
				ListenAddr:        ":8080",
				LogLevel:          "warn",
				LogFormat:         "json",
				ReadHeaderTimeout: 3 * time.Second,
				ShutdownTimeout:   20 * time.Second,
				WatchConfig:       false,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"CRMAPP_LISTEN_ADDR": ":8080",
				"CRMAPP_LOG_LEVEL":   "warn",
			},
			changed:  map[string]bool{"listen-addr": true},
			initial:  Config{ListenAddr: ":3001"},
			expected: Config{ListenAddr: ":3001", LogLevel: "warn"},
		},
		{
			name:     "handles bool '1' as true",
			envVars:  map[string]string{"CRMAPP_WATCH_CONFIG": "1"},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{WatchConfig: true},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"CRMAPP_SHUTDOWN_TIMEOUT": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "returns error for invalid bool",
			envVars: map[string]string{"CRMAPP_WATCH_CONFIG": "maybe"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnvConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnvConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CRMAPP_LOG_LEVEL", "debug")
	t.Setenv("CRMAPP_LISTEN_ADDR", "")

	got := EnvOverrides()
	if !got["log-level"] {
		t.Error("log-level not reported as overridden")
	}
	if got["listen-addr"] {
		t.Error("empty CRMAPP_LISTEN_ADDR reported as overridden")
	}
}

// Precedence order: CLI > Env > File.
func TestConfigPrecedence(t *testing.T) {
	falseVal := false

	fileConf := FileConfig{
		ListenAddr:  ":5000",
		LogLevel:    "error",
		LogFormat:   "json",
		WatchConfig: &falseVal,
	}

	t.Setenv("CRMAPP_LISTEN_ADDR", ":6000")
	t.Setenv("CRMAPP_LOG_LEVEL", "warn")

	changed := map[string]bool{"listen-addr": true}

	cfg := DefaultConfig()
	cfg.ListenAddr = ":7000"

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.ListenAddr != ":7000" {
		t.Errorf("ListenAddr = %v, want :7000 (CLI should win)", cfg.ListenAddr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn (env should override file)", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %v, want json (file should set)", cfg.LogFormat)
	}
	if cfg.WatchConfig {
		t.Error("WatchConfig = true, want false (file should set)")
	}
}
