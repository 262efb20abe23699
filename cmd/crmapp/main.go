package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	crm "github.com/bft-labs/crmapp"
	"github.com/bft-labs/crmapp/internal/cliconfig"
	"github.com/bft-labs/crmapp/internal/view"
	"github.com/bft-labs/crmapp/pkg/crmapp"
	"github.com/bft-labs/crmapp/pkg/log"
	"github.com/bft-labs/crmapp/plugins/configwatcher"
)

const longHelp = `Serve the CRM front end.

The front end is a placeholder page for the CRM application. It expects
the backend at http://localhost:8000 and listens on :3000 by default.

Configuration is read from $HOME/.crmapp/config.toml, then CRMAPP_*
environment variables, then flags; later sources win. While running, a
change to log_level in the config file takes effect without a restart.`

var exampleUsage = strings.TrimSpace(`
  crmapp
  crmapp --listen-addr 127.0.0.1:3000 --log-level debug
  crmapp --config ./crmapp.toml --log-format json
  crmapp render --format text
`)

// Output formats for the render command.
const (
	formatHTML     = "html"
	formatFragment = "fragment"
	formatText     = "text"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
		logger.Error().Err(err).Msg("crmapp")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "crmapp",
		Short:         "Serve the CRM front-end placeholder",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, &cfg, cfgPath)
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.crmapp/config.toml)")
	root.Flags().StringVar(&cfg.ListenAddr, "listen-addr", cfg.ListenAddr, "address to serve the front end on")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	root.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console or json)")
	root.Flags().DurationVar(&cfg.ReadHeaderTimeout, "read-header-timeout", cfg.ReadHeaderTimeout, "maximum time to read request headers")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "maximum time to drain requests on shutdown")
	root.Flags().BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "apply log level changes from the config file while running")

	root.AddCommand(newRenderCommand())
	return root
}

func newRenderCommand() *cobra.Command {
	format := formatHTML

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the front-end page to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", format, "output format (html, fragment or text)")
	return cmd
}

func render(w io.Writer, format string) error {
	switch format {
	case formatHTML:
		return view.Render(w)
	case formatFragment:
		return view.RenderFragment(w)
	case formatText:
		return view.RenderText(w)
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatHTML, formatFragment, formatText)
	}
}

func serve(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	hasFile := cfgFile != "" && cliconfig.FileExists(cfgFile)
	if cfgPath != "" && !hasFile {
		return fmt.Errorf("config file %s not found", cfgPath)
	}

	if hasFile {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zl, err := cliconfig.NewLogger(cmd.ErrOrStderr(), *cfg)
	if err != nil {
		return err
	}
	zl.Info().Interface("config", cfg).Str("config_file", cfgFile).Bool("config_file_found", hasFile).Msg("configuration")

	opts := []crmapp.Option{
		crmapp.WithLogger(log.NewZerologAdapterWithLogger(zl)),
	}

	libCfg := crmapp.Config{
		ListenAddr:        cfg.ListenAddr,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.ShutdownTimeout,
	}

	if cfg.WatchConfig && hasFile {
		libCfg.ConfigPath = cfgFile

		// Levels fixed by a flag or the environment stay fixed.
		pinned := cliconfig.EnvOverrides()
		for k := range changed {
			pinned[k] = true
		}
		opts = append(opts, configwatcher.WithConfigWatcher(configwatcher.Config{
			OnChange: func(path string) error {
				level, err := cliconfig.ReloadLogLevel(path, pinned)
				if err != nil {
					return err
				}
				zl.Info().Str("level", level.String()).Msg("log level applied")
				return nil
			},
		}))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zl.Info().Str("listen_addr", libCfg.ListenAddr).Str("backend", view.BackendURL).Msg("starting frontend")
	if err := crm.Run(ctx, libCfg, opts...); err != nil {
		return err
	}
	zl.Info().Msg("frontend stopped")
	return nil
}
