package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/telemetry"
	"github.com/vango-dev/vtree/pkg/reactive"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┌┬┐┬─┐┌─┐┌─┐
  ╚╗╔╝ │ ├┬┘├┤ ├┤
   ╚╝  ┴ ┴└─└─┘└─┘
`

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Reactive virtual DOM runtime",
		Long: `vtree is a reactive virtual DOM runtime for Go.

Components declare state; watchers re-render them when it changes and a
keyed patcher applies the difference to a host tree. The tree can be
streamed to a browser over a websocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file or directory (vtree.json / vtree.yaml)")

	load := func() (*config.Config, error) { return loadConfig(configPath) }

	rootCmd.AddCommand(
		serveCmd(load),
		demoCmd(load),
		benchCmd(),
		configCmd(load),
		errorsCmd(),
		versionCmd(),
	)

	if os.Getenv("NO_COLOR") != "" {
		errors.DisableColors()
	}
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads path, a file or a directory. An empty path uses the
// working directory and falls back to defaults when no file exists there.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path == "":
		cfg, err = config.Load(".")
		if errors.HasCode(err, "C001") {
			cfg, err = config.New(), nil
		}
	default:
		if st, statErr := os.Stat(path); statErr == nil && st.IsDir() {
			cfg, err = config.Load(path)
		} else {
			cfg, err = config.LoadFile(path)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the slog logger the config selects.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// runtimeOptions maps the config onto runtime options. metrics may be nil.
func runtimeOptions(cfg *config.Config, logger *slog.Logger, metrics *telemetry.Metrics) []reactive.Option {
	opts := []reactive.Option{
		reactive.WithLogger(logger),
		reactive.WithMaxUpdateCount(cfg.Scheduler.MaxUpdateCount),
		reactive.WithSync(cfg.Scheduler.Sync),
		reactive.WithInteractive(cfg.Errors.Interactive),
		reactive.WithMetrics(metrics),
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, reactive.WithTracer(telemetry.NewTracer(cfg.Tracing.TracerName)))
	}
	return opts
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
