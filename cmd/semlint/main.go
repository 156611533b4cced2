// Package main provides the semlint binary entry point.
// Semlint scans the human-authored text of semantic model documents
// for configured non-inclusive terms and reports findings.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/semlint/config"
	"github.com/c360studio/semlint/metric"
	"github.com/c360studio/semlint/runner"
	"github.com/c360studio/semlint/validate"
	"github.com/c360studio/semlint/watch"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semlint"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Non-inclusive terms linter for semantic models",
		Long: `Semlint loads semantic model JSON documents and scans every piece of
human-authored text in them (namespace names, shape names, trait
values) for configured non-inclusive terms.

Findings are reported with context-aware remediation messages and
case-matched replacement suggestions. The term table starts from a
built-in default set and can be extended or replaced in semlint.yaml.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(lintCmd(&configPath, &logLevel))
	cmd.AddCommand(watchCmd(&configPath, &logLevel))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func lintCmd(configPath, logLevel *string) *cobra.Command {
	var (
		format  string
		noColor bool
		failOn  string
	)

	cmd := &cobra.Command{
		Use:   "lint [patterns...]",
		Short: "Lint model documents once and report findings",
		Long: `Lint discovers model JSON documents via the configured glob patterns
(or the patterns given as arguments), loads them into one model, and
runs all validators.

Exit status is 0 when no finding reaches the --fail-on severity, 1
when at least one does, and 2 on configuration or load errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Output.Format = format
			}
			if noColor {
				cfg.Output.NoColor = true
			}
			threshold := validate.Severity(strings.ToUpper(failOn))
			if failOn != "" && !threshold.Valid() {
				return fmt.Errorf("unknown --fail-on severity %q", failOn)
			}

			r, err := runner.New(cfg, logger, nil)
			if err != nil {
				return err
			}

			result, err := r.RunAndRender(cmd.OutOrStdout(), args)
			if err != nil {
				return err
			}

			if failOn != "" {
				for _, e := range result.Events {
					if e.Severity.AtLeast(threshold) {
						// Report already rendered; signal failure only
						// through the exit status.
						os.Exit(1)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json); overrides config")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Exit non-zero when a finding reaches this severity (NOTE, WARNING, DANGER, ERROR)")

	return cmd
}

func watchCmd(configPath, logLevel *string) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-lint whenever a model document changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}

			var metrics *metric.Metrics
			if cfg.Metrics.Enabled {
				metrics = metric.New()
			}

			r, err := runner.New(cfg, logger, metrics)
			if err != nil {
				return err
			}

			w, err := watch.New(cfg.Watch, root, r, cmd.OutOrStdout(), logger)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if metrics != nil {
				go func() {
					if err := metrics.Serve(ctx, cfg.Metrics.Listen, logger); err != nil {
						logger.Error("metrics endpoint failed", "error", err)
					}
				}()
			}

			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Directory tree to watch")

	return cmd
}

// setup loads the configuration and installs the default logger.
func setup(configPath, logLevel string) (*config.Config, *slog.Logger, error) {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
		if err == nil {
			err = cfg.Validate()
		}
	} else {
		cfg, err = config.NewLoader(logger).Load()
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
