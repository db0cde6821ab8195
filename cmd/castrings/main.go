// Package main provides the castrings binary entry point.
// Castrings regenerates the CoreAudio constant stringification source:
// it preprocesses CoreAudio/AudioServerPlugIn.h with an external C
// compiler, extracts the named constant families, and emits one lookup
// function per family into a C++ source file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/castrings/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "castrings"
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
		os.Exit(1)
	}
}

// flagOverrides carries the CLI flag surface; non-zero values take
// precedence over file-based configuration.
type flagOverrides struct {
	Compiler string
	Sysroot  string
	Output   string
	Watch    bool
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		flags      flagOverrides
	)

	cmd := &cobra.Command{
		Use:   "castrings",
		Short: "CoreAudio stringification generator",
		Long: `Castrings generates the C++ source that converts CoreAudio numeric
constants into human-readable names.

It preprocesses CoreAudio/AudioServerPlugIn.h with an external C
compiler, extracts selector, class, scope, operation, error and format
constants, resolves selector code collisions, and writes one switch
function per family with a numeric fallback for unknown codes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, logLevel, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Compiler, "compiler", "c", "", "Compiler executable (default \"clang\")")
	cmd.Flags().StringVarP(&flags.Sysroot, "sysroot", "s", "", "Sysroot path passed as -isysroot")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output C++ file path (required unless set in config)")
	cmd.Flags().BoolVar(&flags.Watch, "watch", false, "Watch the header and regenerate on change")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(configPath, logLevel string, flags flagOverrides) error {
	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := loadConfig(configPath, logger)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	app := NewApp(cfg, logger)

	ctx := context.Background()
	if cfg.Watch.Enabled {
		return app.Watch(ctx)
	}
	return app.GenerateOnce(ctx)
}

// loadConfig loads an explicit config file, or falls back to the
// layered loader (defaults, user config, project config).
func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath != "" {
		explicit, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		return explicit, nil
	}
	return config.NewLoader(logger).Load()
}

// applyFlags layers CLI flags on top of the loaded config.
func applyFlags(cfg *config.Config, flags flagOverrides) {
	cfg.Merge(&config.Config{
		Compiler: flags.Compiler,
		Sysroot:  flags.Sysroot,
		Output:   flags.Output,
		Watch:    config.WatchConfig{Enabled: flags.Watch},
	})
}
