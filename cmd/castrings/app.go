package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/castrings/config"
	"github.com/c360studio/castrings/extract"
	"github.com/c360studio/castrings/gen"
	"github.com/c360studio/castrings/preprocess"
	"github.com/c360studio/castrings/watch"
)

// App wires the pipeline stages together: preprocess, extract, render,
// write. There is no state between runs; watch mode simply calls the
// same pipeline again.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, logger: logger}
}

// GenerateOnce runs one full generation pass and writes the output.
func (a *App) GenerateOnce(ctx context.Context) error {
	start := time.Now()

	runner := &preprocess.Runner{
		Compiler: a.cfg.Compiler,
		Sysroot:  a.cfg.Sysroot,
		Header:   a.cfg.Header,
		Logger:   a.logger,
	}

	defs, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	res := extract.Scan(defs)
	a.logger.Info("Extracted constant tables",
		"selectors", len(res.Selectors),
		"classes", len(res.Classes),
		"scopes", len(res.Scopes),
		"operations", len(res.Operations),
		"errors", len(res.Errors),
		"format_ids", len(res.FormatIDs),
		"format_flags", len(res.FormatFlags))

	data, err := gen.Render(res, gen.Meta{
		Generator: appName,
		Source:    a.cfg.Header,
	})
	if err != nil {
		return err
	}

	if err := gen.WriteFile(a.cfg.Output, data); err != nil {
		return err
	}

	a.logger.Info("Generated stringification source",
		"output", a.cfg.Output,
		"bytes", len(data),
		"elapsed", time.Since(start))
	return nil
}

// Watch generates once, then regenerates on every header change until
// the context is cancelled.
func (a *App) Watch(ctx context.Context) error {
	if err := a.GenerateOnce(ctx); err != nil {
		return err
	}

	headerFile, err := preprocess.ResolveHeaderFile(a.cfg.Sysroot, a.cfg.Header)
	if err != nil {
		return err
	}
	if headerFile == "" {
		return fmt.Errorf("watch: header %s not found under sysroot %q", a.cfg.Header, a.cfg.Sysroot)
	}

	w, err := watch.New(watch.Config{
		Path:          headerFile,
		DebounceDelay: a.cfg.Watch.DebounceDelay,
		Logger:        a.logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	return w.Run(ctx, func(ctx context.Context, runID string) error {
		return a.GenerateOnce(ctx)
	})
}
