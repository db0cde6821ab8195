// Package watch re-runs the generation pipeline when the source header
// changes on disk. Each run is a full, stateless regeneration; nothing
// is cached between runs.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// RegenerateFunc runs one full generation pass. The run ID only tags
// log lines so a debounced batch can be traced end to end.
type RegenerateFunc func(ctx context.Context, runID string) error

// Config configures the watcher
type Config struct {
	// Path is the concrete header file to watch
	Path string

	// DebounceDelay is how long to wait for more changes before regenerating
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// Watcher watches the header file and triggers regeneration
type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before regenerating
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op
}

// New creates a watcher for the configured header file
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if config.DebounceDelay == 0 {
		config.DebounceDelay = 500 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
	}, nil
}

// Run watches until ctx is cancelled, invoking regen after each
// debounced batch of changes. A failed regeneration is logged and the
// watch continues; every run is independent.
func (w *Watcher) Run(ctx context.Context, regen RegenerateFunc) error {
	defer w.watcher.Close()

	// Watch the containing directory: editors and SDK updates replace
	// the file, which drops a watch placed on the file itself.
	dir := filepath.Dir(w.config.Path)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.logger.Info("Watching header",
		"path", w.config.Path,
		"debounce", w.config.DebounceDelay)

	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx, regen)
		}
	}
}

// handleFSEvent accumulates a single fsnotify event
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.config.Path) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Header change detected",
		"path", event.Name,
		"op", event.Op.String())
}

// flushPending regenerates once for any accumulated changes
func (w *Watcher) flushPending(ctx context.Context, regen RegenerateFunc) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	changes := len(w.pending)
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	runID := uuid.New().String()
	w.logger.Info("Header changed, regenerating",
		"run_id", runID,
		"changes", changes)

	start := time.Now()
	if err := regen(ctx, runID); err != nil {
		w.logger.Error("Regeneration failed",
			"run_id", runID,
			"error", err)
		return
	}

	w.logger.Info("Regeneration complete",
		"run_id", runID,
		"elapsed", time.Since(start))
}
