// Package preprocess materializes the expanded text of a CoreAudio
// header by running an external C compiler in preprocessor mode.
package preprocess

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner invokes the C preprocessor on a single include directive.
type Runner struct {
	// Compiler is the compiler executable, e.g. "clang".
	Compiler string

	// Sysroot is passed as -isysroot when non-empty.
	Sysroot string

	// Header is the include path fed to the preprocessor,
	// e.g. "CoreAudio/AudioServerPlugIn.h".
	Header string

	// Logger for diagnostics; defaults to slog.Default.
	Logger *slog.Logger
}

// Args returns the compiler argument vector, without the executable.
func (r *Runner) Args() []string {
	var args []string
	if r.Sysroot != "" {
		args = append(args, "-isysroot", r.Sysroot)
	}
	args = append(args, "-", "-E", "-")
	return args
}

// Run executes the preprocessor and returns its full stdout. Any
// compiler failure is fatal for the run; there is nothing to extract
// without the expanded text.
func (r *Runner) Run(ctx context.Context) (string, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := fmt.Sprintf("#include <%s>\n", r.Header)

	cmd := exec.CommandContext(ctx, r.Compiler, r.Args()...)
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running preprocessor",
		"compiler", r.Compiler,
		"header", r.Header,
		"sysroot", r.Sysroot)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("preprocess %s: %w: %s", r.Header, err, stderrTail(stderr.String()))
	}

	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("preprocess %s: compiler produced no output", r.Header)
	}

	logger.Debug("Preprocessor finished", "bytes", len(out))
	return out, nil
}

// stderrTail keeps the last few lines of compiler noise for the error
// message; full diagnostics can run to thousands of lines.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(no stderr)"
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "\n")
}
