// Package cli holds the few bits shared by all generation commands: logger
// construction and the process exit codes.
package cli

import (
	"log/slog"
	"os"
)

// Exit codes shared by every command.
const (
	// ExitOK means every planned item was generated or skipped.
	ExitOK = 0

	// ExitFailed means at least one item failed (or a fatal non-manifest
	// error occurred before processing).
	ExitFailed = 1

	// ExitManifest means the input manifest is missing or invalid; nothing
	// was processed.
	ExitManifest = 2
)

// NewLogger builds the process logger: slog text handler on stderr, debug
// level when verbose.
func NewLogger(verbose bool) *slog.Logger {
	lvl := slog.LevelInfo
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
