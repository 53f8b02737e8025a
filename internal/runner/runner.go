// Package runner executes a generation plan sequentially: skip existing
// clips, synthesize the rest, write each clip atomically, and keep counts.
//
// One pass, in plan order, no retries. A failed item is logged and counted;
// the run carries on to the next entry. The final exit status of a run is
// derived from the counts via [Summary.ExitCode].
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/luluco/voicegen/internal/plan"
	"github.com/luluco/voicegen/pkg/provider/tts"
)

// Runner executes plan entries against a TTS backend.
type Runner struct {
	// Synth performs the synthesis calls. May be nil in dry-run mode.
	Synth tts.Synthesizer

	// Force regenerates clips whose destination already exists.
	Force bool

	// DryRun logs the plan and counts would-be generations without touching
	// the filesystem or the backend.
	DryRun bool

	// Sleep is a fixed pause after each real synthesis attempt, throttling
	// request rate against the vendor's limits. Zero disables it.
	Sleep time.Duration

	// Log receives progress lines. Nil falls back to slog.Default().
	Log *slog.Logger
}

// Summary is the outcome tally of one run.
type Summary struct {
	Generated int
	Skipped   int
	Failed    int
}

// ExitCode maps the tally to the process exit code: 1 when any item failed,
// 0 otherwise.
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}

// Run processes entries in order and returns the tally. Each entry lands in
// exactly one bucket: skipped (exists or empty text), generated, or failed.
func (r *Runner) Run(ctx context.Context, entries []plan.Entry) Summary {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	var s Summary
	total := len(entries)
	for i, e := range entries {
		if ctx.Err() != nil {
			log.Warn("run interrupted", "remaining", total-i)
			break
		}
		if !r.Force {
			if _, err := os.Stat(e.Dest); err == nil {
				s.Skipped++
				log.Debug("destination exists, skipping", "id", e.ID, "dest", e.Dest)
				continue
			}
		}
		if strings.TrimSpace(e.Text) == "" {
			s.Skipped++
			log.Warn("empty text, skipping", "id", e.ID)
			continue
		}

		log.Info("generating",
			"progress", fmt.Sprintf("%03d/%03d", i+1, total),
			"id", e.ID,
			"dest", e.Dest,
			"text", e.Text,
		)

		if r.DryRun {
			s.Generated++
			continue
		}

		res, err := r.Synth.Synthesize(ctx, e.Req)
		if err != nil {
			s.Failed++
			log.Error("synthesis failed", "id", e.ID, "err", err)
		} else if err := WriteFileAtomic(e.Dest, res.Audio); err != nil {
			s.Failed++
			log.Error("write failed", "id", e.ID, "dest", e.Dest, "err", err)
		} else {
			s.Generated++
			if res.Duration > 0 {
				log.Debug("clip written", "id", e.ID, "duration_s", res.Duration)
			}
		}

		if r.Sleep > 0 {
			time.Sleep(r.Sleep)
		}
	}
	return s
}

// LogSummary emits the final tally of a run.
func (s Summary) LogSummary(log *slog.Logger, outDir string) {
	log.Info("run complete",
		"generated", s.Generated,
		"skipped", s.Skipped,
		"failed", s.Failed,
		"out_dir", outDir,
	)
}
