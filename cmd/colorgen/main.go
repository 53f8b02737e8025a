// Command colorgen generates TTS voice assets for color reactions from a
// colors manifest (utterances.long_by_color / short_by_color sections).
//
// Usage:
//
//	export TYPECAST_API_KEY="..."
//	colorgen -yaml colors.yaml -out voice_assets_colors
//
//	# Generate only 5 long and 3 short utterances, reproducibly
//	colorgen -n-long 5 -n-short 3 -seed 123
//
//	# Everything, overwriting previous output
//	colorgen -all -force
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luluco/voicegen/internal/cli"
	"github.com/luluco/voicegen/internal/config"
	"github.com/luluco/voicegen/internal/manifest"
	"github.com/luluco/voicegen/internal/plan"
	"github.com/luluco/voicegen/internal/runner"
	"github.com/luluco/voicegen/pkg/provider/tts"
	"github.com/luluco/voicegen/pkg/provider/tts/typecast"
)

func main() {
	os.Exit(run())
}

func run() int {
	yamlPath := flag.String("yaml", "colors.yaml", "path to the colors manifest")
	outDir := flag.String("out", "voice_assets_colors", "output directory")
	seed := flag.Int64("seed", 42, "random seed for sampling")
	nLong := flag.Int("n-long", 10, "number of long utterances to generate (<= 0 means all)")
	nShort := flag.Int("n-short", 10, "number of short utterances to generate (<= 0 means all)")
	all := flag.Bool("all", false, "generate all utterances, ignoring -n-long/-n-short")
	sleep := flag.Duration("sleep", 250*time.Millisecond, "pause between API calls")
	force := flag.Bool("force", false, "overwrite existing files")
	dryRun := flag.Bool("dry-run", false, "log the plan without generating")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	slog.SetDefault(cli.NewLogger(*verbose))

	defaults := config.Default()
	if err := defaults.Validate(); err != nil {
		slog.Error("invalid synthesis defaults", "err", err)
		return cli.ExitFailed
	}

	rf, err := manifest.LoadReactions(*yamlPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Error("manifest not found", "path", *yamlPath)
		} else {
			slog.Error("manifest invalid", "err", err)
		}
		return cli.ExitManifest
	}

	long := rf.Root.Utterances.LongByColor
	short := rf.Root.Utterances.ShortByColor
	slog.Info("manifest loaded", "long", len(long), "short", len(short))

	if !*all {
		rng := rand.New(rand.NewSource(*seed))
		long = plan.Sample(long, *nLong, rng)
		short = plan.Sample(short, *nShort, rng)
	}

	entries := plan.FromUtterances(*outDir, "long", long, defaults)
	entries = append(entries, plan.FromUtterances(*outDir, "short", short, defaults)...)
	if len(entries) == 0 {
		slog.Warn("no utterances selected")
		return cli.ExitOK
	}
	slog.Info("generating color utterances",
		"seed", *seed, "selected_long", len(long), "selected_short", len(short),
		"out", *outDir, "format", defaults.Format)

	var synth tts.Synthesizer
	if !*dryRun {
		c, err := typecast.NewFromEnv()
		if err != nil {
			slog.Error("client construction failed", "err", err)
			return cli.ExitFailed
		}
		synth = c
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := &runner.Runner{Synth: synth, Force: *force, DryRun: *dryRun, Sleep: *sleep}
	summary := r.Run(ctx, entries)
	summary.LogSummary(slog.Default(), *outDir)
	return summary.ExitCode()
}
