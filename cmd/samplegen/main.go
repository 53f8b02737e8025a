// Command samplegen generates a small experimental subset of the content-sets
// voice assets. Full generation can run to 100+ clips; this command picks a
// seeded random handful per group so voice quality and pacing can be checked
// cheaply before a full assetgen run.
//
// Usage:
//
//	export TYPECAST_API_KEY="..."
//	samplegen -yaml content_sets.yaml -out voice_assets_sample
//
//	# 3 prefixes, 5 colors, 3 micro reactions, reproducibly
//	samplegen -n-prefix 3 -n-color 5 -n-micro 3 -seed 123
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
	yamlPath := flag.String("yaml", "content_sets.yaml", "path to the content-sets manifest")
	outDir := flag.String("out", "voice_assets_sample", "output directory")
	seed := flag.Int64("seed", 42, "random seed for sampling")

	nPrefix := flag.Int("n-prefix", 5, "prefixes to sample (<= 0 means all)")
	nSuffix := flag.Int("n-suffix", 3, "suffixes to sample (<= 0 means all)")
	nColor := flag.Int("n-color", 10, "colors to sample (<= 0 means all)")
	nTool := flag.Int("n-tool", 5, "tools to sample (<= 0 means all)")
	nMicro := flag.Int("n-micro", 5, "micro reactions to sample (<= 0 means all)")
	nCompletionNotEnough := flag.Int("n-completion-not-enough", 3, "not-enough completions to sample (<= 0 means all)")
	nCompletionEnough := flag.Int("n-completion-enough", 3, "enough completions to sample (<= 0 means all)")

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

	// Sample group by group from one seeded generator, in a fixed order, so a
	// given seed always produces the same overall selection.
	rng := rand.New(rand.NewSource(*seed))
	counts := map[string]int{
		"prefixes":              *nPrefix,
		"suffixes":              *nSuffix,
		"colors":                *nColor,
		"tools":                 *nTool,
		"micro":                 *nMicro,
		"completion_not_enough": *nCompletionNotEnough,
		"completion_enough":     *nCompletionEnough,
	}

	var entries []plan.Entry
	for _, g := range rf.Root.Groups() {
		g.Items = plan.Sample(g.Items, counts[g.Key], rng)
		entries = append(entries, plan.FromGroup(*outDir, g, defaults)...)
	}
	if len(entries) == 0 {
		slog.Warn("no items selected")
		return cli.ExitOK
	}
	slog.Info("generating sample assets",
		"seed", *seed, "items", len(entries), "out", *outDir, "format", defaults.Format)

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
