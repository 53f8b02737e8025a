// Command assetgen generates the full tree of TTS voice assets from a
// content-sets manifest (prefixes, suffixes, variables, micro reactions,
// completion reactions).
//
// Usage:
//
//	export TYPECAST_API_KEY="..."
//	assetgen -yaml content_sets.yaml -out voice_assets
//
//	# Only two groups
//	assetgen -only prefixes,colors
//
//	# Inspect the plan without spending API credits
//	assetgen -dry-run
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
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
	outDir := flag.String("out", "voice_assets", "output directory")
	only := flag.String("only", "", "comma-separated group filter (e.g. prefixes,colors,completion_enough)")
	sleep := flag.Duration("sleep", 250*time.Millisecond, "pause between API calls")
	force := flag.Bool("force", false, "regenerate even if the file exists")
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
	slog.Info("manifest loaded",
		"path", *yamlPath, "version", rf.Root.Version, "locale", rf.Root.Locale)

	groups := rf.Root.Groups()
	selected := parseOnly(*only, groups)

	var entries []plan.Entry
	for _, g := range groups {
		if selected != nil && !selected[g.Key] {
			continue
		}
		entries = append(entries, plan.FromGroup(*outDir, g, defaults)...)
	}
	if len(entries) == 0 {
		slog.Warn("no items to generate; check the -only filter")
		return cli.ExitOK
	}
	slog.Info("plan built", "items", len(entries), "out", *outDir, "format", defaults.Format)

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

// parseOnly turns the -only flag into a set of group keys. Returns nil when
// the flag is empty (meaning: all groups). Unknown keys are reported so a
// typo doesn't silently generate nothing.
func parseOnly(only string, groups []manifest.Group) map[string]bool {
	if only == "" {
		return nil
	}
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g.Key] = true
	}
	selected := make(map[string]bool)
	for _, key := range strings.Split(only, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !known[key] {
			slog.Warn("unknown group in -only filter", "group", key)
			continue
		}
		selected[key] = true
	}
	return selected
}
