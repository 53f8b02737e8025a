// Command batchgen generates audio from a voice-sets manifest: many lines
// across multiple voices and styles, with per-set and per-line parameter
// overrides and stable derived filenames so re-runs are safe.
//
// Usage:
//
//	export TYPECAST_API_KEY="..."
//	batchgen -manifest voice_sets.yaml -out out_audio
//
//	# Inspect the plan without calling the API
//	batchgen -dry-run
//
//	# Discover voices for a model
//	batchgen -list-voices -model ssfm-v21
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/luluco/voicegen/internal/cli"
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
	manifestPath := flag.String("manifest", "voice_sets.yaml", "path to the voice-sets manifest")
	outDir := flag.String("out", "out_audio", "output directory")
	dryRun := flag.Bool("dry-run", false, "log planned outputs without calling the API")
	overwrite := flag.Bool("overwrite", false, "overwrite existing files")
	listVoices := flag.Bool("list-voices", false, "list available voices and exit")
	model := flag.String("model", "", "filter voices by model when listing")
	sleep := flag.Duration("sleep", 0, "pause between API calls")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	slog.SetDefault(cli.NewLogger(*verbose))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *listVoices {
		return runListVoices(ctx, *model)
	}

	sf, err := manifest.LoadSets(*manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Error("manifest not found", "path", *manifestPath)
		} else {
			slog.Error("manifest invalid", "err", err)
		}
		return cli.ExitManifest
	}
	lines, err := sf.Resolve()
	if err != nil {
		slog.Error("manifest invalid", "err", err)
		return cli.ExitManifest
	}
	slog.Info("manifest loaded", "path", *manifestPath, "sets", len(sf.Sets), "lines", len(lines))

	entries := plan.FromResolvedLines(*outDir, lines)
	if len(entries) == 0 {
		slog.Warn("manifest contains no lines")
		return cli.ExitOK
	}

	var synth tts.Synthesizer
	if !*dryRun {
		c, err := typecast.NewFromEnv()
		if err != nil {
			slog.Error("client construction failed", "err", err)
			return cli.ExitFailed
		}
		synth = c
	}

	r := &runner.Runner{Synth: synth, Force: *overwrite, DryRun: *dryRun, Sleep: *sleep}
	summary := r.Run(ctx, entries)
	summary.LogSummary(slog.Default(), *outDir)
	return summary.ExitCode()
}

// runListVoices prints the voice catalogue as tab-separated lines on stdout:
// id, model, name, language.
func runListVoices(ctx context.Context, model string) int {
	c, err := typecast.NewFromEnv()
	if err != nil {
		slog.Error("client construction failed", "err", err)
		return cli.ExitFailed
	}

	// Voice discovery is an optional provider capability; the typed check
	// replaces guessing at method names on the client.
	var synth tts.Synthesizer = c
	lister, ok := synth.(tts.VoiceLister)
	if !ok {
		slog.Error("this provider does not support voice listing")
		return cli.ExitManifest
	}

	voices, err := lister.ListVoices(ctx, model)
	if err != nil {
		if errors.Is(err, tts.ErrUnsupported) {
			slog.Error("voice listing is not supported by this API version; use the REST endpoint GET /v1/voices")
			return cli.ExitManifest
		}
		slog.Error("listing voices failed", "err", err)
		return cli.ExitFailed
	}

	for _, v := range voices {
		fmt.Printf("%s\t%s\t%s\t%s\n", v.ID, v.Model, v.Name, v.Language)
	}
	return cli.ExitOK
}
