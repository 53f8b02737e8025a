package plan_test

import (
	"path/filepath"
	"testing"

	"github.com/luluco/voicegen/internal/config"
	"github.com/luluco/voicegen/internal/manifest"
	"github.com/luluco/voicegen/internal/plan"
)

func TestFromUtterances(t *testing.T) {
	t.Parallel()
	items := []manifest.Utterance{
		{ID: "blue_01", Text: "Blue! Lovely."},
		{ID: "red_01", Text: "Red! Bold."},
	}
	defaults := config.Default()

	entries := plan.FromUtterances("out", "long", items, defaults)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	want := filepath.Join("out", "long", "blue_01.mp3")
	if entries[0].Dest != want {
		t.Errorf("dest = %q, want %q", entries[0].Dest, want)
	}
	if entries[0].ID != "blue_01" || entries[0].Text != "Blue! Lovely." {
		t.Errorf("entry = %+v", entries[0])
	}
	if entries[0].Req.Text != "Blue! Lovely." || entries[0].Req.VoiceID != defaults.VoiceID {
		t.Errorf("request = %+v", entries[0].Req)
	}
}

func TestFromGroup_PrefixesLogIDs(t *testing.T) {
	t.Parallel()
	g := manifest.Group{
		Key:    "completion_enough",
		Subdir: "completion/enough",
		Items:  []manifest.Utterance{{ID: "all_done", Text: "All done!"}},
	}
	entries := plan.FromGroup("assets", g, config.Default())
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ID != "completion_enough:all_done" {
		t.Errorf("id = %q, want group-prefixed", entries[0].ID)
	}
	want := filepath.Join("assets", "completion", "enough", "all_done.mp3")
	if entries[0].Dest != want {
		t.Errorf("dest = %q, want %q", entries[0].Dest, want)
	}
}

func TestFromResolvedLines(t *testing.T) {
	t.Parallel()
	lines := []manifest.ResolvedLine{{
		Set:          "greetings",
		Key:          "hello",
		Text:         "Hello there!",
		Filename:     "greetings-hello-abcd1234.mp3",
		Model:        "ssfm-v21",
		VoiceID:      "tc_x",
		Language:     "en",
		OutputFormat: "mp3",
	}}
	entries := plan.FromResolvedLines("out_audio", lines)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Dest != filepath.Join("out_audio", "greetings-hello-abcd1234.mp3") {
		t.Errorf("dest = %q", e.Dest)
	}
	if e.ID != "greetings/hello" {
		t.Errorf("id = %q, want set/key", e.ID)
	}
	if e.Req.VoiceID != "tc_x" || e.Req.Output.Format != "mp3" {
		t.Errorf("request = %+v", e.Req)
	}
}
