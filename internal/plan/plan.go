// Package plan turns selected manifest utterances into an ordered generation
// plan: one entry per clip, carrying the destination path and the fully
// resolved synthesis request.
package plan

import (
	"path/filepath"

	"github.com/luluco/voicegen/internal/config"
	"github.com/luluco/voicegen/internal/manifest"
	"github.com/luluco/voicegen/pkg/provider/tts"
)

// Entry is one planned clip.
type Entry struct {
	// Dest is the destination file path.
	Dest string

	// ID identifies the entry in logs ("group:id" or "set/key").
	ID string

	// Text is the utterance text; empty text is skipped by the runner.
	Text string

	// Req is the synthesis request for this entry.
	Req tts.Request
}

// FromUtterances plans one entry per utterance under outDir/subdir, with the
// filename "<id><ext>" and the request built from the shared defaults.
func FromUtterances(outDir, subdir string, items []manifest.Utterance, defaults config.Synthesis) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, u := range items {
		entries = append(entries, Entry{
			Dest: filepath.Join(outDir, subdir, u.ID+defaults.Extension()),
			ID:   u.ID,
			Text: u.Text,
			Req:  defaults.Request(u.Text),
		})
	}
	return entries
}

// FromGroup is FromUtterances with the group's key prefixed onto the log ids,
// so progress lines read "colors:blue" rather than a bare id.
func FromGroup(outDir string, g manifest.Group, defaults config.Synthesis) []Entry {
	entries := FromUtterances(outDir, g.Subdir, g.Items, defaults)
	for i := range entries {
		entries[i].ID = g.Key + ":" + g.Items[i].ID
	}
	return entries
}

// FromResolvedLines plans one entry per resolved voice-set line. Filenames
// come from the resolution step (explicit or derived) and land directly under
// outDir.
func FromResolvedLines(outDir string, lines []manifest.ResolvedLine) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, l := range lines {
		entries = append(entries, Entry{
			Dest: filepath.Join(outDir, l.Filename),
			ID:   l.Set + "/" + l.Key,
			Text: l.Text,
			Req:  l.Request(),
		})
	}
	return entries
}
