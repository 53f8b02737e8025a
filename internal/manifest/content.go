// Package manifest provides the YAML manifest schemas, loaders, and
// validation for voice asset generation.
//
// Two manifest shapes are supported: the reaction manifest (flat utterance
// sections under a lulu_reaction_voice root, see [ReactionFile]) and the
// voice-sets manifest (defaults/sets/lines with per-line overrides, see
// [SetsFile]). Both are decoded strictly — unknown keys are rejected — and
// validated immediately after parsing so malformed input fails early with an
// error naming the offending section and entry.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Utterance is a single (id, text) pair to be synthesized into one clip.
type Utterance struct {
	// ID names the clip; it becomes the output filename stem and must be
	// unique within its section.
	ID string

	// Text is the utterance to synthesize. May be empty — the runner skips
	// empty text with a warning rather than failing the whole manifest.
	Text string
}

// UnmarshalYAML decodes an utterance entry, requiring it to be a mapping that
// carries both the id and text keys. The values may be empty; key absence is
// a manifest defect and fails with the entry's source line.
func (u *Utterance) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: utterance must be a mapping with id and text", node.Line)
	}
	var raw struct {
		ID   *string `yaml:"id"`
		Text *string `yaml:"text"`
	}
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if raw.ID == nil {
		return fmt.Errorf("line %d: utterance is missing id", node.Line)
	}
	if raw.Text == nil {
		return fmt.Errorf("line %d: utterance is missing text", node.Line)
	}
	u.ID = *raw.ID
	u.Text = *raw.Text
	return nil
}

// ReactionFile is the top-level structure of a reaction manifest.
//
// Example:
//
//	lulu_reaction_voice:
//	  version: "1.2"
//	  locale: en-US
//	  prefixes:
//	    - id: oh_wow
//	      text: "Oh wow!"
type ReactionFile struct {
	Root ReactionManifest `yaml:"lulu_reaction_voice"`
}

// ReactionManifest holds the utterance sections of a reaction manifest.
// Sections a given manifest does not use are simply left empty.
type ReactionManifest struct {
	// Version is the manifest revision, informational only.
	Version string `yaml:"version"`

	// Locale is the manifest's spoken locale (e.g., "en-US"), informational only.
	Locale string `yaml:"locale"`

	Prefixes       []Utterance `yaml:"prefixes"`
	Suffixes       []Utterance `yaml:"suffixes"`
	Variables      Variables   `yaml:"variables"`
	MicroReactions []Utterance `yaml:"micro_reactions"`
	Completion     Completion  `yaml:"completion"`

	// Utterances holds the color-reaction sections used by the colors manifest.
	Utterances ColorUtterances `yaml:"utterances"`
}

// Variables holds the substitutable word lists of a content-sets manifest.
type Variables struct {
	Colors []Utterance `yaml:"colors"`
	Tools  []Utterance `yaml:"tools"`
}

// Completion holds the drawing-completion reaction sections.
type Completion struct {
	NotEnough []Utterance `yaml:"not_enough"`
	Enough    []Utterance `yaml:"enough"`
}

// ColorUtterances holds the long and short color reaction lines.
type ColorUtterances struct {
	LongByColor  []Utterance `yaml:"long_by_color"`
	ShortByColor []Utterance `yaml:"short_by_color"`
}

// Group is one named utterance section resolved to its output subdirectory.
type Group struct {
	// Key is the group's manifest name, used by the -only filter.
	Key string

	// Subdir is the output subdirectory, relative to the output root.
	// May contain a slash (e.g., "completion/not_enough").
	Subdir string

	// Items are the group's utterances, in manifest order.
	Items []Utterance
}

// Groups returns the content-set sections in generation order, mapped to
// their output subdirectories. Empty sections are included with no items so
// -only filters can still name them.
func (m *ReactionManifest) Groups() []Group {
	return []Group{
		{Key: "prefixes", Subdir: "prefix", Items: m.Prefixes},
		{Key: "suffixes", Subdir: "suffix", Items: m.Suffixes},
		{Key: "colors", Subdir: "color", Items: m.Variables.Colors},
		{Key: "tools", Subdir: "tool", Items: m.Variables.Tools},
		{Key: "micro", Subdir: "micro", Items: m.MicroReactions},
		{Key: "completion_not_enough", Subdir: "completion/not_enough", Items: m.Completion.NotEnough},
		{Key: "completion_enough", Subdir: "completion/enough", Items: m.Completion.Enough},
	}
}

// LoadReactions reads and parses a reaction manifest from disk.
// The returned error wraps os.ErrNotExist when the file is missing, so
// callers can map that case to its own exit code.
func LoadReactions(path string) (*ReactionFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %q: %w", path, err)
	}
	defer f.Close()

	rf, err := LoadReactionsFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("manifest: parse %q: %w", path, err)
	}
	return rf, nil
}

// LoadReactionsFromReader parses and validates a reaction manifest from r.
// Useful in tests where manifests are constructed from string literals.
func LoadReactionsFromReader(r io.Reader) (*ReactionFile, error) {
	var rf ReactionFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true) // reject unknown keys to catch typos
	if err := dec.Decode(&rf); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := rf.Validate(); err != nil {
		return nil, err
	}
	return &rf, nil
}

// Validate checks every utterance section for missing ids and for duplicate
// ids within a section (which would collide on the filesystem).
// It returns a joined error listing all failures found.
func (rf *ReactionFile) Validate() error {
	var errs []error
	sections := []struct {
		name  string
		items []Utterance
	}{
		{"prefixes", rf.Root.Prefixes},
		{"suffixes", rf.Root.Suffixes},
		{"variables.colors", rf.Root.Variables.Colors},
		{"variables.tools", rf.Root.Variables.Tools},
		{"micro_reactions", rf.Root.MicroReactions},
		{"completion.not_enough", rf.Root.Completion.NotEnough},
		{"completion.enough", rf.Root.Completion.Enough},
		{"utterances.long_by_color", rf.Root.Utterances.LongByColor},
		{"utterances.short_by_color", rf.Root.Utterances.ShortByColor},
	}
	for _, sec := range sections {
		errs = append(errs, validateSection(sec.name, sec.items)...)
	}
	return errors.Join(errs...)
}

func validateSection(name string, items []Utterance) []error {
	var errs []error
	seen := make(map[string]int, len(items))
	for i, u := range items {
		prefix := fmt.Sprintf("%s[%d]", name, i)
		if u.ID == "" {
			errs = append(errs, fmt.Errorf("%s: id is required", prefix))
			continue
		}
		if prev, ok := seen[u.ID]; ok {
			errs = append(errs, fmt.Errorf("%s: id %q is a duplicate of %s[%d]", prefix, u.ID, name, prev))
		}
		seen[u.ID] = i
	}
	return errs
}
