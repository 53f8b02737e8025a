package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/luluco/voicegen/pkg/provider/tts"
)

// SetsFile is the top-level structure of a voice-sets manifest.
//
// Example:
//
//	defaults:
//	  model: ssfm-v21
//	  voice_id: tc_62fb679683a541c351dc7c3a
//	sets:
//	  - name: greetings
//	    lines:
//	      - key: hello
//	        text: "Hello there!"
type SetsFile struct {
	// Defaults apply to every line unless overridden per set or per line.
	Defaults LineDefaults `yaml:"defaults"`

	// Sets are the named groups of lines.
	Sets []Set `yaml:"sets"`
}

// Set is one named group of lines with optional group-level defaults.
type Set struct {
	Name     string       `yaml:"name"`
	Defaults LineDefaults `yaml:"defaults"`
	Lines    []Line       `yaml:"lines"`
}

// LineDefaults carries the inheritable synthesis parameters. A zero field
// means "inherit from the next level up".
type LineDefaults struct {
	Model        string           `yaml:"model"`
	VoiceID      string           `yaml:"voice_id"`
	Language     string           `yaml:"language"`
	OutputFormat string           `yaml:"output_format"`
	Prompt       *PromptOverrides `yaml:"prompt"`
	Output       *OutputOverrides `yaml:"output"`
}

// Line is one utterance in a set. Its parameter fields override the set and
// global defaults.
type Line struct {
	// Key names the line within its set; together with the set name it forms
	// the derived filename stem.
	Key string `yaml:"key"`

	// Text is the utterance to synthesize.
	Text string `yaml:"text"`

	// Filename, when set, is used verbatim instead of the derived name.
	Filename string `yaml:"filename"`

	LineDefaults `yaml:",inline"`
}

// PromptOverrides are the emotion controls. Nil fields inherit.
type PromptOverrides struct {
	EmotionPreset    *string  `yaml:"emotion_preset"`
	EmotionIntensity *float64 `yaml:"emotion_intensity"`
}

// OutputOverrides are the audio output controls. Nil fields inherit.
type OutputOverrides struct {
	Volume *int     `yaml:"volume"`
	Pitch  *int     `yaml:"pitch"`
	Tempo  *float64 `yaml:"tempo"`
}

// ResolvedLine is a line with every parameter resolved through the
// line > set > global precedence chain and its output filename fixed.
type ResolvedLine struct {
	Set          string
	Key          string
	Text         string
	Filename     string
	Model        string
	VoiceID      string
	Language     string
	OutputFormat string
	Prompt       *PromptOverrides
	Output       *OutputOverrides
}

// LoadSets reads and parses a voice-sets manifest from disk.
// The returned error wraps os.ErrNotExist when the file is missing.
func LoadSets(path string) (*SetsFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %q: %w", path, err)
	}
	defer f.Close()

	sf, err := LoadSetsFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("manifest: parse %q: %w", path, err)
	}
	return sf, nil
}

// LoadSetsFromReader parses a voice-sets manifest from r. Resolution (and the
// validation that depends on it) happens in [SetsFile.Resolve].
func LoadSetsFromReader(r io.Reader) (*SetsFile, error) {
	var sf SetsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &sf, nil
}

// Resolve flattens the manifest into one resolved line per utterance,
// applying the line > set > global precedence rule and deriving filenames.
// It returns a joined error listing every incomplete line found.
func (sf *SetsFile) Resolve() ([]ResolvedLine, error) {
	var (
		lines []ResolvedLine
		errs  []error
	)
	for si, s := range sf.Sets {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("manifest: sets[%d]: name is required", si))
			continue
		}
		setDefaults := mergeDefaults(sf.Defaults, s.Defaults)
		for li, ln := range s.Lines {
			if ln.Key == "" || ln.Text == "" {
				errs = append(errs, fmt.Errorf("manifest: set %q lines[%d]: key and text are required", s.Name, li))
				continue
			}
			eff := mergeDefaults(setDefaults, ln.LineDefaults)
			if eff.Language == "" {
				eff.Language = "en"
			}
			if eff.OutputFormat == "" {
				eff.OutputFormat = "mp3"
			}
			if eff.Model == "" || eff.VoiceID == "" {
				errs = append(errs, fmt.Errorf(
					"manifest: set %q line %q: model and voice_id must be provided in defaults or per-line", s.Name, ln.Key))
				continue
			}

			filename := ln.Filename
			if filename == "" {
				filename = DeriveFilename(s.Name, ln.Key, ln.Text, eff.OutputFormat)
			}

			lines = append(lines, ResolvedLine{
				Set:          s.Name,
				Key:          ln.Key,
				Text:         ln.Text,
				Filename:     filename,
				Model:        eff.Model,
				VoiceID:      eff.VoiceID,
				Language:     eff.Language,
				OutputFormat: eff.OutputFormat,
				Prompt:       eff.Prompt,
				Output:       eff.Output,
			})
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return lines, nil
}

// mergeDefaults overlays over onto base: scalar fields in over win when
// non-zero, prompt and output maps merge key-wise.
func mergeDefaults(base, over LineDefaults) LineDefaults {
	out := base
	if over.Model != "" {
		out.Model = over.Model
	}
	if over.VoiceID != "" {
		out.VoiceID = over.VoiceID
	}
	if over.Language != "" {
		out.Language = over.Language
	}
	if over.OutputFormat != "" {
		out.OutputFormat = over.OutputFormat
	}
	out.Prompt = mergePrompt(base.Prompt, over.Prompt)
	out.Output = mergeOutput(base.Output, over.Output)
	return out
}

func mergePrompt(base, over *PromptOverrides) *PromptOverrides {
	if base == nil {
		return over
	}
	if over == nil {
		return base
	}
	merged := *base
	if over.EmotionPreset != nil {
		merged.EmotionPreset = over.EmotionPreset
	}
	if over.EmotionIntensity != nil {
		merged.EmotionIntensity = over.EmotionIntensity
	}
	return &merged
}

func mergeOutput(base, over *OutputOverrides) *OutputOverrides {
	if base == nil {
		return over
	}
	if over == nil {
		return base
	}
	merged := *base
	if over.Volume != nil {
		merged.Volume = over.Volume
	}
	if over.Pitch != nil {
		merged.Pitch = over.Pitch
	}
	if over.Tempo != nil {
		merged.Tempo = over.Tempo
	}
	return &merged
}

// Request builds the provider request for the resolved line.
func (l ResolvedLine) Request() tts.Request {
	req := tts.Request{
		Text:     l.Text,
		Model:    l.Model,
		VoiceID:  l.VoiceID,
		Language: l.Language,
		Output:   tts.Output{Format: l.OutputFormat},
	}
	if p := l.Prompt; p != nil && (p.EmotionPreset != nil || p.EmotionIntensity != nil) {
		prompt := &tts.Prompt{EmotionIntensity: 1.0}
		if p.EmotionPreset != nil {
			prompt.EmotionPreset = *p.EmotionPreset
		}
		if p.EmotionIntensity != nil {
			prompt.EmotionIntensity = *p.EmotionIntensity
		}
		req.Prompt = prompt
	}
	if o := l.Output; o != nil {
		if o.Volume != nil {
			req.Output.Volume = *o.Volume
		}
		if o.Pitch != nil {
			req.Output.Pitch = *o.Pitch
		}
		if o.Tempo != nil {
			req.Output.Tempo = *o.Tempo
		}
	}
	return req
}
