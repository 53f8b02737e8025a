// Package config holds the default synthesis parameters for asset generation.
//
// The defaults are an explicitly constructed, immutable value threaded through
// calls — there is no package-level mutable state. Each command builds its
// value once per run via [Default] and passes it down.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luluco/voicegen/pkg/provider/tts"
)

// Synthesis is the default parameter set for one generation run.
// Treat values as read-only after construction.
type Synthesis struct {
	// Model is the Typecast synthesis model.
	Model string

	// VoiceID is the Typecast voice identifier.
	VoiceID string

	// Language is the utterance language (ISO 639-3 or BCP-47-ish; the
	// provider maps it). Empty lets the vendor auto-detect, but batch runs
	// should pin it for determinism.
	Language string

	// EmotionPreset is the emotion preset (normal, happy, sad, angry —
	// voice-dependent).
	EmotionPreset string

	// EmotionIntensity scales the preset, 0.0–2.0.
	EmotionIntensity float64

	// Volume in percent, 0–200.
	Volume int

	// Pitch shift in semitones, -12 to +12.
	Pitch int

	// Tempo factor, 0.5–2.0.
	Tempo float64

	// Format is the audio container: "wav" or "mp3".
	Format string

	// Seed pins vendor-side sampling for reproducible clips. Nil disables.
	Seed *int64
}

// Default returns the standard synthesis parameters for LuLuco voice assets.
func Default() Synthesis {
	seed := int64(42)
	return Synthesis{
		Model:            "ssfm-v21",
		VoiceID:          "tc_62fb679683a541c351dc7c3a", // Ella
		Language:         "eng",
		EmotionPreset:    "normal",
		EmotionIntensity: 1.0,
		Volume:           100,
		Pitch:            0,
		Tempo:            1.0,
		Format:           "mp3",
		Seed:             &seed,
	}
}

// Validate checks that s is within the ranges the Typecast API documents.
// It returns a joined error listing all violations found.
func (s Synthesis) Validate() error {
	var errs []error
	if s.Model == "" {
		errs = append(errs, errors.New("config: model must not be empty"))
	}
	if s.VoiceID == "" {
		errs = append(errs, errors.New("config: voice_id must not be empty"))
	}
	if s.EmotionIntensity < 0 || s.EmotionIntensity > 2.0 {
		errs = append(errs, fmt.Errorf("config: emotion_intensity %.2f is out of range [0.0, 2.0]", s.EmotionIntensity))
	}
	if s.Volume < 0 || s.Volume > 200 {
		errs = append(errs, fmt.Errorf("config: volume %d is out of range [0, 200]", s.Volume))
	}
	if s.Pitch < -12 || s.Pitch > 12 {
		errs = append(errs, fmt.Errorf("config: pitch %d is out of range [-12, 12]", s.Pitch))
	}
	if s.Tempo < 0.5 || s.Tempo > 2.0 {
		errs = append(errs, fmt.Errorf("config: tempo %.2f is out of range [0.5, 2.0]", s.Tempo))
	}
	switch strings.ToLower(s.Format) {
	case "wav", "mp3":
	default:
		errs = append(errs, fmt.Errorf("config: audio format %q is invalid; valid values: wav, mp3", s.Format))
	}
	return errors.Join(errs...)
}

// Extension returns the output filename extension for the configured audio
// format, including the leading dot (".mp3").
func (s Synthesis) Extension() string {
	return "." + strings.Trim(strings.ToLower(s.Format), ".")
}

// Request builds the provider request for one utterance from the defaults.
func (s Synthesis) Request(text string) tts.Request {
	return tts.Request{
		Text:     text,
		Model:    s.Model,
		VoiceID:  s.VoiceID,
		Language: s.Language,
		Prompt: &tts.Prompt{
			EmotionPreset:    s.EmotionPreset,
			EmotionIntensity: s.EmotionIntensity,
		},
		Output: tts.Output{
			Volume: s.Volume,
			Pitch:  s.Pitch,
			Tempo:  s.Tempo,
			Format: s.Format,
		},
		Seed: s.Seed,
	}
}
