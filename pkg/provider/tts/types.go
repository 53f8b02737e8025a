package tts

// Request carries one utterance and the full parameter set for a single
// synthesis call. Zero-valued optional fields are omitted from the wire
// request by the provider.
type Request struct {
	// Text is the utterance to synthesize. Must be non-empty.
	Text string

	// Model is the provider-specific synthesis model (e.g., "ssfm-v21").
	Model string

	// VoiceID is the provider-specific voice identifier.
	VoiceID string

	// Language is the utterance language. Providers document which code
	// family they expect; the Typecast client accepts BCP-47-ish codes and
	// maps them to ISO 639-3.
	Language string

	// Prompt holds emotion controls. Nil means provider defaults.
	Prompt *Prompt

	// Output holds audio output controls (format, volume, pitch, tempo).
	Output Output

	// Seed pins the provider's sampling for reproducible output. Nil means
	// the provider chooses.
	Seed *int64
}

// Prompt holds the emotion controls of a synthesis request.
type Prompt struct {
	// EmotionPreset selects a voice-dependent preset (normal, happy, sad, angry).
	EmotionPreset string

	// EmotionIntensity scales the preset, 0.0–2.0.
	EmotionIntensity float64
}

// Output holds the audio output controls of a synthesis request.
type Output struct {
	// Volume in percent, 0–200. 0 means provider default.
	Volume int

	// Pitch shift in semitones, -12 to +12.
	Pitch int

	// Tempo factor, 0.5–2.0. 0 means provider default.
	Tempo float64

	// Format is the audio container: "wav" or "mp3".
	Format string
}

// Result is the outcome of a successful synthesis call.
type Result struct {
	// Audio is the complete encoded clip.
	Audio []byte

	// Duration is the clip length in seconds, 0 when the backend does not
	// report one.
	Duration float64
}

// Voice describes one entry of a provider's voice catalogue.
type Voice struct {
	// ID is the provider-specific voice identifier.
	ID string

	// Name is the human-readable voice name.
	Name string

	// Model is the synthesis model the voice is available for.
	Model string

	// Language is the voice's primary language, if the provider reports one.
	Language string
}
