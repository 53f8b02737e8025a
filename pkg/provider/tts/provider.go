// Package tts defines the Synthesizer interface for Text-to-Speech backends.
//
// A TTS provider wraps a speech synthesis service (e.g., Typecast) and
// presents a uniform batch interface: one Synthesize call per utterance,
// returning the complete encoded audio clip. This matches how batch asset
// generation works — each clip is written to disk as a whole file.
package tts

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by optional operations that the provider (or the
// API version it targets) does not implement. Callers should branch on it with
// errors.Is rather than inspecting error text.
var ErrUnsupported = errors.New("tts: operation not supported by this provider")

// Synthesizer is the abstraction over any batch TTS backend.
//
// Implementations must be safe for concurrent use, although the batch runners
// in this repository call Synthesize strictly sequentially.
type Synthesizer interface {
	// Synthesize converts req.Text into a single encoded audio clip using the
	// voice, model, and output parameters carried by req.
	//
	// Returns the clip bytes (and the clip duration when the backend reports
	// one), or an error if the request is invalid or the backend call fails.
	// Implementations must not return a nil Result together with a nil error.
	Synthesize(ctx context.Context, req Request) (*Result, error)
}

// VoiceLister is an optional capability for providers whose API exposes voice
// discovery. Callers check for it with a type assertion:
//
//	if vl, ok := synth.(tts.VoiceLister); ok { ... }
//
// A provider may implement the interface and still return [ErrUnsupported]
// when the configured API version does not expose the endpoint.
type VoiceLister interface {
	// ListVoices returns the provider's current voice catalogue. A non-empty
	// model restricts the listing to voices available for that model.
	ListVoices(ctx context.Context, model string) ([]Voice, error)
}
