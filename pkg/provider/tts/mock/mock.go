// Package mock provides a test double for the tts.Synthesizer interface.
//
// Use Synthesizer to feed controlled audio bytes to consumers and to verify
// which requests reach the backend.
//
//	m := &mock.Synthesizer{Audio: []byte("clip")}
//	res, _ := m.Synthesize(ctx, req)
package mock

import (
	"context"
	"sync"

	"github.com/luluco/voicegen/pkg/provider/tts"
)

// Compile-time interface assertions.
var (
	_ tts.Synthesizer = (*Synthesizer)(nil)
	_ tts.VoiceLister = (*Synthesizer)(nil)
)

// Synthesizer is a mock implementation of tts.Synthesizer and tts.VoiceLister.
type Synthesizer struct {
	mu sync.Mutex

	// --- Configurable responses ---

	// Audio is the clip returned by every successful Synthesize call.
	Audio []byte

	// Duration is the clip duration reported by Synthesize.
	Duration float64

	// SynthesizeErr, if non-nil, is returned from Synthesize instead of a result.
	SynthesizeErr error

	// SynthesizeErrFor makes Synthesize fail only for specific texts, letting
	// tests simulate one bad item in the middle of a run.
	SynthesizeErrFor map[string]error

	// Voices is returned by ListVoices.
	Voices []tts.Voice

	// ListVoicesErr, if non-nil, is returned from ListVoices. Set it to
	// tts.ErrUnsupported to simulate a provider without voice discovery.
	ListVoicesErr error

	// --- Call records ---

	// Requests records every request passed to Synthesize, in order.
	Requests []tts.Request

	// ListVoicesModels records the model filter of every ListVoices call.
	ListVoicesModels []string
}

// Synthesize records req and returns the configured audio or error.
func (m *Synthesizer) Synthesize(_ context.Context, req tts.Request) (*tts.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if err, ok := m.SynthesizeErrFor[req.Text]; ok {
		return nil, err
	}
	if m.SynthesizeErr != nil {
		return nil, m.SynthesizeErr
	}
	return &tts.Result{Audio: m.Audio, Duration: m.Duration}, nil
}

// ListVoices records the model filter and returns the configured catalogue.
func (m *Synthesizer) ListVoices(_ context.Context, model string) ([]tts.Voice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListVoicesModels = append(m.ListVoicesModels, model)
	if m.ListVoicesErr != nil {
		return nil, m.ListVoicesErr
	}
	return m.Voices, nil
}
