// Package typecast provides a Typecast-backed TTS provider using the Typecast
// REST API. It implements the tts.Synthesizer and tts.VoiceLister interfaces.
//
// Synthesis is performed via POST /v1/text-to-speech with a JSON body and the
// X-API-KEY header; the response body is the raw encoded clip. The voice
// catalogue is retrieved from GET /v1/voices.
//
// Typical usage:
//
//	c, err := typecast.NewFromEnv(typecast.WithTimeout(30 * time.Second))
//	if err != nil { ... }
//	res, err := c.Synthesize(ctx, req)
package typecast

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/luluco/voicegen/pkg/provider/tts"
)

// Compile-time interface assertions.
var (
	_ tts.Synthesizer = (*Client)(nil)
	_ tts.VoiceLister = (*Client)(nil)
)

const (
	// EnvAPIKey is the environment variable NewFromEnv reads the API key from.
	EnvAPIKey = "TYPECAST_API_KEY"

	defaultBaseURL = "https://api.typecast.ai"
	ttsEndpoint    = "/v1/text-to-speech"
	voicesEndpoint = "/v1/voices"
	apiKeyHeader   = "X-API-KEY"

	defaultTimeout = 60 * time.Second
)

// ---- options ----

// Option is a functional option for configuring a Typecast Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Useful for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request HTTP timeout. Defaults to 60 s; synthesis
// of long utterances can take a while on the vendor side.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// ---- Client ----

// Client implements tts.Synthesizer backed by the Typecast REST API.
// It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a Typecast Client. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("typecast: apiKey must not be empty")
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// NewFromEnv creates a Client with the API key from the TYPECAST_API_KEY
// environment variable, failing with an actionable message when it is unset.
func NewFromEnv(opts ...Option) (*Client, error) {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, fmt.Errorf(
			"typecast: missing required environment variable %s; set it like: export %s='...'",
			EnvAPIKey, EnvAPIKey)
	}
	return New(key, opts...)
}

// ---- wire types ----

// payload mirrors the POST /v1/text-to-speech request schema.
type payload struct {
	VoiceID  string         `json:"voice_id"`
	Text     string         `json:"text"`
	Model    string         `json:"model"`
	Prompt   *promptPayload `json:"prompt,omitempty"`
	Output   *outputPayload `json:"output,omitempty"`
	Language string         `json:"language,omitempty"`
	Seed     *int64         `json:"seed,omitempty"`
}

type promptPayload struct {
	EmotionPreset    string  `json:"emotion_preset"`
	EmotionIntensity float64 `json:"emotion_intensity"`
}

type outputPayload struct {
	Volume      int     `json:"volume,omitempty"`
	AudioPitch  int     `json:"audio_pitch"`
	AudioTempo  float64 `json:"audio_tempo,omitempty"`
	AudioFormat string  `json:"audio_format"`
}

// apiError is the JSON error envelope returned on non-2xx responses.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// BuildPayload converts req into the JSON body of a POST /v1/text-to-speech
// call. It is a pure function, exposed so the wire shape stays usable should
// a caller ever bypass the Client for direct protocol calls.
func BuildPayload(req tts.Request) ([]byte, error) {
	if req.Text == "" {
		return nil, errors.New("typecast: request text must not be empty")
	}
	if req.VoiceID == "" {
		return nil, errors.New("typecast: request voice_id must not be empty")
	}
	if req.Model == "" {
		return nil, errors.New("typecast: request model must not be empty")
	}

	p := payload{
		VoiceID: req.VoiceID,
		Text:    req.Text,
		Model:   req.Model,
		Seed:    req.Seed,
	}
	if req.Prompt != nil {
		p.Prompt = &promptPayload{
			EmotionPreset:    req.Prompt.EmotionPreset,
			EmotionIntensity: req.Prompt.EmotionIntensity,
		}
	}
	if req.Output != (tts.Output{}) {
		format := req.Output.Format
		if format == "" {
			format = "mp3"
		}
		p.Output = &outputPayload{
			Volume:      req.Output.Volume,
			AudioPitch:  req.Output.Pitch,
			AudioTempo:  req.Output.Tempo,
			AudioFormat: format,
		}
	}
	if req.Language != "" {
		code, err := LanguageCode(req.Language)
		if err != nil {
			return nil, err
		}
		p.Language = code
	}
	return json.Marshal(p)
}

// Synthesize performs one POST /v1/text-to-speech call and returns the raw
// clip bytes. The clip duration, when the API reports one via the
// X-Audio-Duration header, is included in the result.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) (*tts.Result, error) {
	body, err := BuildPayload(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ttsEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("typecast: synthesize: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("typecast: synthesize HTTP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("synthesize", resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("typecast: synthesize read body: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("typecast: synthesize: empty audio response")
	}

	res := &tts.Result{Audio: audio}
	if d := resp.Header.Get("X-Audio-Duration"); d != "" {
		// Best effort; an unparsable header leaves Duration at 0.
		if v, parseErr := strconv.ParseFloat(d, 64); parseErr == nil {
			res.Duration = v
		}
	}
	return res, nil
}

// typecastVoice is a single voice entry from GET /v1/voices.
type typecastVoice struct {
	VoiceID  string `json:"voice_id"`
	Name     string `json:"voice_name"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

// ListVoices returns all voices available for the configured API key.
// A non-empty model is passed through as the ?model= query filter.
func (c *Client) ListVoices(ctx context.Context, model string) ([]tts.Voice, error) {
	u := c.baseURL + voicesEndpoint
	if model != "" {
		u += "?model=" + url.QueryEscape(model)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("typecast: list voices: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("typecast: list voices HTTP: %w", err)
	}
	defer resp.Body.Close()

	// Older API versions do not expose the voices endpoint at all.
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("typecast: list voices: %w", tts.ErrUnsupported)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("list voices", resp)
	}

	var raw []typecastVoice
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("typecast: list voices decode: %w", err)
	}

	voices := make([]tts.Voice, 0, len(raw))
	for _, v := range raw {
		voices = append(voices, tts.Voice{
			ID:       v.VoiceID,
			Name:     v.Name,
			Model:    v.Model,
			Language: v.Language,
		})
	}
	return voices, nil
}

// statusError turns a non-2xx response into an error carrying the API's own
// message when the body holds the JSON error envelope.
func (c *Client) statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var ae apiError
	if err := json.Unmarshal(body, &ae); err == nil {
		if msg := ae.Message; msg != "" {
			return fmt.Errorf("typecast: %s: status %d: %s", op, resp.StatusCode, msg)
		}
		if ae.Error != "" {
			return fmt.Errorf("typecast: %s: status %d: %s", op, resp.StatusCode, ae.Error)
		}
	}
	return fmt.Errorf("typecast: %s: unexpected status %d", op, resp.StatusCode)
}
