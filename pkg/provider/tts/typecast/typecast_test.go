package typecast

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luluco/voicegen/pkg/provider/tts"
)

// mustNew is a test helper that calls New and fails the test on error.
func mustNew(t *testing.T, apiKey string, opts ...Option) *Client {
	t.Helper()
	c, err := New(apiKey, opts...)
	if err != nil {
		t.Fatalf("New(%q): unexpected error: %v", apiKey, err)
	}
	return c
}

func testRequest(text string) tts.Request {
	return tts.Request{
		Text:    text,
		Model:   "ssfm-v21",
		VoiceID: "tc_62fb679683a541c351dc7c3a",
	}
}

// ---- construction ----

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := mustNew(t, "key")
		if c.baseURL != defaultBaseURL {
			t.Errorf("baseURL = %q, want %q", c.baseURL, defaultBaseURL)
		}
		if c.httpClient.Timeout != defaultTimeout {
			t.Errorf("timeout = %v, want %v", c.httpClient.Timeout, defaultTimeout)
		}
	})

	t.Run("empty api key", func(t *testing.T) {
		if _, err := New(""); err == nil {
			t.Fatal("expected error for empty API key, got nil")
		}
	})

	t.Run("base url trailing slash trimmed", func(t *testing.T) {
		c := mustNew(t, "key", WithBaseURL("http://localhost:9090/"))
		if c.baseURL != "http://localhost:9090" {
			t.Errorf("baseURL = %q, want trailing slash stripped", c.baseURL)
		}
	})
}

func TestNewFromEnv(t *testing.T) {
	t.Run("missing variable", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("expected error when TYPECAST_API_KEY is unset, got nil")
		}
		if !strings.Contains(err.Error(), EnvAPIKey) {
			t.Errorf("error should name the variable, got: %v", err)
		}
	})

	t.Run("variable set", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "secret")
		c, err := NewFromEnv()
		if err != nil {
			t.Fatalf("NewFromEnv: %v", err)
		}
		if c.apiKey != "secret" {
			t.Errorf("apiKey = %q, want %q", c.apiKey, "secret")
		}
	})
}

// ---- payload shape ----

func TestBuildPayload(t *testing.T) {
	t.Run("full request", func(t *testing.T) {
		seed := int64(42)
		req := tts.Request{
			Text:     "Hello there",
			Model:    "ssfm-v21",
			VoiceID:  "tc_123",
			Language: "en",
			Prompt:   &tts.Prompt{EmotionPreset: "happy", EmotionIntensity: 1.5},
			Output:   tts.Output{Volume: 100, Pitch: -2, Tempo: 1.25, Format: "wav"},
			Seed:     &seed,
		}
		data, err := BuildPayload(req)
		if err != nil {
			t.Fatalf("BuildPayload: %v", err)
		}

		var got map[string]any
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if got["voice_id"] != "tc_123" || got["text"] != "Hello there" || got["model"] != "ssfm-v21" {
			t.Errorf("top-level fields wrong: %v", got)
		}
		if got["language"] != "eng" {
			t.Errorf("language = %v, want mapped to eng", got["language"])
		}
		if got["seed"] != float64(42) {
			t.Errorf("seed = %v, want 42", got["seed"])
		}
		prompt, ok := got["prompt"].(map[string]any)
		if !ok {
			t.Fatalf("prompt missing or wrong type: %v", got["prompt"])
		}
		if prompt["emotion_preset"] != "happy" || prompt["emotion_intensity"] != 1.5 {
			t.Errorf("prompt = %v", prompt)
		}
		output, ok := got["output"].(map[string]any)
		if !ok {
			t.Fatalf("output missing or wrong type: %v", got["output"])
		}
		if output["audio_format"] != "wav" || output["volume"] != float64(100) ||
			output["audio_pitch"] != float64(-2) || output["audio_tempo"] != 1.25 {
			t.Errorf("output = %v", output)
		}
	})

	t.Run("language and seed omitted when unset", func(t *testing.T) {
		data, err := BuildPayload(testRequest("hi"))
		if err != nil {
			t.Fatalf("BuildPayload: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if _, present := got["language"]; present {
			t.Error("language should be omitted when unset")
		}
		if _, present := got["seed"]; present {
			t.Error("seed should be omitted when unset")
		}
		if _, present := got["prompt"]; present {
			t.Error("prompt should be omitted when nil")
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		cases := []struct {
			name string
			req  tts.Request
		}{
			{"empty text", tts.Request{Model: "m", VoiceID: "v"}},
			{"empty voice", tts.Request{Text: "t", Model: "m"}},
			{"empty model", tts.Request{Text: "t", VoiceID: "v"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, err := BuildPayload(tc.req); err == nil {
					t.Errorf("expected error for %s, got nil", tc.name)
				}
			})
		}
	})

	t.Run("unknown language rejected", func(t *testing.T) {
		req := testRequest("hi")
		req.Language = "xx-klingon"
		if _, err := BuildPayload(req); err == nil {
			t.Fatal("expected error for unknown language code, got nil")
		}
	})
}

// ---- Synthesize ----

func TestSynthesize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		clip := []byte("fake-mp3-bytes")
		var gotPath, gotKey, gotContentType string
		var gotBody []byte

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get(apiKeyHeader)
			gotContentType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("X-Audio-Duration", "1.75")
			w.Write(clip)
		}))
		defer srv.Close()

		c := mustNew(t, "key", WithBaseURL(srv.URL))
		res, err := c.Synthesize(context.Background(), testRequest("Blue! Nice."))
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		if string(res.Audio) != string(clip) {
			t.Errorf("audio = %q, want %q", res.Audio, clip)
		}
		if res.Duration != 1.75 {
			t.Errorf("duration = %v, want 1.75", res.Duration)
		}
		if gotPath != ttsEndpoint {
			t.Errorf("path = %q, want %q", gotPath, ttsEndpoint)
		}
		if gotKey != "key" {
			t.Errorf("%s header = %q, want %q", apiKeyHeader, gotKey, "key")
		}
		if gotContentType != "application/json" {
			t.Errorf("content type = %q", gotContentType)
		}
		var body map[string]any
		if err := json.Unmarshal(gotBody, &body); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}
		if body["text"] != "Blue! Nice." {
			t.Errorf("body text = %v", body["text"])
		}
	})

	t.Run("api error with message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(map[string]string{"message": "insufficient credits"})
		}))
		defer srv.Close()

		c := mustNew(t, "key", WithBaseURL(srv.URL))
		_, err := c.Synthesize(context.Background(), testRequest("hi"))
		if err == nil {
			t.Fatal("expected error for 402 response, got nil")
		}
		if !strings.Contains(err.Error(), "insufficient credits") {
			t.Errorf("error should carry the API message, got: %v", err)
		}
		if !strings.Contains(err.Error(), "402") {
			t.Errorf("error should carry the status code, got: %v", err)
		}
	})

	t.Run("empty audio response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := mustNew(t, "key", WithBaseURL(srv.URL))
		if _, err := c.Synthesize(context.Background(), testRequest("hi")); err == nil {
			t.Fatal("expected error for empty audio body, got nil")
		}
	})
}

// ---- ListVoices ----

func TestListVoices(t *testing.T) {
	t.Run("success with model filter", func(t *testing.T) {
		var gotModel string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != voicesEndpoint {
				t.Errorf("path = %q, want %q", r.URL.Path, voicesEndpoint)
			}
			gotModel = r.URL.Query().Get("model")
			json.NewEncoder(w).Encode([]map[string]string{
				{"voice_id": "tc_1", "voice_name": "Ella", "model": "ssfm-v21", "language": "eng"},
				{"voice_id": "tc_2", "voice_name": "Leo", "model": "ssfm-v21"},
			})
		}))
		defer srv.Close()

		c := mustNew(t, "key", WithBaseURL(srv.URL))
		voices, err := c.ListVoices(context.Background(), "ssfm-v21")
		if err != nil {
			t.Fatalf("ListVoices: %v", err)
		}
		if gotModel != "ssfm-v21" {
			t.Errorf("model filter = %q, want ssfm-v21", gotModel)
		}
		if len(voices) != 2 {
			t.Fatalf("got %d voices, want 2", len(voices))
		}
		if voices[0].ID != "tc_1" || voices[0].Name != "Ella" || voices[0].Language != "eng" {
			t.Errorf("voices[0] = %+v", voices[0])
		}
	})

	t.Run("endpoint absent maps to ErrUnsupported", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		c := mustNew(t, "key", WithBaseURL(srv.URL))
		_, err := c.ListVoices(context.Background(), "")
		if !errors.Is(err, tts.ErrUnsupported) {
			t.Fatalf("err = %v, want tts.ErrUnsupported", err)
		}
	})
}

// ---- language mapping ----

func TestLanguageCode(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"en", "eng", false},
		{"en-US", "eng", false},
		{"EN-GB", "eng", false},
		{"ko", "kor", false},
		{"ja-jp", "jpn", false},
		{"zh-CN", "zho", false},
		{"eng", "eng", false},
		{" deu ", "deu", false},
		{"tlh", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := LanguageCode(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("LanguageCode(%q): expected error, got %q", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LanguageCode(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("LanguageCode(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
