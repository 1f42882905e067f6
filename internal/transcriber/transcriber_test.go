package transcriber

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leonardotrapani/voxlate/internal/logging"
)

type fakeAdapter struct {
	text     string
	err      error
	calls    int
	filename string
	data     []byte
}

func (f *fakeAdapter) Transcribe(ctx context.Context, audioData []byte, filename string) (string, error) {
	f.calls++
	f.filename = filename
	f.data = audioData
	return f.text, f.err
}

// pcmTone returns 16-bit little-endian samples alternating between +amp and -amp
func pcmTone(samples int, amp int16) []byte {
	pcm := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		v := amp
		if i%2 == 1 {
			v = -amp
		}
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(v))
	}
	return pcm
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestTranscriber(adapter Adapter) *Transcriber {
	return NewWithAdapter(DefaultConfig(), adapter, logging.Discard())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"openai", Config{Provider: "openai", APIKey: "sk-test"}, false},
		{"groq", Config{Provider: "groq", APIKey: "gsk_test"}, false},
		{"elevenlabs", Config{Provider: "elevenlabs", APIKey: "key"}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"groq without key", Config{Provider: "groq"}, true},
		{"elevenlabs without key", Config{Provider: "elevenlabs"}, true},
		{"unsupported", Config{Provider: "deepgram", APIKey: "key"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.config, logging.Discard())
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.config.Model == "" {
				t.Error("default model should be filled in")
			}
			if tr.config.Timeout <= 0 {
				t.Error("default timeout should be filled in")
			}
		})
	}
}

func TestNew_ConvertsLanguageHint(t *testing.T) {
	tr, err := New(Config{Provider: "elevenlabs", APIKey: "key", Language: "fr"}, logging.Discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.config.Language != "fra" {
		t.Errorf("Language = %q, want fra", tr.config.Language)
	}
}

func TestResultMessage(t *testing.T) {
	tests := []struct {
		result Result
		want   string
		ok     bool
	}{
		{Result{Text: "hello"}, "hello", true},
		{Result{Failure: FailureUnintelligible}, MsgUnintelligible, false},
		{Result{Failure: FailureRequest}, MsgRequestFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.result.Failure.String(), func(t *testing.T) {
			if got := tt.result.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
			if got := tt.result.OK(); got != tt.ok {
				t.Errorf("OK() = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestTranscribe(t *testing.T) {
	speech, err := convertToWAV(pcmTone(1600, 8000))
	if err != nil {
		t.Fatalf("convertToWAV: %v", err)
	}
	silence, err := convertToWAV(make([]byte, 3200))
	if err != nil {
		t.Fatalf("convertToWAV: %v", err)
	}

	tests := []struct {
		name      string
		file      string
		data      []byte
		adapter   *fakeAdapter
		want      Result
		wantCalls int
	}{
		{
			name:      "recognized speech",
			file:      "clip.wav",
			data:      speech,
			adapter:   &fakeAdapter{text: "  hola mundo \n"},
			want:      Result{Text: "hola mundo"},
			wantCalls: 1,
		},
		{
			name:      "silent wav",
			file:      "clip.wav",
			data:      silence,
			adapter:   &fakeAdapter{text: "never"},
			want:      Result{Failure: FailureUnintelligible},
			wantCalls: 0,
		},
		{
			name:      "no speech from service",
			file:      "clip.wav",
			data:      speech,
			adapter:   &fakeAdapter{err: ErrNoSpeech},
			want:      Result{Failure: FailureUnintelligible},
			wantCalls: 1,
		},
		{
			name:      "empty text from service",
			file:      "clip.wav",
			data:      speech,
			adapter:   &fakeAdapter{text: "   "},
			want:      Result{Failure: FailureUnintelligible},
			wantCalls: 1,
		},
		{
			name:      "service unreachable",
			file:      "clip.wav",
			data:      speech,
			adapter:   &fakeAdapter{err: errors.New("dial tcp: connection refused")},
			want:      Result{Failure: FailureRequest},
			wantCalls: 1,
		},
		{
			name:      "service status error",
			file:      "clip.wav",
			data:      speech,
			adapter:   &fakeAdapter{err: &StatusError{StatusCode: 503, Body: "busy"}},
			want:      Result{Failure: FailureRequest},
			wantCalls: 1,
		},
		{
			name:      "unsupported format",
			file:      "clip.txt",
			data:      []byte("not audio"),
			adapter:   &fakeAdapter{text: "never"},
			want:      Result{Failure: FailureUnintelligible},
			wantCalls: 0,
		},
		{
			name:      "mp3 passes through",
			file:      "clip.mp3",
			data:      []byte("ID3 fake mp3 payload"),
			adapter:   &fakeAdapter{text: "bonjour"},
			want:      Result{Text: "bonjour"},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.data)
			got := newTestTranscriber(tt.adapter).Transcribe(context.Background(), path)
			if got != tt.want {
				t.Errorf("Transcribe() = %+v, want %+v", got, tt.want)
			}
			if tt.adapter.calls != tt.wantCalls {
				t.Errorf("adapter called %d times, want %d", tt.adapter.calls, tt.wantCalls)
			}
		})
	}
}

func TestTranscribe_MissingFile(t *testing.T) {
	adapter := &fakeAdapter{text: "never"}
	got := newTestTranscriber(adapter).Transcribe(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	if got.Failure != FailureUnintelligible {
		t.Errorf("Failure = %v, want %v", got.Failure, FailureUnintelligible)
	}
	if adapter.calls != 0 {
		t.Error("adapter should not be called for a missing file")
	}
}

func TestTranscribe_RawPCMWrappedAsWAV(t *testing.T) {
	adapter := &fakeAdapter{text: "hello"}
	path := writeFile(t, "capture.pcm", pcmTone(800, 5000))

	got := newTestTranscriber(adapter).Transcribe(context.Background(), path)
	if !got.OK() {
		t.Fatalf("expected success, got %+v", got)
	}
	if adapter.filename != "capture.wav" {
		t.Errorf("filename = %q, want capture.wav", adapter.filename)
	}
	if !strings.HasPrefix(string(adapter.data), "RIFF") {
		t.Error("raw PCM should be wrapped in a WAV header")
	}
}

func TestParseWAV(t *testing.T) {
	wav, _ := convertToWAV(pcmTone(10, 1000))
	info, err := parseWAV(wav)
	if err != nil {
		t.Fatalf("parseWAV: %v", err)
	}
	if info.SampleRate != 16000 || info.Channels != 1 || info.BitsPerSample != 16 {
		t.Errorf("unexpected format: %+v", info)
	}
	if len(info.Data) != 20 {
		t.Errorf("data length = %d, want 20", len(info.Data))
	}

	if _, err := parseWAV([]byte("RIFF\x00\x00\x00\x00WAVE")); err == nil {
		t.Error("expected error for WAV without fmt chunk")
	}
	if _, err := parseWAV([]byte("nope")); err == nil {
		t.Error("expected error for non-WAV input")
	}
}

func TestIsSilent(t *testing.T) {
	if !isSilent(make([]byte, 100), 200) {
		t.Error("zeroed PCM should be silent")
	}
	if !isSilent(pcmTone(50, 150), 200) {
		t.Error("quiet PCM below threshold should be silent")
	}
	if isSilent(pcmTone(50, 300), 200) {
		t.Error("PCM above threshold should not be silent")
	}
	if !isSilent([]byte{1}, 200) {
		t.Error("a single byte holds no samples")
	}
}

func TestOpenAIAdapter_Transcribe(t *testing.T) {
	var gotModel, gotLanguage, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		if _, header, err := r.FormFile("file"); err == nil {
			gotFilename = header.Filename
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": "hello world"})
	}))
	defer server.Close()

	config := Config{APIKey: "sk-test", Model: "whisper-1", Language: "en", Timeout: DefaultConfig().Timeout}
	adapter := NewOpenAIAdapter(config, server.URL+"/v1")

	text, err := adapter.Transcribe(context.Background(), []byte("RIFFdata"), "clip.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "hello world" {
		t.Errorf("text = %q", text)
	}
	if gotModel != "whisper-1" || gotLanguage != "en" {
		t.Errorf("model=%q language=%q", gotModel, gotLanguage)
	}
	if gotFilename != "clip.wav" {
		t.Errorf("filename = %q", gotFilename)
	}
}

func TestOpenAIAdapter_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":""}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(Config{APIKey: "sk-test", Model: "whisper-1", Timeout: DefaultConfig().Timeout}, server.URL+"/v1")
	if _, err := adapter.Transcribe(context.Background(), []byte("RIFF"), "clip.wav"); !errors.Is(err, ErrNoSpeech) {
		t.Errorf("err = %v, want ErrNoSpeech", err)
	}
}

func TestOpenAIAdapter_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	adapter := NewOpenAIAdapter(Config{APIKey: "sk-test", Model: "whisper-1", Timeout: DefaultConfig().Timeout}, server.URL+"/v1")
	_, err := adapter.Transcribe(context.Background(), []byte("RIFF"), "clip.wav")
	if err == nil || errors.Is(err, ErrNoSpeech) {
		t.Errorf("expected request error, got %v", err)
	}
}

func TestElevenLabsAdapter_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/speech-to-text" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("xi-api-key"); got != "key" {
			t.Errorf("xi-api-key = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if got := r.FormValue("model_id"); got != "scribe_v1" {
			t.Errorf("model_id = %q", got)
		}
		if got := r.FormValue("language_code"); got != "fra" {
			t.Errorf("language_code = %q", got)
		}
		json.NewEncoder(w).Encode(ElevenLabsResponse{Text: "bonjour"})
	}))
	defer server.Close()

	adapter := NewElevenLabsAdapter(Config{APIKey: "key", Model: "scribe_v1", Language: "fra", Timeout: DefaultConfig().Timeout}, server.URL+"/")
	text, err := adapter.Transcribe(context.Background(), []byte("RIFF"), "clip.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "bonjour" {
		t.Errorf("text = %q", text)
	}
}

func TestElevenLabsAdapter_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewElevenLabsAdapter(Config{APIKey: "bad", Model: "scribe_v1", Timeout: DefaultConfig().Timeout}, server.URL)
	_, err := adapter.Transcribe(context.Background(), []byte("RIFF"), "clip.wav")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", statusErr.StatusCode)
	}
}

func TestAdapters_EmptyAudio(t *testing.T) {
	config := Config{APIKey: "key", Model: "m", Timeout: DefaultConfig().Timeout}
	adapters := map[string]Adapter{
		"openai":     NewOpenAIAdapter(config, "http://127.0.0.1:0"),
		"elevenlabs": NewElevenLabsAdapter(config, "http://127.0.0.1:0"),
	}
	for name, adapter := range adapters {
		t.Run(name, func(t *testing.T) {
			if _, err := adapter.Transcribe(context.Background(), nil, "clip.wav"); !errors.Is(err, ErrNoSpeech) {
				t.Errorf("err = %v, want ErrNoSpeech", err)
			}
		})
	}
}
