package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSplitText(t *testing.T) {
	long := strings.Repeat("palabra ", 40)
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"empty", "", 100, nil},
		{"whitespace only", "  \n\t ", 100, nil},
		{"single chunk", "hello   world", 100, []string{"hello world"}},
		{"word boundary", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"long word is cut", "abcdefghij xy", 4, []string{"abcd", "efgh", "ij", "xy"}},
		{"multibyte counted as runes", "ñññ ééé", 7, []string{"ñññ ééé"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitText(tt.text, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("splitText() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}

	for _, chunk := range splitText(long, maxChunkRunes) {
		if utf8.RuneCountInString(chunk) > maxChunkRunes {
			t.Errorf("chunk exceeds limit: %d runes", utf8.RuneCountInString(chunk))
		}
	}
}

func TestGoogleSynthesizer_Synthesize(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate_tts" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("tl") != "fr" || q.Get("client") != "tw-ob" || q.Get("ie") != "UTF-8" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("total") != "2" {
			t.Errorf("total = %s", q.Get("total"))
		}
		mu.Lock()
		seen = append(seen, q.Get("idx"))
		mu.Unlock()
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("part" + q.Get("idx") + ";"))
	}))
	defer server.Close()

	g := NewGoogleSynthesizer(server.URL, 5*time.Second, quietLogger())
	text := strings.Repeat("bonjour ", 20) // 159 runes once joined
	var buf bytes.Buffer
	if err := g.Synthesize(context.Background(), text, "fr", &buf); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if buf.String() != "part0;part1;" {
		t.Errorf("audio = %q, want parts in order", buf.String())
	}
	if len(seen) != 2 {
		t.Errorf("requests = %v", seen)
	}
	if g.Format() != "mp3" {
		t.Errorf("Format() = %q", g.Format())
	}
}

func TestGoogleSynthesizer_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGoogleSynthesizer(server.URL, 5*time.Second, quietLogger())

	if err := g.Synthesize(context.Background(), "   ", "fr", io.Discard); !errors.Is(err, ErrEmptyText) {
		t.Errorf("empty text err = %v, want ErrEmptyText", err)
	}
	if err := g.Synthesize(context.Background(), "hola", "", io.Discard); err == nil {
		t.Error("expected error for missing code")
	}
	err := g.Synthesize(context.Background(), "hola", "es", io.Discard)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestOpenAISynthesizer_Synthesize(t *testing.T) {
	var got struct {
		Model          string `json:"model"`
		Input          string `json:"input"`
		Voice          string `json:"voice"`
		ResponseFormat string `json:"response_format"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3mp3"))
	}))
	defer server.Close()

	s, err := New(Config{Provider: "openai", APIKey: "sk-test", BaseURL: server.URL + "/v1", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Synthesize(context.Background(), "Hallo Welt", "de", &buf); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if buf.String() != "ID3mp3" {
		t.Errorf("audio = %q", buf.String())
	}
	if got.Model != "tts-1" || got.Voice != DefaultOpenAIVoice || got.ResponseFormat != "mp3" || got.Input != "Hallo Welt" {
		t.Errorf("unexpected request: %+v", got)
	}

	if err := s.Synthesize(context.Background(), "", "de", &buf); !errors.Is(err, ErrEmptyText) {
		t.Errorf("empty text err = %v", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantNil bool
		wantErr bool
	}{
		{"disabled", Config{}, true, false},
		{"none", Config{Provider: "none"}, true, false},
		{"google", Config{Provider: "google"}, false, false},
		{"openai", Config{Provider: "openai", APIKey: "sk-x"}, false, false},
		{"openai without key", Config{Provider: "openai"}, true, true},
		{"unknown", Config{Provider: "polly"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Logger = quietLogger()
			s, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if (s == nil) != tt.wantNil {
				t.Errorf("synthesizer nil = %v, want %v", s == nil, tt.wantNil)
			}
		})
	}
}
