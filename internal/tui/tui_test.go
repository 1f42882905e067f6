package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leonardotrapani/voxlate/internal/artifact"
	"github.com/leonardotrapani/voxlate/internal/config"
	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/pipeline"
)

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name    string
		result  pipeline.Result
		want    []string
		notWant []string
	}{
		{
			name: "success with audio",
			result: pipeline.Result{
				Status:           pipeline.StatusOK,
				DetectedLanguage: "English",
				TranslatedText:   "Bonjour",
				Audio:            &artifact.Artifact{Path: "/tmp/voxlate/abc.mp3"},
			},
			want: []string{"English", "Bonjour", "/tmp/voxlate/abc.mp3"},
		},
		{
			name: "success without audio",
			result: pipeline.Result{
				Status:           pipeline.StatusOK,
				DetectedLanguage: "Spanish",
				TranslatedText:   "Hello",
				Transcript:       "hola",
			},
			want: []string{"Spanish", "Hello", "hola", "none"},
		},
		{
			name:    "error",
			result:  pipeline.Result{Status: pipeline.StatusError, Error: "No text provided"},
			want:    []string{"Error", "No text provided"},
			notWant: []string{"Audio:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderResult(tt.result)
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestRenderLanguages(t *testing.T) {
	entries := []language.Entry{
		{Name: "French", SynthesisCode: "fr", TranslationTag: "fra_Latn"},
		{Name: "Cantonese", TranslationTag: "yue_Hant"},
	}
	lines := strings.Split(strings.TrimSpace(RenderLanguages(entries)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "fr") || !strings.Contains(lines[0], "fra_Latn") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], " - ") {
		t.Errorf("missing synthesis code should render as '-': %q", lines[1])
	}
}

func TestLanguageOptions(t *testing.T) {
	if got, want := len(languageOptions()), len(language.Names()); got != want {
		t.Errorf("languageOptions() has %d entries, want %d", got, want)
	}
}

func TestValidateAudioPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.wav")
	if err := os.WriteFile(file, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path    string
		wantErr bool
	}{
		{file, false},
		{"  " + file + " ", false},
		{"", true},
		{dir, true},
		{filepath.Join(dir, "missing.wav"), true},
	}
	for _, tt := range tests {
		if err := validateAudioPath(tt.path); (err != nil) != tt.wantErr {
			t.Errorf("validateAudioPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "***"},
		{"sk-proj-abcdefghijklmnop", "sk-proj...mnop"},
	}
	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestValidateProviderKey(t *testing.T) {
	tests := []struct {
		provider string
		key      string
		wantErr  bool
	}{
		{"openai", "", false},
		{"openai", "sk-abc", false},
		{"openai", "gsk_abc", true},
		{"groq", "gsk_abc", false},
		{"elevenlabs", "anything", false},
		{"nope", "key", true},
	}
	for _, tt := range tests {
		if err := validateProviderKey(tt.provider, tt.key); (err != nil) != tt.wantErr {
			t.Errorf("validateProviderKey(%q, %q) error = %v, wantErr %v", tt.provider, tt.key, err, tt.wantErr)
		}
	}
}

func TestSetProviderKey(t *testing.T) {
	cfg := &config.Config{}
	setProviderKey(cfg, "openai", "   ")
	if len(cfg.Providers) != 0 {
		t.Error("empty key should leave providers untouched")
	}

	cfg.Providers = map[string]config.ProviderConfig{"openai": {BaseURL: "http://proxy"}}
	setProviderKey(cfg, "openai", " sk-new ")
	if got := cfg.Providers["openai"]; got.APIKey != "sk-new" || got.BaseURL != "http://proxy" {
		t.Errorf("Providers[openai] = %+v", got)
	}
}

func TestFormatProviderOption(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := formatProviderOption(cfg, "openai"); !strings.Contains(got, "OpenAI") || !strings.Contains(got, "(not configured)") {
		t.Errorf("formatProviderOption() = %q", got)
	}
	cfg.Providers["openai"] = config.ProviderConfig{APIKey: "sk-x"}
	if got := formatProviderOption(cfg, "openai"); !strings.Contains(got, "(configured)") || !strings.Contains(got, "transcription") {
		t.Errorf("formatProviderOption() = %q", got)
	}
}

func TestConfigurableProviders(t *testing.T) {
	names := configurableProviders()
	for _, name := range names {
		if name == "google" {
			t.Error("keyless providers should not be listed")
		}
	}
	found := false
	for _, name := range names {
		found = found || name == "openai"
	}
	if !found {
		t.Errorf("configurableProviders() = %v, want openai included", names)
	}
}

func TestValidateLanguageHint(t *testing.T) {
	if err := validateLanguageHint("openai", "fr"); err != nil {
		t.Errorf("fr should be accepted: %v", err)
	}
	if err := validateLanguageHint("openai", "xx"); err == nil {
		t.Error("xx should be rejected")
	} else if !strings.Contains(err.Error(), "language 'xx'") {
		t.Errorf("error should name the code: %v", err)
	}
	if err := validateLanguageHint("", "xx"); err != nil {
		t.Error("hint is ignored when speech input is disabled")
	}
}

func TestSummaryLines(t *testing.T) {
	cfg := config.DefaultConfig()
	joined := strings.Join(summaryLines(cfg), "\n")
	for _, want := range []string{"none", "nllb", "google", "disabled"} {
		if !strings.Contains(joined, want) {
			t.Errorf("summary missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "Language hint") {
		t.Errorf("no hint configured, summary shows one:\n%s", joined)
	}

	cfg.Transcription.Provider = "openai"
	cfg.Transcription.Language = "fr"
	joined = strings.Join(summaryLines(cfg), "\n")
	if !strings.Contains(joined, "French (fr)") {
		t.Errorf("summary should label the hint:\n%s", joined)
	}
}
