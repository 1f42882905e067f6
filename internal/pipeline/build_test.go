package pipeline

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leonardotrapani/voxlate/internal/config"
	"github.com/leonardotrapani/voxlate/internal/logging"
	"github.com/leonardotrapani/voxlate/internal/testutil"
)

func TestBuild_DefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Audio.Dir = filepath.Join(t.TempDir(), "audio")

	store, err := OpenStore(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer store.Close()

	p, err := Build(cfg, testutil.NewMockDetector("eng_Latn", "English"), store, logging.Discard())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if p.SpeechEnabled() {
		t.Error("speech should be disabled by default")
	}
	if p.translator == nil {
		t.Error("translator should be configured")
	}
	if p.synthesizer == nil {
		t.Error("default synthesis provider should be configured")
	}
}

func TestBuild_SpeechEnabled(t *testing.T) {
	cfg := testutil.TestConfig()

	p, err := Build(cfg, nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !p.SpeechEnabled() {
		t.Error("speech should be enabled with a transcription provider")
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown engine", func(c *config.Config) { c.Translation.Engine = "argos" }},
		{"unknown synthesis", func(c *config.Config) { c.Synthesis.Provider = "polly" }},
		{"transcription without key", func(c *config.Config) {
			c.Transcription.Provider = "groq"
			delete(c.Providers, "groq")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GROQ_API_KEY", "")
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			if _, err := Build(cfg, nil, nil, logging.Discard()); err == nil {
				t.Error("Build() expected error")
			}
		})
	}
}

func TestOpenStore_RemovesStaleFiles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Audio.Dir = filepath.Join(t.TempDir(), "audio")
	cfg.Audio.TTL = time.Minute

	first, err := OpenStore(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	stale, err := first.Create("mp3", func(w io.Writer) error {
		_, err := io.WriteString(w, "old")
		return err
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	stamp := time.Now().Add(-time.Hour)
	if err := os.Chtimes(stale.Path, stamp, stamp); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	second, err := OpenStore(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("second OpenStore() error = %v", err)
	}
	defer second.Close()

	if _, err := os.Stat(stale.Path); !os.IsNotExist(err) {
		t.Error("stale artifact from an earlier run should be removed")
	}
	if second.Len() != 0 {
		t.Errorf("Len() = %d, want 0", second.Len())
	}
}
