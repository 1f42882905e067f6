package synth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/provider"
)

// ErrEmptyText is returned when there is nothing to speak
var ErrEmptyText = errors.New("no text to synthesize")

// Synthesizer renders text as speech audio
type Synthesizer interface {
	// Synthesize writes audio for text spoken in the language named by code to w
	Synthesize(ctx context.Context, text, code string, w io.Writer) error
	// Format returns the audio container written by Synthesize (e.g., "mp3")
	Format() string
}

// Config holds synthesizer configuration
type Config struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
	Voice    string
	Timeout  time.Duration
	Logger   *logrus.Logger
}

// New creates a synthesizer for cfg.Provider. An empty provider disables synthesis
// and returns nil with no error.
func New(cfg Config) (Synthesizer, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	case provider.ProviderGoogle:
		if cfg.BaseURL == "" {
			cfg.BaseURL = provider.BaseURL(provider.ProviderGoogle)
		}
		return NewGoogleSynthesizer(cfg.BaseURL, cfg.Timeout, cfg.Logger), nil
	case provider.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = provider.BaseURL(provider.ProviderOpenAI)
		}
		if cfg.Model == "" {
			cfg.Model = provider.DefaultModel(provider.ProviderOpenAI, provider.Synthesis)
		}
		if cfg.Voice == "" {
			cfg.Voice = DefaultOpenAIVoice
		}
		return NewOpenAISynthesizer(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported synthesis provider: %s", cfg.Provider)
	}
}
