package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/logging"
	"github.com/leonardotrapani/voxlate/internal/provider"
)

// Failure identifies why a transcription did not produce text
type Failure int

const (
	FailureNone Failure = iota
	// FailureUnintelligible means the audio was loaded but no speech could be understood
	FailureUnintelligible
	// FailureRequest means the recognition service could not be reached or errored
	FailureRequest
)

// Diagnostic messages shown to the user for each failure kind
const (
	MsgUnintelligible = "Could not understand audio"
	MsgRequestFailed  = "Could not request results (check internet)"
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "ok"
	case FailureUnintelligible:
		return "unintelligible"
	case FailureRequest:
		return "request_failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a transcription: either text or a named failure
type Result struct {
	Text    string
	Failure Failure
}

// OK reports whether the transcription produced text
func (r Result) OK() bool {
	return r.Failure == FailureNone
}

// Message returns the recognized text, or the fixed diagnostic for a failure
func (r Result) Message() string {
	switch r.Failure {
	case FailureUnintelligible:
		return MsgUnintelligible
	case FailureRequest:
		return MsgRequestFailed
	default:
		return r.Text
	}
}

// Adapter interface for different recognition backends.
// audioData is a complete file (WAV or another container named by filename).
type Adapter interface {
	Transcribe(ctx context.Context, audioData []byte, filename string) (string, error)
}

// Configuration for the transcriber
type Config struct {
	Provider string
	APIKey   string
	Language string // optional ISO 639-1 hint, empty for auto-detect
	Model    string
	Timeout  time.Duration
	// SilenceThreshold is the peak amplitude (0-32767) under which PCM audio is considered silent
	SilenceThreshold int
}

func DefaultConfig() Config {
	return Config{
		Provider:         provider.ProviderOpenAI,
		Model:            "whisper-1",
		Timeout:          30 * time.Second,
		SilenceThreshold: 200,
	}
}

// Transcriber converts recorded audio files into text
type Transcriber struct {
	adapter Adapter
	config  Config
	logger  *logrus.Logger
}

// New creates a transcriber with the adapter selected by config.Provider
func New(config Config, logger *logrus.Logger) (*Transcriber, error) {
	if config.Model == "" {
		config.Model = provider.DefaultModel(config.Provider, provider.Transcription)
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultConfig().Timeout
	}
	config.Language = provider.ToProviderLanguage(config.Provider, config.Language)

	var adapter Adapter
	switch config.Provider {
	case provider.ProviderOpenAI:
		if config.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		adapter = NewOpenAIAdapter(config, provider.BaseURL(provider.ProviderOpenAI))
	case provider.ProviderGroq:
		if config.APIKey == "" {
			return nil, fmt.Errorf("Groq API key required")
		}
		adapter = NewOpenAIAdapter(config, provider.BaseURL(provider.ProviderGroq))
	case provider.ProviderElevenLabs:
		if config.APIKey == "" {
			return nil, fmt.Errorf("ElevenLabs API key required")
		}
		adapter = NewElevenLabsAdapter(config, provider.BaseURL(provider.ProviderElevenLabs))
	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", config.Provider)
	}

	return NewWithAdapter(config, adapter, logger), nil
}

// NewWithAdapter creates a transcriber around an existing adapter
func NewWithAdapter(config Config, adapter Adapter, logger *logrus.Logger) *Transcriber {
	if config.SilenceThreshold <= 0 {
		config.SilenceThreshold = DefaultConfig().SilenceThreshold
	}
	return &Transcriber{
		adapter: adapter,
		config:  config,
		logger:  logging.OrDefault(logger),
	}
}

// Transcribe loads the audio file at path and returns the recognized text.
// Failures are reported in the result, never as errors.
func (t *Transcriber) Transcribe(ctx context.Context, path string) Result {
	log := t.logger.WithField("path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("Failed to read audio file")
		return Result{Failure: FailureUnintelligible}
	}

	audio, filename, err := prepareAudio(raw, filepath.Base(path), t.config.SilenceThreshold)
	if err != nil {
		log.WithError(err).Info("Audio rejected before recognition")
		return Result{Failure: FailureUnintelligible}
	}

	start := time.Now()
	text, err := t.adapter.Transcribe(ctx, audio, filename)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, ErrNoSpeech) {
			log.WithField("duration_ms", duration.Milliseconds()).Info("No speech recognized")
			return Result{Failure: FailureUnintelligible}
		}
		log.WithError(err).WithField("duration_ms", duration.Milliseconds()).Error("Recognition request failed")
		return Result{Failure: FailureRequest}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Info("Recognition returned empty text")
		return Result{Failure: FailureUnintelligible}
	}

	log.WithFields(logrus.Fields{
		"bytes":       len(audio),
		"duration_ms": duration.Milliseconds(),
	}).Info("Transcription completed")
	return Result{Text: text}
}
