package synth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// DefaultOpenAIVoice is used when no voice is configured
const DefaultOpenAIVoice = "alloy"

// OpenAISynthesizer speaks text with the OpenAI speech API.
// The model infers the language from the text, so the code is informational.
type OpenAISynthesizer struct {
	client *openai.Client
	model  string
	voice  string
	logger *logrus.Logger
}

func NewOpenAISynthesizer(cfg Config) *OpenAISynthesizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		voice:  cfg.Voice,
		logger: logger,
	}
}

func (o *OpenAISynthesizer) Format() string { return "mp3" }

func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text, code string, w io.Writer) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	start := time.Now()
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	n, err := io.Copy(w, resp)
	if err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("openai speech: empty audio response")
	}

	o.logger.WithFields(logrus.Fields{
		"lang":        code,
		"voice":       o.voice,
		"bytes":       n,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Speech synthesized")
	return nil
}
