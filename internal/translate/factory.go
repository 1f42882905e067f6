package translate

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/provider"
)

// EngineType represents the type of translation engine to use.
type EngineType string

const (
	// EngineNLLB uses an NLLB-200 model behind a Hugging Face style inference API.
	EngineNLLB EngineType = "nllb"
	// EngineLibreTranslate uses LibreTranslate as the backend.
	EngineLibreTranslate EngineType = "libretranslate"
	// EngineOpenAI prompts an OpenAI chat model.
	EngineOpenAI EngineType = "openai"
	// EngineGroq prompts a Groq hosted chat model.
	EngineGroq EngineType = "groq"
)

// Config holds configuration for creating a Translator instance.
type Config struct {
	Engine EngineType
	// BaseURL overrides the engine's default API root.
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
	// Glossary terms are kept verbatim by chat engines.
	Glossary     []string
	CustomPrompt string
	// Logger is the logger instance to use. If nil, a default logger is created.
	Logger *logrus.Logger
}

// NewTranslator creates a new Translator instance based on the configuration.
func NewTranslator(cfg Config) (Translator, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	cfg.Logger.WithFields(logrus.Fields{
		"engine":   cfg.Engine,
		"base_url": cfg.BaseURL,
		"model":    cfg.Model,
	}).Info("Creating translator instance")

	switch cfg.Engine {
	case EngineNLLB:
		if cfg.BaseURL == "" {
			cfg.BaseURL = provider.BaseURL(provider.ProviderHuggingFace)
		}
		if cfg.Model == "" {
			cfg.Model = provider.DefaultModel(provider.ProviderHuggingFace, provider.Translation)
		}
		return NewNLLBClient(cfg.BaseURL, cfg.Model, cfg.APIKey, cfg.Timeout, cfg.Logger), nil
	case EngineLibreTranslate:
		if cfg.BaseURL == "" {
			cfg.BaseURL = provider.BaseURL(provider.ProviderLibreTranslate)
		}
		return NewLibreTranslateClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, cfg.Logger), nil
	case EngineOpenAI, EngineGroq:
		name := string(cfg.Engine)
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s API key required", provider.GetProvider(name).DisplayName)
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = provider.BaseURL(name)
		}
		if cfg.Model == "" {
			cfg.Model = provider.DefaultModel(name, provider.Translation)
		}
		return NewChatClient(name, cfg), nil
	default:
		cfg.Logger.WithField("engine", cfg.Engine).Error("Unknown translation engine")
		return nil, fmt.Errorf("unknown translation engine: %s", cfg.Engine)
	}
}

// ParseEngineType parses a string into an EngineType.
func ParseEngineType(s string) (EngineType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nllb", "":
		return EngineNLLB, nil
	case "libretranslate":
		return EngineLibreTranslate, nil
	case "openai":
		return EngineOpenAI, nil
	case "groq":
		return EngineGroq, nil
	default:
		return "", fmt.Errorf("unknown engine type: %s (supported: nllb, libretranslate, openai, groq)", s)
	}
}
