package config

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/detect"
	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/logging"
	"github.com/leonardotrapani/voxlate/internal/provider"
	"github.com/leonardotrapani/voxlate/internal/synth"
	"github.com/leonardotrapani/voxlate/internal/transcriber"
	"github.com/leonardotrapani/voxlate/internal/translate"
)

func (c *Config) ToLoggingOptions() logging.Options {
	return logging.Options{
		Level:  c.General.LogLevel,
		Format: c.General.LogFormat,
	}
}

func (c *Config) ToLinguaConfig() detect.LinguaConfig {
	languages := c.Detection.Languages
	if len(languages) == 0 {
		languages = language.Bases()
	}

	return detect.LinguaConfig{
		Languages:               languages,
		MinimumRelativeDistance: c.Detection.MinimumRelativeDistance,
		LowAccuracy:             c.Detection.LowAccuracy,
		Preload:                 c.Detection.Preload,
	}
}

func (c *Config) ToTranslateConfig(logger *logrus.Logger) translate.Config {
	engine, _ := translate.ParseEngineType(c.Translation.Engine)
	providerName := translationProvider(engine)

	return translate.Config{
		Engine:       engine,
		BaseURL:      c.resolveBaseURL(providerName, c.Translation.BaseURL),
		Model:        c.Translation.Model,
		APIKey:       c.resolveAPIKeyForProvider(providerName),
		Timeout:      c.Translation.Timeout,
		Glossary:     c.Translation.Glossary,
		CustomPrompt: c.Translation.CustomPrompt,
		Logger:       logger,
	}
}

func (c *Config) ToSynthConfig(logger *logrus.Logger) synth.Config {
	name := strings.ToLower(c.Synthesis.Provider)
	return synth.Config{
		Provider: name,
		BaseURL:  c.resolveBaseURL(name, c.Synthesis.BaseURL),
		APIKey:   c.resolveAPIKeyForProvider(name),
		Model:    c.Synthesis.Model,
		Voice:    c.Synthesis.Voice,
		Timeout:  c.Synthesis.Timeout,
		Logger:   logger,
	}
}

func (c *Config) ToTranscriberConfig() transcriber.Config {
	return transcriber.Config{
		Provider:         c.Transcription.Provider,
		APIKey:           c.resolveAPIKeyForProvider(c.Transcription.Provider),
		Language:         c.Transcription.Language,
		Model:            c.Transcription.Model,
		Timeout:          c.Transcription.Timeout,
		SilenceThreshold: c.Transcription.SilenceThreshold,
	}
}

// SpeechEnabled reports whether a transcription provider is configured
func (c *Config) SpeechEnabled() bool {
	return c.Transcription.Provider != ""
}

// translationProvider maps an engine to the provider whose key and endpoint it uses
func translationProvider(engine translate.EngineType) string {
	switch engine {
	case translate.EngineNLLB:
		return provider.ProviderHuggingFace
	case translate.EngineLibreTranslate:
		return provider.ProviderLibreTranslate
	default:
		return string(engine)
	}
}

// resolveAPIKeyForProvider returns the API key for a provider from config, then environment
func (c *Config) resolveAPIKeyForProvider(providerName string) string {
	if providerName == "" {
		return ""
	}

	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok && pc.APIKey != "" {
			return pc.APIKey
		}
	}

	if envVar := provider.EnvVarForProvider(providerName); envVar != "" {
		return os.Getenv(envVar)
	}

	return ""
}

// resolveBaseURL prefers the section override, then the provider override.
// "" leaves the provider default to the component.
func (c *Config) resolveBaseURL(providerName, sectionURL string) string {
	if sectionURL != "" {
		return sectionURL
	}
	if c.Providers != nil {
		if pc, ok := c.Providers[providerName]; ok {
			return pc.BaseURL
		}
	}
	return ""
}
