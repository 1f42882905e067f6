package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/provider"
	"github.com/leonardotrapani/voxlate/internal/translate"
)

func (c *Config) Validate() error {
	if c.General.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.General.LogLevel); err != nil {
			return fmt.Errorf("invalid general.log_level: %s", c.General.LogLevel)
		}
	}
	switch c.General.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid general.log_format: %s (must be text or json)", c.General.LogFormat)
	}

	if d := c.Detection.MinimumRelativeDistance; d < 0 || d > 0.99 {
		return fmt.Errorf("invalid detection.minimum_relative_distance: %v (must be between 0 and 0.99)", d)
	}

	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateSynthesis(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}

	if c.Audio.TTL < 0 {
		return fmt.Errorf("invalid audio.ttl: %v", c.Audio.TTL)
	}
	if c.Audio.MaxFiles < 0 {
		return fmt.Errorf("invalid audio.max_files: %d", c.Audio.MaxFiles)
	}
	if c.Audio.SweepInterval < 0 {
		return fmt.Errorf("invalid audio.sweep_interval: %v", c.Audio.SweepInterval)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("invalid server.addr: empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid server.max_upload_bytes: %d", c.Server.MaxUploadBytes)
	}

	return nil
}

func (c *Config) validateTranslation() error {
	engine, err := translate.ParseEngineType(c.Translation.Engine)
	if err != nil {
		return fmt.Errorf("invalid translation.engine: %w", err)
	}
	if c.Translation.Timeout < 0 {
		return fmt.Errorf("invalid translation.timeout: %v", c.Translation.Timeout)
	}

	switch engine {
	case translate.EngineOpenAI, translate.EngineGroq:
		return c.requireAPIKey(string(engine))
	}
	return nil
}

func (c *Config) validateSynthesis() error {
	switch name := strings.ToLower(c.Synthesis.Provider); name {
	case "", "none", provider.ProviderGoogle:
	case provider.ProviderOpenAI:
		if err := c.requireAPIKey(name); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid synthesis.provider: %s (must be google, openai or none)", c.Synthesis.Provider)
	}
	if c.Synthesis.Timeout < 0 {
		return fmt.Errorf("invalid synthesis.timeout: %v", c.Synthesis.Timeout)
	}
	return nil
}

func (c *Config) validateTranscription() error {
	name := c.Transcription.Provider
	if name == "" {
		return nil
	}

	p := provider.GetProvider(name)
	if p == nil || !p.Supports(provider.Transcription) {
		return fmt.Errorf("invalid transcription.provider: %s (supported: %s)", name, strings.Join(provider.ListProvidersWith(provider.Transcription), ", "))
	}
	if err := c.requireAPIKey(name); err != nil {
		return err
	}
	if !provider.SupportsTranscriptionLanguage(name, c.Transcription.Language) {
		return fmt.Errorf("invalid transcription.language: %s (use empty string for auto-detect or ISO-639-1 codes like 'en', 'es', 'fr')", c.Transcription.Language)
	}
	if c.Transcription.SilenceThreshold < 0 || c.Transcription.SilenceThreshold > 32767 {
		return fmt.Errorf("invalid transcription.silence_threshold: %d", c.Transcription.SilenceThreshold)
	}
	if c.Transcription.Timeout < 0 {
		return fmt.Errorf("invalid transcription.timeout: %v", c.Transcription.Timeout)
	}
	return nil
}

func (c *Config) requireAPIKey(providerName string) error {
	if c.resolveAPIKeyForProvider(providerName) != "" {
		return nil
	}
	p := provider.GetProvider(providerName)
	return fmt.Errorf("%s API key required: not found in config (providers.%s.api_key) or environment variable (%s)", p.DisplayName, providerName, p.EnvVar)
}
