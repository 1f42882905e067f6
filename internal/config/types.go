package config

import "time"

// GeneralConfig holds global settings that apply across the application
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"` // "text" or "json"
}

type Config struct {
	General       GeneralConfig             `toml:"general"`
	Detection     DetectionConfig           `toml:"detection"`
	Translation   TranslationConfig         `toml:"translation"`
	Synthesis     SynthesisConfig           `toml:"synthesis"`
	Transcription TranscriptionConfig       `toml:"transcription"`
	Audio         AudioConfig               `toml:"audio"`
	Server        ServerConfig              `toml:"server"`
	Providers     map[string]ProviderConfig `toml:"providers"`
}

// ProviderConfig holds credentials and an optional endpoint override for a provider
type ProviderConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

type DetectionConfig struct {
	Languages               []string `toml:"languages"` // ISO 639-1 codes, empty = registry languages
	MinimumRelativeDistance float64  `toml:"minimum_relative_distance"`
	LowAccuracy             bool     `toml:"low_accuracy"`
	Preload                 bool     `toml:"preload"`
}

type TranslationConfig struct {
	Engine       string        `toml:"engine"` // "nllb", "libretranslate", "openai", "groq"
	BaseURL      string        `toml:"base_url"`
	Model        string        `toml:"model"`
	Timeout      time.Duration `toml:"timeout"`
	Glossary     []string      `toml:"glossary"`
	CustomPrompt string        `toml:"custom_prompt"`
}

type SynthesisConfig struct {
	Provider string        `toml:"provider"` // "google", "openai", "none"
	BaseURL  string        `toml:"base_url"`
	Model    string        `toml:"model"`
	Voice    string        `toml:"voice"`
	Timeout  time.Duration `toml:"timeout"`
}

type TranscriptionConfig struct {
	Provider         string        `toml:"provider"` // "openai", "groq", "elevenlabs", "" = disabled
	Language         string        `toml:"language"`
	Model            string        `toml:"model"`
	Timeout          time.Duration `toml:"timeout"`
	SilenceThreshold int           `toml:"silence_threshold"`
}

type AudioConfig struct {
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	MaxFiles      int           `toml:"max_files"`
	SweepInterval time.Duration `toml:"sweep_interval"`
}

type ServerConfig struct {
	Addr           string        `toml:"addr"`
	ReadTimeout    time.Duration `toml:"read_timeout"`
	WriteTimeout   time.Duration `toml:"write_timeout"`
	MaxUploadBytes int64         `toml:"max_upload_bytes"`
}

// Clone returns a deep copy of c
func (c *Config) Clone() *Config {
	out := *c
	out.Detection.Languages = append([]string(nil), c.Detection.Languages...)
	out.Translation.Glossary = append([]string(nil), c.Translation.Glossary...)
	out.Providers = make(map[string]ProviderConfig, len(c.Providers))
	for name, pc := range c.Providers {
		out.Providers[name] = pc
	}
	return &out
}
