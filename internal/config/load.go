package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

var ErrConfigExists = errors.New("config already exists")

// GetConfigPath returns $XDG_CONFIG_HOME/voxlate/config.toml, creating the directory
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	voxlateDir := filepath.Join(configDir, "voxlate")
	if err := os.MkdirAll(voxlateDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(voxlateDir, "config.toml"), nil
}

// Load reads the config from the default path
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config at configPath on top of the defaults.
// A missing file yields the defaults.
func LoadFrom(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logrus.WithField("path", configPath).Debug("Config file not found, using defaults")
		return config, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	meta, err := toml.DecodeFile(configPath, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logrus.WithFields(logrus.Fields{
			"path": configPath,
			"keys": fmt.Sprint(undecoded),
		}).Warn("Ignoring unknown config keys")
	}

	if config.Providers == nil {
		config.Providers = make(map[string]ProviderConfig)
	}

	logrus.WithField("path", configPath).Debug("Configuration loaded")
	return config, nil
}

// Save writes config to configPath as TOML
func Save(configPath string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// SaveDefaultConfig writes the commented default config to configPath.
// An existing file is only replaced when overwrite is set.
func SaveDefaultConfig(configPath string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, configPath)
		}
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config content: %w", err)
	}
	return nil
}

const defaultConfigTemplate = `# Voxlate Configuration
# Changes are applied by "voxlate serve" without a restart.

[general]
  log_level = "info"           # debug, info, warn, error
  log_format = "text"          # "text" or "json"

# Source language detection
[detection]
  languages = []               # ISO 639-1 codes to consider (empty = selectable languages)
  minimum_relative_distance = 0.0
  low_accuracy = false         # faster, less accurate on short text
  preload = false              # load all language models at startup

# Translation engine
[translation]
  engine = "nllb"              # "nllb", "libretranslate", "openai", "groq"
  base_url = ""                # empty = provider default
  model = ""                   # empty = facebook/nllb-200-distilled-600M for nllb
  timeout = "2m"
  glossary = []                # terms chat engines keep untranslated
  custom_prompt = ""

# Speech synthesis of the translation
[synthesis]
  provider = "google"          # "google", "openai", "none"
  voice = ""                   # openai only (e.g., "alloy")
  timeout = "30s"

# Speech input
[transcription]
  provider = ""                # "openai", "groq", "elevenlabs" (empty = disabled)
  language = ""                # ISO 639-1 hint, empty for auto-detect
  model = ""
  timeout = "30s"
  silence_threshold = 200      # peak amplitude under which PCM audio counts as silent

# Generated audio files
[audio]
  dir = ""                     # empty = <tmp>/voxlate
  ttl = "1h"                   # files older than this are removed
  max_files = 200              # oldest files are removed beyond this count
  sweep_interval = "5m"

[server]
  addr = ":8080"
  read_timeout = "30s"
  write_timeout = "5m"
  max_upload_bytes = 26214400

# API keys (or set OPENAI_API_KEY, GROQ_API_KEY, ELEVENLABS_API_KEY, HF_TOKEN)
# [providers.openai]
#   api_key = ""
# [providers.huggingface]
#   api_key = ""
# [providers.libretranslate]
#   base_url = "http://localhost:5000"
`
