package config

import "time"

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel:  "info",
			LogFormat: "text",
		},
		Translation: TranslationConfig{
			Engine:  "nllb",
			Timeout: 2 * time.Minute,
		},
		Synthesis: SynthesisConfig{
			Provider: "google",
			Timeout:  30 * time.Second,
		},
		Transcription: TranscriptionConfig{
			Provider:         "",
			Timeout:          30 * time.Second,
			SilenceThreshold: 200,
		},
		Audio: AudioConfig{
			Dir:           "",
			TTL:           time.Hour,
			MaxFiles:      200,
			SweepInterval: 5 * time.Minute,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   5 * time.Minute,
			MaxUploadBytes: 25 << 20,
		},
		Providers: make(map[string]ProviderConfig),
	}
}
