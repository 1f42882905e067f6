package provider

import (
	"sort"
	"strings"
)

// Capability identifies what a provider can be used for
type Capability int

const (
	Transcription Capability = iota
	Translation
	Synthesis
)

func (c Capability) String() string {
	switch c {
	case Transcription:
		return "transcription"
	case Translation:
		return "translation"
	case Synthesis:
		return "synthesis"
	default:
		return "unknown"
	}
}

// Provider describes an external service and its defaults
type Provider struct {
	Name           string
	DisplayName    string
	EnvVar         string                // environment variable holding the API key ("" if none)
	RequiresAPIKey bool                  // false for self-hosted or keyless services
	KeyPrefix      string                // expected API key prefix, "" to skip the check
	BaseURL        string                // default API root
	DefaultModels  map[Capability]string // per-capability default model or voice
}

// Supports returns true if the provider offers capability c
func (p *Provider) Supports(c Capability) bool {
	_, ok := p.DefaultModels[c]
	return ok
}

// ValidateAPIKey performs a cheap format check on key
func (p *Provider) ValidateAPIKey(key string) bool {
	if key == "" {
		return !p.RequiresAPIKey
	}
	return p.KeyPrefix == "" || strings.HasPrefix(key, p.KeyPrefix)
}

var registry = make(map[string]*Provider)

func init() {
	Register(&Provider{
		Name:           ProviderOpenAI,
		DisplayName:    "OpenAI",
		EnvVar:         EnvOpenAIKey,
		RequiresAPIKey: true,
		KeyPrefix:      "sk-",
		BaseURL:        "https://api.openai.com/v1",
		DefaultModels: map[Capability]string{
			Transcription: "whisper-1",
			Translation:   "gpt-4o-mini",
			Synthesis:     "tts-1",
		},
	})
	Register(&Provider{
		Name:           ProviderGroq,
		DisplayName:    "Groq",
		EnvVar:         EnvGroqKey,
		RequiresAPIKey: true,
		KeyPrefix:      "gsk_",
		BaseURL:        "https://api.groq.com/openai/v1",
		DefaultModels: map[Capability]string{
			Transcription: "whisper-large-v3",
			Translation:   "llama-3.3-70b-versatile",
		},
	})
	Register(&Provider{
		Name:           ProviderElevenLabs,
		DisplayName:    "ElevenLabs",
		EnvVar:         EnvElevenLabsKey,
		RequiresAPIKey: true,
		BaseURL:        "https://api.elevenlabs.io",
		DefaultModels: map[Capability]string{
			Transcription: "scribe_v1",
		},
	})
	Register(&Provider{
		Name:           ProviderHuggingFace,
		DisplayName:    "Hugging Face Inference",
		EnvVar:         EnvHuggingFaceKey,
		RequiresAPIKey: false,
		KeyPrefix:      "hf_",
		BaseURL:        "https://api-inference.huggingface.co",
		DefaultModels: map[Capability]string{
			Translation: "facebook/nllb-200-distilled-600M",
		},
	})
	Register(&Provider{
		Name:           ProviderLibreTranslate,
		DisplayName:    "LibreTranslate",
		EnvVar:         EnvLibreTranslateKey,
		RequiresAPIKey: false,
		BaseURL:        "http://localhost:5000",
		DefaultModels: map[Capability]string{
			Translation: "",
		},
	})
	Register(&Provider{
		Name:           ProviderGoogle,
		DisplayName:    "Google Translate TTS",
		RequiresAPIKey: false,
		BaseURL:        "https://translate.google.com",
		DefaultModels: map[Capability]string{
			Synthesis: "",
		},
	})
}

// Register adds a provider to the registry
func Register(p *Provider) {
	registry[p.Name] = p
}

// GetProvider returns a provider by name, or nil if not found
func GetProvider(name string) *Provider {
	return registry[name]
}

// DefaultModel returns the default model for a provider capability, or ""
func DefaultModel(name string, c Capability) string {
	if p := GetProvider(name); p != nil {
		return p.DefaultModels[c]
	}
	return ""
}

// ListProviders returns all registered provider names, sorted
func ListProviders() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListProvidersWith returns sorted names of providers supporting capability c
func ListProvidersWith(c Capability) []string {
	var names []string
	for name, p := range registry {
		if p.Supports(c) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
