package provider

// Provider name constants for config and registry
const (
	ProviderOpenAI         = "openai"
	ProviderGroq           = "groq"
	ProviderElevenLabs     = "elevenlabs"
	ProviderHuggingFace    = "huggingface"
	ProviderLibreTranslate = "libretranslate"
	ProviderGoogle         = "google"
)

// Environment variable names for API keys
const (
	EnvOpenAIKey         = "OPENAI_API_KEY"
	EnvGroqKey           = "GROQ_API_KEY"
	EnvElevenLabsKey     = "ELEVENLABS_API_KEY"
	EnvHuggingFaceKey    = "HF_TOKEN"
	EnvLibreTranslateKey = "LIBRETRANSLATE_API_KEY"
)

// EnvVarForProvider returns the environment variable name for a provider's API key
func EnvVarForProvider(name string) string {
	if p := GetProvider(name); p != nil {
		return p.EnvVar
	}
	return ""
}

// BaseURL returns the default API root for a provider, or "" if unknown
func BaseURL(name string) string {
	if p := GetProvider(name); p != nil {
		return p.BaseURL
	}
	return ""
}
