package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/leonardotrapani/voxlate/internal/config"
	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/provider"
)

// configurableProviders returns providers that take an API key, sorted
func configurableProviders() []string {
	var names []string
	for _, name := range provider.ListProviders() {
		if p := provider.GetProvider(name); p != nil && p.EnvVar != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func providerDisplayName(name string) string {
	if p := provider.GetProvider(name); p != nil && p.DisplayName != "" {
		return p.DisplayName
	}
	return name
}

// maskAPIKey returns a masked version of an API key for display
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

func providerCapabilities(name string) string {
	p := provider.GetProvider(name)
	if p == nil {
		return ""
	}
	var caps []string
	for _, c := range []provider.Capability{provider.Transcription, provider.Translation, provider.Synthesis} {
		if p.Supports(c) {
			caps = append(caps, c.String())
		}
	}
	return strings.Join(caps, " + ")
}

// formatProviderOption formats a provider menu option with status
func formatProviderOption(cfg *config.Config, name string) string {
	status := "(not configured)"
	if pc, ok := cfg.Providers[name]; ok && pc.APIKey != "" {
		status = "(configured)"
	}
	return fmt.Sprintf("%s - %s %s", providerDisplayName(name), providerCapabilities(name), status)
}

func apiKeyHint(cfg *config.Config, name string) string {
	if pc, ok := cfg.Providers[name]; ok && pc.APIKey != "" {
		return "Current: " + maskAPIKey(pc.APIKey) + " • empty keeps it"
	}
	if p := provider.GetProvider(name); p != nil && p.EnvVar != "" {
		return "Falls back to $" + p.EnvVar + " when empty"
	}
	return ""
}

// validateProviderKey accepts an empty key (keep current) or one the provider accepts
func validateProviderKey(name, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	p := provider.GetProvider(name)
	if p == nil {
		return fmt.Errorf("unknown provider: %s", name)
	}
	if !p.ValidateAPIKey(key) {
		if p.KeyPrefix != "" {
			return fmt.Errorf("%s keys start with %q", p.DisplayName, p.KeyPrefix)
		}
		return fmt.Errorf("invalid %s key", p.DisplayName)
	}
	return nil
}

// setProviderKey stores a non-empty key, keeping any endpoint override
func setProviderKey(cfg *config.Config, name, key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]config.ProviderConfig)
	}
	pc := cfg.Providers[name]
	pc.APIKey = key
	cfg.Providers[name] = pc
}

func validateLanguageHint(providerName, code string) error {
	code = strings.TrimSpace(code)
	if code == "" || providerName == "" {
		return nil
	}
	if !provider.SupportsTranscriptionLanguage(providerName, code) {
		return fmt.Errorf("%s does not recognize %s", providerDisplayName(providerName), language.Label(code))
	}
	return nil
}

func engineOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("NLLB-200 (Hugging Face inference)", "nllb"),
		huh.NewOption("LibreTranslate", "libretranslate"),
		huh.NewOption("OpenAI chat model", "openai"),
		huh.NewOption("Groq chat model", "groq"),
	}
}

func synthesisOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Google translate TTS", "google"),
		huh.NewOption("OpenAI TTS", "openai"),
		huh.NewOption("Disabled", "none"),
	}
}

func transcriptionOptions() []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("Disabled", "")}
	for _, name := range provider.ListProvidersWith(provider.Transcription) {
		options = append(options, huh.NewOption(providerDisplayName(name), name))
	}
	return options
}

func formatTranslationLabel(cfg *config.Config) string {
	return fmt.Sprintf("Translation (%s)", cfg.Translation.Engine)
}

func formatSynthesisLabel(cfg *config.Config) string {
	return fmt.Sprintf("Speech synthesis (%s)", cfg.Synthesis.Provider)
}

func formatTranscriptionLabel(cfg *config.Config) string {
	if cfg.Transcription.Provider == "" {
		return "Speech input (disabled)"
	}
	return fmt.Sprintf("Speech input (%s)", cfg.Transcription.Provider)
}

func summaryLines(cfg *config.Config) []string {
	var providers []string
	for name, pc := range cfg.Providers {
		if pc.APIKey != "" {
			providers = append(providers, name)
		}
	}
	sort.Strings(providers)
	if len(providers) == 0 {
		providers = []string{"none"}
	}

	lines := []string{
		fmt.Sprintf("  %s %s", StyleLabel.Render("Providers:"), strings.Join(providers, ", ")),
		fmt.Sprintf("  %s %s", StyleLabel.Render("Translation:"), cfg.Translation.Engine),
		fmt.Sprintf("  %s %s", StyleLabel.Render("Synthesis:"), cfg.Synthesis.Provider),
	}
	if cfg.Transcription.Provider == "" {
		lines = append(lines, fmt.Sprintf("  %s disabled", StyleLabel.Render("Speech input:")))
	} else {
		lines = append(lines, fmt.Sprintf("  %s %s", StyleLabel.Render("Speech input:"), cfg.Transcription.Provider))
	}
	if cfg.Transcription.Language != "" {
		lines = append(lines, fmt.Sprintf("  %s %s", StyleLabel.Render("Language hint:"), language.Label(cfg.Transcription.Language)))
	}
	return lines
}

func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	for _, line := range summaryLines(cfg) {
		fmt.Println(line)
	}
	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
