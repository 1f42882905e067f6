package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/leonardotrapani/voxlate/internal/config"
)

// ConfigureResult holds the configuration result from the TUI
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// ConfigSection represents a configuration section
type ConfigSection string

const (
	SectionProviders     ConfigSection = "providers"
	SectionTranslation   ConfigSection = "translation"
	SectionSynthesis     ConfigSection = "synthesis"
	SectionTranscription ConfigSection = "transcription"
	SectionSaveExit      ConfigSection = "save_exit"
	SectionDiscardExit   ConfigSection = "discard_exit"
)

// Configure runs the menu-based configuration editor on a copy of cfg
func Configure(cfg *config.Config) (*ConfigureResult, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	working := cfg.Clone()

	for {
		clearScreen()
		fmt.Println(Logo())
		fmt.Println()

		section, err := selectSection(working)
		if err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}

		switch section {
		case SectionSaveExit:
			if err := working.Validate(); err != nil {
				fmt.Println(StyleError.Render("Invalid configuration: " + err.Error()))
				if !confirmKeepEditing() {
					return &ConfigureResult{Cancelled: true}, nil
				}
				continue
			}
			confirmed, err := showSummary(working)
			if err != nil {
				return &ConfigureResult{Cancelled: true}, nil
			}
			if confirmed {
				return &ConfigureResult{Config: working}, nil
			}

		case SectionDiscardExit:
			return &ConfigureResult{Cancelled: true}, nil

		case SectionProviders:
			editProviders(working)

		case SectionTranslation:
			editTranslation(working)

		case SectionSynthesis:
			editSynthesis(working)

		case SectionTranscription:
			editTranscription(working)
		}
	}
}

func selectSection(cfg *config.Config) (ConfigSection, error) {
	options := []huh.Option[ConfigSection]{
		huh.NewOption("Providers", SectionProviders),
		huh.NewOption(formatTranslationLabel(cfg), SectionTranslation),
		huh.NewOption(formatSynthesisLabel(cfg), SectionSynthesis),
		huh.NewOption(formatTranscriptionLabel(cfg), SectionTranscription),
		huh.NewOption("Save & Exit", SectionSaveExit),
		huh.NewOption("Discard & Exit", SectionDiscardExit),
	}

	var selected ConfigSection
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ConfigSection]().
				Title("Configuration Menu").
				Description("↑/↓ navigate • enter select • esc cancel").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

func editProviders(cfg *config.Config) {
	for {
		var options []huh.Option[string]
		for _, name := range configurableProviders() {
			options = append(options, huh.NewOption(formatProviderOption(cfg, name), name))
		}
		options = append(options, huh.NewOption("Done", "back"))

		var selected string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Provider Settings").
					Description("Select a provider to set its API key").
					Options(options...).
					Value(&selected),
			),
		).WithTheme(getTheme())

		if err := form.Run(); err != nil || selected == "back" {
			return
		}

		var key string
		input := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(providerDisplayName(selected)+" API key").
					Description(apiKeyHint(cfg, selected)).
					EchoMode(huh.EchoModePassword).
					Validate(func(s string) error { return validateProviderKey(selected, s) }).
					Value(&key),
			),
		).WithTheme(getTheme())

		if err := input.Run(); err != nil {
			continue
		}
		setProviderKey(cfg, selected, key)
	}
}

func editTranslation(cfg *config.Config) {
	engine := cfg.Translation.Engine
	model := cfg.Translation.Model
	baseURL := cfg.Translation.BaseURL

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Translation engine").
				Options(engineOptions()...).
				Value(&engine),
			huh.NewInput().
				Title("Model").
				Description("Leave empty for the engine default").
				Value(&model),
			huh.NewInput().
				Title("Endpoint").
				Description("Leave empty for the engine default").
				Value(&baseURL),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return
	}
	cfg.Translation.Engine = engine
	cfg.Translation.Model = model
	cfg.Translation.BaseURL = baseURL
}

func editSynthesis(cfg *config.Config) {
	name := cfg.Synthesis.Provider
	voice := cfg.Synthesis.Voice

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Speech synthesis").
				Options(synthesisOptions()...).
				Value(&name),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Voice").
				Description("OpenAI voice name, empty for the default").
				Value(&voice),
		).WithHideFunc(func() bool { return name != "openai" }),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return
	}
	cfg.Synthesis.Provider = name
	cfg.Synthesis.Voice = voice
}

func editTranscription(cfg *config.Config) {
	name := cfg.Transcription.Provider
	lang := cfg.Transcription.Language

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Speech input").
				Description("Recognition service for audio files").
				Options(transcriptionOptions()...).
				Value(&name),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Language hint").
				Description("ISO 639-1 code, empty to auto-detect").
				Validate(func(s string) error { return validateLanguageHint(name, s) }).
				Value(&lang),
		).WithHideFunc(func() bool { return name == "" }),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return
	}
	cfg.Transcription.Provider = name
	cfg.Transcription.Language = lang
	cfg.Transcription.Model = ""
}

func confirmKeepEditing() bool {
	keep := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Keep editing?").
				Affirmative("Yes").
				Negative("Discard").
				Value(&keep),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false
	}
	return keep
}
