package detect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LinguaConfig configures the lingua-backed identifier
type LinguaConfig struct {
	// Languages restricts detection to these ISO 639-1 codes. Empty means all languages.
	Languages []string
	// MinimumRelativeDistance rejects results whose confidence gap is too small (0 disables).
	MinimumRelativeDistance float64
	// LowAccuracy trades accuracy on short text for lower memory use.
	LowAccuracy bool
	// Preload loads all language models at construction instead of lazily.
	Preload bool
}

// LinguaIdentifier implements Identifier using lingua-go.
// The underlying detector is safe for concurrent use.
type LinguaIdentifier struct {
	detector lingua.LanguageDetector
}

// NewLinguaIdentifier builds the detector once; it is meant to be long-lived.
func NewLinguaIdentifier(cfg LinguaConfig) *LinguaIdentifier {
	var builder lingua.LanguageDetectorBuilder

	languages := linguaLanguages(cfg.Languages)
	if len(languages) >= 2 {
		builder = lingua.NewLanguageDetectorBuilder().FromLanguages(languages...)
	} else {
		builder = lingua.NewLanguageDetectorBuilder().FromAllLanguages()
	}

	if cfg.MinimumRelativeDistance > 0 {
		builder = builder.WithMinimumRelativeDistance(cfg.MinimumRelativeDistance)
	}
	if cfg.LowAccuracy {
		builder = builder.WithLowAccuracyMode()
	}
	if cfg.Preload {
		builder = builder.WithPreloadedLanguageModels()
	}

	return &LinguaIdentifier{detector: builder.Build()}
}

// Identify returns the lowercase ISO 639-1 code of the detected language
func (l *LinguaIdentifier) Identify(text string) (string, bool) {
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// linguaLanguages maps ISO 639-1 codes to lingua languages, skipping unknown codes
func linguaLanguages(codes []string) []lingua.Language {
	if len(codes) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[strings.ToUpper(strings.TrimSpace(c))] = true
	}

	var result []lingua.Language
	for _, lang := range lingua.AllLanguages() {
		if wanted[lang.IsoCode639_1().String()] {
			result = append(result, lang)
		}
	}
	return result
}
