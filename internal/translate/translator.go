package translate

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Translator defines the interface for machine translation backends.
// sourceTag and targetTag are language_Script tags (e.g., "fra_Latn").
type Translator interface {
	Translate(ctx context.Context, text, sourceTag, targetTag string) (string, error)
}

// HealthChecker is implemented by backends that can report readiness
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// StatusError reports a non-2xx response from a translation backend
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// TagMapper converts language_Script tags to the ISO 639-1 codes most
// HTTP translation backends expect.
type TagMapper struct{}

// NewTagMapper creates a new tag mapper instance.
func NewTagMapper() *TagMapper {
	return &TagMapper{}
}

// ToBackendCode converts a tag to backend format.
// Examples:
//   - "fra_Latn" -> "fr"
//   - "arb_Arab" -> "ar"
//   - "zho_Hant" -> "zh"
//
// Returns "" if the tag cannot be parsed.
func (m *TagMapper) ToBackendCode(tag string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if normalized == "" {
		return ""
	}

	// Macro canonicalization folds individual languages into their macrolanguage (arb -> ar)
	parsed, err := language.All.Parse(normalized)
	if err != nil {
		return ""
	}
	base, conf := parsed.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}
