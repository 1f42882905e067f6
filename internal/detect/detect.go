package detect

import (
	"strings"

	"github.com/sirupsen/logrus"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/logging"
)

// Result is the outcome of language detection
type Result struct {
	Tag  string // translation tag, language_Script (e.g., "fra_Latn")
	Name string // English display name (e.g., "French")
}

// Fallback is returned whenever detection is inconclusive
var Fallback = Result{Tag: language.DefaultTranslationTag, Name: "Unknown"}

// IsFallback reports whether r is the fallback result
func (r Result) IsFallback() bool {
	return r == Fallback
}

// Identifier performs statistical language identification.
// Implementations return an ISO 639 code (e.g., "fr", "FRA") and false
// when the text cannot be identified.
type Identifier interface {
	Identify(text string) (string, bool)
}

// Detector resolves raw text into a translation tag and display name
type Detector struct {
	identifier Identifier
	logger     *logrus.Logger
}

// New creates a detector backed by identifier
func New(identifier Identifier, logger *logrus.Logger) *Detector {
	return &Detector{
		identifier: identifier,
		logger:     logging.OrDefault(logger),
	}
}

// Detect identifies the language of text. It never fails: inconclusive
// input, identifier panics and unmappable codes all yield Fallback.
func (d *Detector) Detect(text string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("panic", r).Warn("Language identification panicked")
			result = Fallback
		}
	}()

	if d.identifier == nil || strings.TrimSpace(text) == "" {
		return Fallback
	}

	code, ok := d.identifier.Identify(text)
	if !ok || code == "" {
		d.logger.WithField("text_length", len(text)).Debug("Language identification inconclusive")
		return Fallback
	}

	resolved, ok := Resolve(code)
	if !ok {
		d.logger.WithField("code", code).Debug("Identified language could not be mapped")
		return Fallback
	}

	d.logger.WithFields(logrus.Fields{
		"code": code,
		"tag":  resolved.Tag,
		"name": resolved.Name,
	}).Debug("Detected language")
	return resolved
}

// Resolve maps an ISO 639 code into a translation tag and display name.
// The script defaults to the most likely script for the language; the
// registry's own tag is preferred when it lists the language.
func Resolve(code string) (Result, bool) {
	tag, err := xlanguage.Parse(strings.ToLower(strings.ReplaceAll(code, "_", "-")))
	if err != nil {
		return Result{}, false
	}

	base, conf := tag.Base()
	if conf == xlanguage.No || base.String() == "und" {
		return Result{}, false
	}
	script, _ := tag.Script()
	if script.String() == "Zzzz" {
		script = xlanguage.MustParseScript("Latn")
	}

	iso3 := base.ISO3()
	if iso3 == "" {
		return Result{}, false
	}

	name := display.English.Tags().Name(tag)
	if name == "" {
		return Result{}, false
	}

	translationTag := iso3 + "_" + script.String()
	if entry, ok := language.ForLanguage(base.String(), script.String()); ok {
		translationTag = entry.TranslationTag
	}

	return Result{Tag: translationTag, Name: name}, true
}
