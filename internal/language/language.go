package language

import (
	xlanguage "golang.org/x/text/language"
)

// DefaultTranslationTag is used when a display name is not in the registry
const DefaultTranslationTag = "eng_Latn"

// DefaultName is the target language used when none is selected
const DefaultName = "English"

// Entry represents a selectable language and its codes in each provider space
type Entry struct {
	Name           string // display name (e.g., "French", "Chinese (Simplified)")
	SynthesisCode  string // speech synthesis code (e.g., "fr", "zh-CN")
	TranslationTag string // translation model tag, language_Script (e.g., "fra_Latn")
}

// entries is the master list of selectable languages, in presentation order.
// Synthesis codes follow the Google translate TTS code space, translation
// tags follow the NLLB-200 vocabulary.
var entries = []Entry{
	{Name: "Afrikaans", SynthesisCode: "af", TranslationTag: "afr_Latn"},
	{Name: "Arabic", SynthesisCode: "ar", TranslationTag: "arb_Arab"},
	{Name: "Bulgarian", SynthesisCode: "bg", TranslationTag: "bul_Cyrl"},
	{Name: "Bengali", SynthesisCode: "bn", TranslationTag: "ben_Beng"},
	{Name: "Bosnian", SynthesisCode: "bs", TranslationTag: "bos_Latn"},
	{Name: "Catalan", SynthesisCode: "ca", TranslationTag: "cat_Latn"},
	{Name: "Czech", SynthesisCode: "cs", TranslationTag: "ces_Latn"},
	{Name: "Welsh", SynthesisCode: "cy", TranslationTag: "cym_Latn"},
	{Name: "Danish", SynthesisCode: "da", TranslationTag: "dan_Latn"},
	{Name: "German", SynthesisCode: "de", TranslationTag: "deu_Latn"},
	{Name: "Greek", SynthesisCode: "el", TranslationTag: "ell_Grek"},
	{Name: "English", SynthesisCode: "en", TranslationTag: "eng_Latn"},
	{Name: "Spanish", SynthesisCode: "es", TranslationTag: "spa_Latn"},
	{Name: "Estonian", SynthesisCode: "et", TranslationTag: "est_Latn"},
	{Name: "Finnish", SynthesisCode: "fi", TranslationTag: "fin_Latn"},
	{Name: "French", SynthesisCode: "fr", TranslationTag: "fra_Latn"},
	{Name: "Gujarati", SynthesisCode: "gu", TranslationTag: "guj_Gujr"},
	{Name: "Hindi", SynthesisCode: "hi", TranslationTag: "hin_Deva"},
	{Name: "Croatian", SynthesisCode: "hr", TranslationTag: "hrv_Latn"},
	{Name: "Hungarian", SynthesisCode: "hu", TranslationTag: "hun_Latn"},
	{Name: "Indonesian", SynthesisCode: "id", TranslationTag: "ind_Latn"},
	{Name: "Icelandic", SynthesisCode: "is", TranslationTag: "isl_Latn"},
	{Name: "Italian", SynthesisCode: "it", TranslationTag: "ita_Latn"},
	{Name: "Hebrew", SynthesisCode: "iw", TranslationTag: "heb_Hebr"},
	{Name: "Japanese", SynthesisCode: "ja", TranslationTag: "jpn_Jpan"},
	{Name: "Javanese", SynthesisCode: "jw", TranslationTag: "jav_Latn"},
	{Name: "Khmer", SynthesisCode: "km", TranslationTag: "khm_Khmr"},
	{Name: "Kannada", SynthesisCode: "kn", TranslationTag: "kan_Knda"},
	{Name: "Korean", SynthesisCode: "ko", TranslationTag: "kor_Hang"},
	{Name: "Latin", SynthesisCode: "la", TranslationTag: "lat_Latn"},
	{Name: "Latvian", SynthesisCode: "lv", TranslationTag: "lvs_Latn"},
	{Name: "Malayalam", SynthesisCode: "ml", TranslationTag: "mal_Mlym"},
	{Name: "Marathi", SynthesisCode: "mr", TranslationTag: "mar_Deva"},
	{Name: "Malay", SynthesisCode: "ms", TranslationTag: "zsm_Latn"},
	{Name: "Burmese", SynthesisCode: "my", TranslationTag: "mya_Mymr"},
	{Name: "Nepali", SynthesisCode: "ne", TranslationTag: "npi_Deva"},
	{Name: "Dutch", SynthesisCode: "nl", TranslationTag: "nld_Latn"},
	{Name: "Norwegian", SynthesisCode: "no", TranslationTag: "nno_Latn"},
	{Name: "Polish", SynthesisCode: "pl", TranslationTag: "pol_Latn"},
	{Name: "Portuguese", SynthesisCode: "pt", TranslationTag: "por_Latn"},
	{Name: "Romanian", SynthesisCode: "ro", TranslationTag: "ron_Latn"},
	{Name: "Russian", SynthesisCode: "ru", TranslationTag: "rus_Cyrl"},
	{Name: "Sinhala", SynthesisCode: "si", TranslationTag: "sin_Sinh"},
	{Name: "Slovak", SynthesisCode: "sk", TranslationTag: "slk_Latn"},
	{Name: "Albanian", SynthesisCode: "sq", TranslationTag: "sqi_Latn"},
	{Name: "Serbian", SynthesisCode: "sr", TranslationTag: "srp_Cyrl"},
	{Name: "Sundanese", SynthesisCode: "su", TranslationTag: "sun_Latn"},
	{Name: "Swedish", SynthesisCode: "sv", TranslationTag: "swe_Latn"},
	{Name: "Swahili", SynthesisCode: "sw", TranslationTag: "swh_Latn"},
	{Name: "Tamil", SynthesisCode: "ta", TranslationTag: "tam_Taml"},
	{Name: "Telugu", SynthesisCode: "te", TranslationTag: "tel_Telu"},
	{Name: "Thai", SynthesisCode: "th", TranslationTag: "tha_Thai"},
	{Name: "Filipino", SynthesisCode: "tl", TranslationTag: "tgl_Latn"},
	{Name: "Turkish", SynthesisCode: "tr", TranslationTag: "tur_Latn"},
	{Name: "Ukrainian", SynthesisCode: "uk", TranslationTag: "ukr_Cyrl"},
	{Name: "Urdu", SynthesisCode: "ur", TranslationTag: "urd_Arab"},
	{Name: "Vietnamese", SynthesisCode: "vi", TranslationTag: "vie_Latn"},
	{Name: "Chinese (Simplified)", SynthesisCode: "zh-CN", TranslationTag: "zho_Hans"},
	{Name: "Chinese (Mandarin/Taiwan)", SynthesisCode: "zh-TW", TranslationTag: "zho_Hant"},
	{Name: "Chinese (Mandarin)", SynthesisCode: "zh", TranslationTag: "zho_Hans"},
}

// nameIndex maps display names to entries for fast lookup
var nameIndex map[string]Entry

// baseIndex maps canonical ISO 639-1 bases to entries, in table order
var baseIndex map[string][]Entry

// bases lists each canonical base once, in table order
var bases []string

func init() {
	nameIndex = make(map[string]Entry, len(entries))
	baseIndex = make(map[string][]Entry, len(entries))
	for _, e := range entries {
		nameIndex[e.Name] = e
		base := canonicalBase(e.SynthesisCode)
		if _, seen := baseIndex[base]; !seen {
			bases = append(bases, base)
		}
		baseIndex[base] = append(baseIndex[base], e)
	}
}

// canonicalBase returns the canonical base subtag for a synthesis code.
// Deprecated codes such as "iw" resolve to their current form ("he").
func canonicalBase(code string) string {
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return code
	}
	base, _ := tag.Base()
	return base.String()
}

// Lookup returns the entry for a display name
func Lookup(name string) (Entry, bool) {
	e, ok := nameIndex[name]
	return e, ok
}

// SynthesisCode returns the speech synthesis code for a display name.
// Returns false if the language cannot be synthesized.
func SynthesisCode(name string) (string, bool) {
	e, ok := nameIndex[name]
	if !ok || e.SynthesisCode == "" {
		return "", false
	}
	return e.SynthesisCode, true
}

// TranslationTag returns the translation tag for a display name.
// Returns DefaultTranslationTag if the name is not found.
func TranslationTag(name string) string {
	if e, ok := nameIndex[name]; ok && e.TranslationTag != "" {
		return e.TranslationTag
	}
	return DefaultTranslationTag
}

// ForLanguage returns the entry for a canonical base subtag (e.g., "ar", "zh").
// When several entries share the base, the one whose tag uses script wins,
// otherwise the first in table order.
func ForLanguage(base, script string) (Entry, bool) {
	candidates := baseIndex[base]
	if len(candidates) == 0 {
		return Entry{}, false
	}
	for _, e := range candidates {
		if tagScript(e.TranslationTag) == script {
			return e, true
		}
	}
	return candidates[0], true
}

func tagScript(tag string) string {
	for i := len(tag) - 1; i >= 0; i-- {
		if tag[i] == '_' {
			return tag[i+1:]
		}
	}
	return ""
}

// List returns all registry entries
func List() []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries)
	return result
}

// Names returns all display names in presentation order
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Bases returns the canonical ISO 639-1 code of every registry language,
// once each, in table order
func Bases() []string {
	result := make([]string, len(bases))
	copy(result, bases)
	return result
}

// IsValidName returns true if the display name is in the registry
func IsValidName(name string) bool {
	_, ok := nameIndex[name]
	return ok
}
