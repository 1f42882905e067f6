package provider

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

var whisperTranscriptionLanguages = []string{
	"af", "ar", "hy", "az", "be", "bs", "bg", "ca", "zh", "hr", "cs", "da",
	"nl", "en", "et", "fi", "fr", "gl", "de", "el", "he", "hi", "hu", "is",
	"id", "it", "ja", "kn", "kk", "ko", "lv", "lt", "mk", "ms", "mr", "mi",
	"ne", "no", "fa", "pl", "pt", "ro", "ru", "sr", "sk", "sl", "es", "sw",
	"sv", "tl", "ta", "th", "tr", "uk", "ur", "vi", "cy",
}

var elevenLabsTranscriptionLanguages = []string{
	"bel", "bos", "bul", "cat", "hrv", "ces", "dan", "nld", "eng", "est", "fin", "fra",
	"glg", "deu", "ell", "hun", "isl", "ind", "ita", "jpn", "kan", "lav", "mkd", "msa",
	"mal", "nor", "pol", "por", "ron", "rus", "slk", "spa", "swe", "tur", "ukr", "vie",
	"hye", "aze", "ben", "yue", "fil", "kat", "guj", "hin", "kaz", "lit", "mlt", "cmn",
	"mar", "nep", "ori", "fas", "srp", "slv", "swa", "tam", "tel",
	"afr", "ara", "asm", "ast", "mya", "hau", "heb", "jav", "kor", "kir", "ltz", "mri",
	"oci", "pan", "tgk", "tha", "uzb", "cym",
	"amh", "lug", "ibo", "gle", "khm", "kur", "lao", "mon", "nso", "pus", "sna", "snd",
	"som", "urd", "wol", "xho", "yor", "zul",
}

// TranscriptionLanguages returns the language hints a transcription provider accepts, in its own format
func TranscriptionLanguages(name string) []string {
	switch name {
	case ProviderOpenAI, ProviderGroq:
		return whisperTranscriptionLanguages
	case ProviderElevenLabs:
		return elevenLabsTranscriptionLanguages
	default:
		return nil
	}
}

// ToProviderLanguage converts an ISO 639-1 hint into the format the provider expects.
// Returns "" when the provider cannot take the hint, which means auto-detect.
func ToProviderLanguage(name, code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}

	switch name {
	case ProviderElevenLabs:
		base, err := language.ParseBase(code)
		if err != nil {
			return ""
		}
		iso3 := base.ISO3()
		if slices.Contains(elevenLabsTranscriptionLanguages, iso3) {
			return iso3
		}
		return ""
	default:
		if slices.Contains(TranscriptionLanguages(name), code) {
			return code
		}
		return ""
	}
}

// SupportsTranscriptionLanguage reports whether an ISO 639-1 hint is usable with the provider
func SupportsTranscriptionLanguage(name, code string) bool {
	return code == "" || ToProviderLanguage(name, code) != ""
}
