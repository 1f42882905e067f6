package language

import (
	"fmt"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Label returns a human-readable label for a language code.
// Example: "es" -> "Spanish (es)", "zh-TW" -> "Chinese (Taiwan) (zh-TW)".
func Label(code string) string {
	if code == "" {
		return ""
	}

	normalized := strings.ReplaceAll(code, "_", "-")
	tag, err := xlanguage.Parse(normalized)
	if err != nil {
		return fmt.Sprintf("language '%s'", code)
	}

	name := display.English.Tags().Name(tag)
	if name == "" || strings.EqualFold(name, code) {
		return fmt.Sprintf("language '%s'", code)
	}

	return fmt.Sprintf("%s (%s)", name, code)
}

// NameForTag returns an English name for a translation tag such as "fra_Latn".
// Registry names win; otherwise the CLDR display name is used, or the tag itself.
func NameForTag(tag string) string {
	for _, e := range entries {
		if e.TranslationTag == tag {
			return e.Name
		}
	}

	parsed, err := xlanguage.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return tag
	}
	if name := display.English.Tags().Name(parsed); name != "" {
		return name
	}
	return tag
}
