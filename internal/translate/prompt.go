package translate

import (
	"fmt"
	"strings"

	"github.com/leonardotrapani/voxlate/internal/language"
)

// BuildSystemPrompt generates the system prompt for a translation request
func BuildSystemPrompt(sourceTag, targetTag string, glossary []string) string {
	source := language.NameForTag(sourceTag)
	target := language.NameForTag(targetTag)

	prompt := fmt.Sprintf("You are a translation engine. Translate the user's text from %s to %s.\n\n", source, target)
	prompt += "Rules:\n"
	prompt += "- Preserve the original meaning, tone and formatting\n"
	prompt += fmt.Sprintf("- If the text is already in %s, return it unchanged\n", target)
	prompt += "- Do not explain, annotate or add quotes\n"
	prompt += "- Output ONLY the translated text, nothing else\n"

	if len(glossary) > 0 {
		prompt += fmt.Sprintf("\nKeep these terms untranslated: %s\n", strings.Join(glossary, ", "))
	}

	return prompt
}

// BuildUserPrompt generates the user prompt with the text to translate
func BuildUserPrompt(text string, customPrompt string) string {
	if customPrompt != "" {
		return fmt.Sprintf("%s\n\nText to translate:\n%s", customPrompt, text)
	}
	return text
}
