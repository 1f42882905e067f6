package tui

import (
	"fmt"
	"strings"

	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/pipeline"
)

// RenderResult formats a pipeline outcome as a bordered panel
func RenderResult(r pipeline.Result) string {
	if !r.OK() {
		return StyleErrorBox.Render(StyleError.Render(r.Label()) + "\n" + r.Message())
	}

	var b strings.Builder
	if r.Transcript != "" {
		fmt.Fprintf(&b, "%s %s\n", StyleLabel.Render("Heard:"), r.Transcript)
	}
	fmt.Fprintf(&b, "%s %s\n", StyleLabel.Render("Detected:"), r.Label())
	fmt.Fprintf(&b, "%s %s\n", StyleLabel.Render("Translation:"), StyleSuccess.Render(r.Message()))

	if path := r.AudioPath(); path != "" {
		fmt.Fprintf(&b, "%s %s", StyleLabel.Render("Audio:"), path)
	} else {
		fmt.Fprintf(&b, "%s %s", StyleLabel.Render("Audio:"), StyleMuted.Render("none"))
	}

	return StyleBox.Render(b.String())
}

// RenderLanguages lists registry entries one per line with their codes
func RenderLanguages(entries []language.Entry) string {
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}

	var b strings.Builder
	for _, e := range entries {
		synthesis := e.SynthesisCode
		if synthesis == "" {
			synthesis = "-"
		}
		fmt.Fprintf(&b, "%-*s  %-6s  %s\n", width, e.Name, synthesis, e.TranslationTag)
	}
	return b.String()
}
