package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/muesli/termenv"

	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/pipeline"
)

// Translator is the part of the pipeline the shell drives
type Translator interface {
	Translate(ctx context.Context, text, target string) pipeline.Result
	TranslateSpeech(ctx context.Context, path, target string) pipeline.Result
	SpeechEnabled() bool
}

// Mode selects the input the shell collects
type Mode string

const (
	ModeText   Mode = "text"
	ModeSpeech Mode = "speech"
	ModeQuit   Mode = "quit"
)

type shellState struct {
	mode   Mode
	input  string
	target string
}

// RunShell runs the interactive translate loop until the user quits or ctx ends
func RunShell(ctx context.Context, t Translator) error {
	state := &shellState{mode: ModeText, target: language.DefaultName}

	for ctx.Err() == nil {
		clearScreen()
		fmt.Println(Logo())
		fmt.Println()

		if err := selectMode(state, t.SpeechEnabled()); err != nil {
			return ignoreAbort(err)
		}
		if state.mode == ModeQuit {
			return nil
		}

		if err := inputForm(state).Run(); err != nil {
			return ignoreAbort(err)
		}

		var result pipeline.Result
		action := func() {
			switch state.mode {
			case ModeSpeech:
				result = t.TranslateSpeech(ctx, strings.TrimSpace(state.input), state.target)
			default:
				result = t.Translate(ctx, state.input, state.target)
			}
		}
		if err := spinner.New().Title("Translating to " + state.target + "...").Action(action).Run(); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(RenderResult(result))
		fmt.Println()

		again := true
		confirm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Translate something else?").
					Affirmative("Yes").
					Negative("Quit").
					Value(&again),
			),
		).WithTheme(getTheme())

		if err := confirm.Run(); err != nil || !again {
			return ignoreAbort(err)
		}
		state.input = ""
	}
	return ctx.Err()
}

func selectMode(state *shellState, speech bool) error {
	options := []huh.Option[Mode]{huh.NewOption("Type text", ModeText)}
	if speech {
		options = append(options, huh.NewOption("Translate an audio file", ModeSpeech))
	}
	options = append(options, huh.NewOption("Quit", ModeQuit))

	if !speech && state.mode == ModeSpeech {
		state.mode = ModeText
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Mode]().
				Title("Input").
				Description("↑/↓ navigate • enter select • esc quit").
				Options(options...).
				Value(&state.mode),
		),
	).WithTheme(getTheme()).Run()
}

func inputForm(state *shellState) *huh.Form {
	var input huh.Field
	if state.mode == ModeSpeech {
		input = huh.NewInput().
			Title("Audio file").
			Description("WAV, MP3, M4A, OGG, FLAC or WEBM").
			Placeholder("/path/to/recording.wav").
			Validate(validateAudioPath).
			Value(&state.input)
	} else {
		input = huh.NewText().
			Title("Text to translate").
			CharLimit(5000).
			Value(&state.input)
	}

	return huh.NewForm(
		huh.NewGroup(
			input,
			huh.NewSelect[string]().
				Title("Target language").
				Options(languageOptions()...).
				Height(10).
				Value(&state.target),
		),
	).WithTheme(getTheme())
}

func languageOptions() []huh.Option[string] {
	names := language.Names()
	options := make([]huh.Option[string], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, name)
	}
	return options
}

func validateAudioPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func ignoreAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

func clearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
}
