package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/artifact"
	"github.com/leonardotrapani/voxlate/internal/detect"
	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/logging"
	"github.com/leonardotrapani/voxlate/internal/synth"
	"github.com/leonardotrapani/voxlate/internal/transcriber"
	"github.com/leonardotrapani/voxlate/internal/translate"
)

type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// ErrorLabel takes the place of the detected language in error outcomes
const ErrorLabel = "Error"

const (
	MsgNoText              = "No text provided"
	MsgTranslateFailedPfx  = "Could not translate: "
	MsgSpeechNotConfigured = "Speech input is not configured"
)

// Result is the outcome of one request: success with text (and maybe audio),
// or an error message with nothing else.
type Result struct {
	Status           Status
	DetectedLanguage string
	TranslatedText   string
	Audio            *artifact.Artifact
	Transcript       string
	Error            string
}

func errorResult(msg string) Result {
	return Result{Status: StatusError, Error: msg}
}

func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Label returns the detected language, or ErrorLabel for error outcomes
func (r Result) Label() string {
	if r.Status == StatusError {
		return ErrorLabel
	}
	return r.DetectedLanguage
}

// Message returns the translated text, or the error message for error outcomes
func (r Result) Message() string {
	if r.Status == StatusError {
		return r.Error
	}
	return r.TranslatedText
}

// AudioPath returns the path of the synthesized audio, or "" if there is none
func (r Result) AudioPath() string {
	if r.Audio == nil {
		return ""
	}
	return r.Audio.Path
}

// Detector identifies the language of a text
type Detector interface {
	Detect(text string) detect.Result
}

// SpeechTranscriber turns an audio file into text or a named failure
type SpeechTranscriber interface {
	Transcribe(ctx context.Context, path string) transcriber.Result
}

// AudioStore receives synthesized audio
type AudioStore interface {
	Create(format string, write func(w io.Writer) error) (artifact.Artifact, error)
}

// Deps are the collaborators of a Pipeline. Synthesizer, Store and
// Transcriber are optional.
type Deps struct {
	Detector    Detector
	Translator  translate.Translator
	Synthesizer synth.Synthesizer
	Store       AudioStore
	Transcriber SpeechTranscriber
	Logger      *logrus.Logger
}

// Pipeline orchestrates detection, translation and synthesis for one utterance.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	detector    Detector
	translator  translate.Translator
	synthesizer synth.Synthesizer
	store       AudioStore
	transcriber SpeechTranscriber
	logger      *logrus.Logger
}

func New(deps Deps) *Pipeline {
	detector := deps.Detector
	if detector == nil {
		detector = detect.New(nil, deps.Logger)
	}
	return &Pipeline{
		detector:    detector,
		translator:  deps.Translator,
		synthesizer: deps.Synthesizer,
		store:       deps.Store,
		transcriber: deps.Transcriber,
		logger:      logging.OrDefault(deps.Logger),
	}
}

// SpeechEnabled reports whether TranslateSpeech can transcribe
func (p *Pipeline) SpeechEnabled() bool {
	return p.transcriber != nil
}

// CheckHealth probes the translation backend when it supports health checks
func (p *Pipeline) CheckHealth(ctx context.Context) error {
	if p.translator == nil {
		return errors.New("no translation engine configured")
	}
	if hc, ok := p.translator.(translate.HealthChecker); ok {
		return hc.CheckHealth(ctx)
	}
	return nil
}

// Detect exposes the pipeline's detector
func (p *Pipeline) Detect(text string) detect.Result {
	return p.detector.Detect(text)
}

// Translate detects the language of text, translates it to the target
// language name and speaks the result when the target can be synthesized.
func (p *Pipeline) Translate(ctx context.Context, text, target string) Result {
	start := time.Now()
	result := p.translate(ctx, text, target)
	observeRequest("text", result, time.Since(start))
	return result
}

func (p *Pipeline) translate(ctx context.Context, text, target string) Result {
	if strings.TrimSpace(text) == "" {
		return errorResult(MsgNoText)
	}

	source := p.detector.Detect(text)
	if source.IsFallback() {
		detectionFallbacks.Inc()
	}
	targetTag := language.TranslationTag(target)

	log := p.logger.WithFields(logrus.Fields{
		"source_tag": source.Tag,
		"target_tag": targetTag,
		"target":     target,
	})
	if target != "" && !language.IsValidName(target) {
		log.Warn("Unknown target language, translating to English")
	}

	if p.translator == nil {
		log.Error("No translation engine configured")
		return errorResult(MsgTranslateFailedPfx + "no translation engine configured")
	}

	translated, err := p.translator.Translate(ctx, text, source.Tag, targetTag)
	if err != nil {
		log.WithError(err).Warn("Translation failed")
		return errorResult(MsgTranslateFailedPfx + err.Error())
	}
	if strings.TrimSpace(translated) == "" {
		log.Warn("Translation returned empty text")
		return errorResult(MsgTranslateFailedPfx + "empty translation")
	}

	result := Result{
		Status:           StatusOK,
		DetectedLanguage: source.Name,
		TranslatedText:   translated,
	}
	result.Audio = p.synthesize(ctx, translated, target, log)

	log.WithField("audio", result.Audio != nil).Info("Translation completed")
	return result
}

// synthesize returns nil when the target has no synthesis code, when no
// synthesizer is configured, or when synthesis fails.
func (p *Pipeline) synthesize(ctx context.Context, text, target string, log *logrus.Entry) *artifact.Artifact {
	code, ok := language.SynthesisCode(target)
	if !ok {
		synthesisTotal.WithLabelValues("skipped").Inc()
		return nil
	}
	if p.synthesizer == nil || p.store == nil {
		synthesisTotal.WithLabelValues("disabled").Inc()
		return nil
	}

	a, err := p.store.Create(p.synthesizer.Format(), func(w io.Writer) error {
		return p.synthesizer.Synthesize(ctx, text, code, w)
	})
	if err != nil {
		synthesisTotal.WithLabelValues("failed").Inc()
		log.WithError(err).WithField("synthesis_code", code).Warn("Speech synthesis failed, returning text only")
		return nil
	}

	synthesisTotal.WithLabelValues("ok").Inc()
	return &a
}

// TranslateSpeech transcribes the audio file at path and translates the
// transcript. Transcription failures end the request with their diagnostic
// message before any detection or translation.
func (p *Pipeline) TranslateSpeech(ctx context.Context, path, target string) Result {
	start := time.Now()
	result := p.translateSpeech(ctx, path, target)
	observeRequest("speech", result, time.Since(start))
	return result
}

func (p *Pipeline) translateSpeech(ctx context.Context, path, target string) Result {
	if p.transcriber == nil {
		return errorResult(MsgSpeechNotConfigured)
	}

	transcript := p.transcriber.Transcribe(ctx, path)
	transcriptionsTotal.WithLabelValues(transcript.Failure.String()).Inc()
	if !transcript.OK() {
		p.logger.WithFields(logrus.Fields{
			"path":    path,
			"failure": transcript.Failure.String(),
		}).Info("Transcription failed, skipping translation")
		return errorResult(transcript.Message())
	}

	result := p.translate(ctx, transcript.Text, target)
	result.Transcript = transcript.Text
	return result
}
