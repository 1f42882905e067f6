package pipeline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/artifact"
	"github.com/leonardotrapani/voxlate/internal/config"
	"github.com/leonardotrapani/voxlate/internal/detect"
	"github.com/leonardotrapani/voxlate/internal/logging"
	"github.com/leonardotrapani/voxlate/internal/synth"
	"github.com/leonardotrapani/voxlate/internal/transcriber"
	"github.com/leonardotrapani/voxlate/internal/translate"
)

// NewDetector builds the lingua-backed detector described by cfg.
// It is expensive and meant to be built once per process.
func NewDetector(cfg *config.Config, logger *logrus.Logger) *detect.Detector {
	return detect.New(detect.NewLinguaIdentifier(cfg.ToLinguaConfig()), logger)
}

// OpenStore opens the artifact store described by cfg and drops files that
// earlier runs left past their ttl.
func OpenStore(cfg *config.Config, logger *logrus.Logger) (*artifact.Store, error) {
	store, err := artifact.Open(cfg.Audio.Dir, cfg.Audio.TTL, cfg.Audio.MaxFiles, logger)
	if err != nil {
		return nil, err
	}
	if n := store.Sweep(time.Now()); n > 0 {
		logging.OrDefault(logger).WithField("removed", n).Debug("Removed stale artifacts")
	}
	return store, nil
}

// Build assembles a pipeline from cfg around a long-lived detector and store.
func Build(cfg *config.Config, detector Detector, store AudioStore, logger *logrus.Logger) (*Pipeline, error) {
	translator, err := translate.NewTranslator(cfg.ToTranslateConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("translation: %w", err)
	}

	synthesizer, err := synth.New(cfg.ToSynthConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}

	deps := Deps{
		Detector:    detector,
		Translator:  translator,
		Synthesizer: synthesizer,
		Store:       store,
		Logger:      logger,
	}

	if cfg.SpeechEnabled() {
		t, err := transcriber.New(cfg.ToTranscriberConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("transcription: %w", err)
		}
		deps.Transcriber = t
	}

	return New(deps), nil
}
