package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/artifact"
	"github.com/leonardotrapani/voxlate/internal/logging"
	"github.com/leonardotrapani/voxlate/internal/pipeline"
)

// AudioFiles serves and releases synthesized audio
type AudioFiles interface {
	Get(id string) (artifact.Artifact, error)
	Remove(id string) error
}

type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
}

// Server exposes the translation pipeline over HTTP
type Server struct {
	pipeline atomic.Pointer[pipeline.Pipeline]
	audio    AudioFiles
	config   Config
	logger   *logrus.Logger
	http     *http.Server
}

func New(cfg Config, p *pipeline.Pipeline, audio AudioFiles, logger *logrus.Logger) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 25 << 20
	}

	s := &Server{
		audio:  audio,
		config: cfg,
		logger: logging.OrDefault(logger),
	}
	s.pipeline.Store(p)

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// SetPipeline swaps the pipeline used by subsequent requests
func (s *Server) SetPipeline(p *pipeline.Pipeline) {
	s.pipeline.Store(p)
	s.logger.Info("Pipeline replaced")
}

func (s *Server) current() *pipeline.Pipeline {
	return s.pipeline.Load()
}

// Handler returns the routed handler wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/translate", s.handleTranslate)
	mux.HandleFunc("POST /api/v1/translate/speech", s.handleTranslateSpeech)
	mux.HandleFunc("GET /api/v1/languages", s.handleLanguages)
	mux.HandleFunc("GET /api/v1/detect", s.handleDetect)
	mux.HandleFunc("GET /api/v1/audio/{id}", s.handleAudioGet)
	mux.HandleFunc("DELETE /api/v1/audio/{id}", s.handleAudioDelete)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(s.logger, mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.config.Addr).Info("Starting HTTP server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.WithError(err).Warn("Graceful shutdown failed, closing")
		return s.http.Close()
	}
	return nil
}

func loggingMiddleware(logger *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("HTTP request")
	})
}

// responseWrapper captures the status code written by a handler
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
