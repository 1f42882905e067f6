package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leonardotrapani/voxlate/internal/artifact"
	"github.com/leonardotrapani/voxlate/internal/language"
	"github.com/leonardotrapani/voxlate/internal/pipeline"
)

const audioRoute = "/api/v1/audio/"

// TranslateRequest is the body of POST /api/v1/translate
type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

// TranslateResponse carries a pipeline outcome. Error outcomes use
// "Error" as detected_language and repeat the message in error.
type TranslateResponse struct {
	DetectedLanguage string `json:"detected_language"`
	TranslatedText   string `json:"translated_text"`
	AudioURL         string `json:"audio_url,omitempty"`
	Transcript       string `json:"transcript,omitempty"`
	Error            string `json:"error,omitempty"`
}

type LanguageResponse struct {
	Name           string `json:"name"`
	SynthesisCode  string `json:"synthesis_code,omitempty"`
	TranslationTag string `json:"translation_tag"`
}

type DetectResponse struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(r pipeline.Result) TranslateResponse {
	resp := TranslateResponse{
		DetectedLanguage: r.Label(),
		TranslatedText:   r.Message(),
		Transcript:       r.Transcript,
	}
	if !r.OK() {
		resp.Error = r.Message()
	}
	if r.Audio != nil {
		resp.AudioURL = audioRoute + r.Audio.ID
	}
	return resp
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	body := http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := s.current().Translate(r.Context(), req.Text, req.TargetLanguage)
	writeJSON(w, http.StatusOK, toResponse(result))
}

func (s *Server) handleTranslateSpeech(w http.ResponseWriter, r *http.Request) {
	p := s.current()
	if !p.SpeechEnabled() {
		writeError(w, http.StatusServiceUnavailable, pipeline.MsgSpeechNotConfigured)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio file")
		return
	}
	defer file.Close()

	path, err := spoolUpload(file, header.Filename)
	if err != nil {
		s.logger.WithError(err).Error("Failed to store uploaded audio")
		writeError(w, http.StatusInternalServerError, "could not store uploaded audio")
		return
	}
	defer os.Remove(path)

	result := p.TranslateSpeech(r.Context(), path, r.FormValue("target_language"))
	writeJSON(w, http.StatusOK, toResponse(result))
}

// spoolUpload copies an upload into a temp file that keeps its extension,
// since the recognizer picks the container from the file name.
func spoolUpload(src io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	f, err := os.CreateTemp("", "voxlate-upload-*"+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	entries := language.List()
	resp := make([]LanguageResponse, len(entries))
	for i, e := range entries {
		resp[i] = LanguageResponse{
			Name:           e.Name,
			SynthesisCode:  e.SynthesisCode,
			TranslationTag: e.TranslationTag,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("text") {
		writeError(w, http.StatusBadRequest, "missing text parameter")
		return
	}

	result := s.current().Detect(r.URL.Query().Get("text"))
	writeJSON(w, http.StatusOK, DetectResponse{Tag: result.Tag, Name: result.Name})
}

func (s *Server) handleAudioGet(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookupAudio(w, r.PathValue("id"))
	if !ok {
		return
	}

	f, err := os.Open(a.Path)
	if err != nil {
		s.logger.WithError(err).WithField("id", a.ID).Warn("Audio file missing")
		writeError(w, http.StatusNotFound, "audio not found")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType(a.Format))
	http.ServeContent(w, r, filepath.Base(a.Path), a.CreatedAt, f)
}

func contentType(format string) string {
	if ct := mime.TypeByExtension("." + format); ct != "" {
		return ct
	}
	switch format {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}

func (s *Server) handleAudioDelete(w http.ResponseWriter, r *http.Request) {
	if s.audio == nil {
		writeError(w, http.StatusNotFound, "audio not found")
		return
	}

	if err := s.audio.Remove(r.PathValue("id")); err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			writeError(w, http.StatusNotFound, "audio not found")
			return
		}
		s.logger.WithError(err).Error("Failed to remove audio")
		writeError(w, http.StatusInternalServerError, "could not remove audio")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupAudio(w http.ResponseWriter, id string) (artifact.Artifact, bool) {
	if s.audio == nil {
		writeError(w, http.StatusNotFound, "audio not found")
		return artifact.Artifact{}, false
	}

	a, err := s.audio.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "audio not found")
		return artifact.Artifact{}, false
	}
	return a, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.current().CheckHealth(ctx); err != nil {
		s.logger.WithError(err).Warn("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "healthy",
		"speech_input": boolString(s.current().SpeechEnabled()),
	})
}

func boolString(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
