package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ElevenLabsAdapter implements Adapter for the ElevenLabs Scribe API
type ElevenLabsAdapter struct {
	client  *http.Client
	baseURL string
	config  Config
}

// ElevenLabsResponse represents the API response
type ElevenLabsResponse struct {
	Text string `json:"text"`
}

// NewElevenLabsAdapter creates an adapter for ElevenLabs Scribe.
// baseURL is the API root (e.g., "https://api.elevenlabs.io").
func NewElevenLabsAdapter(config Config, baseURL string) *ElevenLabsAdapter {
	return &ElevenLabsAdapter{
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		config:  config,
	}
}

// Transcribe sends audio to ElevenLabs for transcription
func (a *ElevenLabsAdapter) Transcribe(ctx context.Context, audioData []byte, filename string) (string, error) {
	if len(audioData) == 0 {
		return "", ErrNoSpeech
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, bytes.NewReader(audioData)); err != nil {
		return "", fmt.Errorf("copy audio data: %w", err)
	}

	if err := writer.WriteField("model_id", a.config.Model); err != nil {
		return "", fmt.Errorf("write model_id: %w", err)
	}

	if a.config.Language != "" {
		if err := writer.WriteField("language_code", a.config.Language); err != nil {
			return "", fmt.Errorf("write language_code: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	url := a.baseURL + "/v1/speech-to-text"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", a.config.APIKey)

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("elevenlabs request after %v: %w", time.Since(start), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var result ElevenLabsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if strings.TrimSpace(result.Text) == "" {
		return "", ErrNoSpeech
	}
	return result.Text, nil
}
