package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultNLLBURL is the Hugging Face inference API root
	DefaultNLLBURL = "https://api-inference.huggingface.co"
	// DefaultNLLBModel is the distilled 600M NLLB-200 checkpoint
	DefaultNLLBModel = "facebook/nllb-200-distilled-600M"
	// DefaultNLLBTimeout covers cold model loads on the inference API
	DefaultNLLBTimeout = 2 * time.Minute
)

// NLLBClient implements Translator against an NLLB-200 model served by a
// Hugging Face compatible inference endpoint. Tags are passed through unchanged.
type NLLBClient struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewNLLBClient creates a new NLLB client
func NewNLLBClient(baseURL, model, apiKey string, timeout time.Duration, logger *logrus.Logger) *NLLBClient {
	if baseURL == "" {
		baseURL = DefaultNLLBURL
	}
	if model == "" {
		model = DefaultNLLBModel
	}
	if timeout <= 0 {
		timeout = DefaultNLLBTimeout
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &NLLBClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type nllbParameters struct {
	SrcLang string `json:"src_lang"`
	TgtLang string `json:"tgt_lang"`
}

type nllbRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters nllbParameters `json:"parameters"`
}

type nllbResponse struct {
	TranslationText string `json:"translation_text"`
}

type nllbErrorResponse struct {
	Error string `json:"error"`
}

// Translate sends text to the model endpoint
func (c *NLLBClient) Translate(ctx context.Context, text, sourceTag, targetTag string) (string, error) {
	c.logger.WithFields(logrus.Fields{
		"source_tag":  sourceTag,
		"target_tag":  targetTag,
		"text_length": len(text),
	}).Debug("Translating text with NLLB")

	buf := new(bytes.Buffer)
	payload := nllbRequest{
		Inputs:     text,
		Parameters: nllbParameters{SrcLang: sourceTag, TgtLang: targetTag},
	}
	if err := json.NewEncoder(buf).Encode(&payload); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := c.modelURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", url).Error("Translation request failed")
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	duration := time.Since(start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"duration_ms": duration.Milliseconds(),
		}).Error("Translation request returned non-OK status")
		var apiErr nllbErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return "", &StatusError{StatusCode: resp.StatusCode, Body: apiErr.Error}
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var results []nllbResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("decode response: no translations returned")
	}

	c.logger.WithFields(logrus.Fields{
		"source_tag":  sourceTag,
		"target_tag":  targetTag,
		"duration_ms": duration.Milliseconds(),
	}).Info("Translation completed successfully")

	return results[0].TranslationText, nil
}

// CheckHealth verifies the model endpoint answers
func (c *NLLBClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelURL(), nil)
	if err != nil {
		return fmt.Errorf("create health check request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	// the inference API answers GET on a model with 405 when the model exists
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *NLLBClient) modelURL() string {
	return c.baseURL + "/models/" + c.model
}
