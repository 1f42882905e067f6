package synth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// maxChunkRunes is the longest text the translate TTS endpoint accepts per request
const maxChunkRunes = 100

// GoogleSynthesizer speaks text through the Google Translate TTS endpoint
type GoogleSynthesizer struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewGoogleSynthesizer creates a synthesizer; baseURL is e.g. "https://translate.google.com"
func NewGoogleSynthesizer(baseURL string, timeout time.Duration, logger *logrus.Logger) *GoogleSynthesizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &GoogleSynthesizer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (g *GoogleSynthesizer) Format() string { return "mp3" }

// Synthesize fetches one MP3 segment per chunk and writes them to w in order
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text, code string, w io.Writer) error {
	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return ErrEmptyText
	}
	if code == "" {
		return fmt.Errorf("synthesis language code required")
	}

	start := time.Now()
	for i, chunk := range chunks {
		if err := g.fetchChunk(ctx, chunk, code, i, len(chunks), w); err != nil {
			return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}

	g.logger.WithFields(logrus.Fields{
		"lang":        code,
		"chunks":      len(chunks),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Speech synthesized")
	return nil
}

func (g *GoogleSynthesizer) fetchChunk(ctx context.Context, chunk, code string, idx, total int, w io.Writer) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", chunk)
	params.Set("tl", code)
	params.Set("client", "tw-ob")
	params.Set("total", strconv.Itoa(total))
	params.Set("idx", strconv.Itoa(idx))
	params.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/translate_tts?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("empty audio response")
	}
	return nil
}

// splitText breaks text into chunks of at most limit runes, preferring whitespace
// boundaries. Words longer than limit are cut.
func splitText(text string, limit int) []string {
	words := strings.FieldsFunc(text, unicode.IsSpace)
	var chunks []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, word := range words {
		r := []rune(word)
		for len(r) > limit {
			flush()
			chunks = append(chunks, string(r[:limit]))
			r = r[limit:]
		}
		if len(current) > 0 && len(current)+1+len(r) > limit {
			flush()
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, r...)
	}
	flush()
	return chunks
}
