package testutil

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/leonardotrapani/voxlate/internal/config"
	"github.com/leonardotrapani/voxlate/internal/detect"
	"github.com/leonardotrapani/voxlate/internal/transcriber"
)

// TestConfig returns a valid configuration for testing
func TestConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Transcription.Provider = "openai"
	cfg.Providers["openai"] = config.ProviderConfig{APIKey: "sk-test"}
	return cfg
}

// CreateTempConfigFile creates a temporary config file for testing
func CreateTempConfigFile(t *testing.T, configContent string) string {
	t.Helper()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// TestContext returns a context with timeout for testing
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// WAV encodes 16 kHz mono 16-bit samples as a WAV file
func WAV(samples []int16) []byte {
	var buf bytes.Buffer
	dataSize := len(samples) * 2

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(16000))
	binary.Write(&buf, binary.LittleEndian, uint32(32000))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	binary.Write(&buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// ToneSamples returns n samples alternating between +amp and -amp
func ToneSamples(n int, amp int16) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = amp
		} else {
			samples[i] = -amp
		}
	}
	return samples
}

// WriteWAV writes a WAV fixture into a temp dir and returns its path
func WriteWAV(t *testing.T, samples []int16) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, WAV(samples), 0644); err != nil {
		t.Fatalf("Failed to write WAV fixture: %v", err)
	}
	return path
}

// MockIdentifier implements detect.Identifier for testing
type MockIdentifier struct {
	Code string
	OK   bool
}

func (m MockIdentifier) Identify(string) (string, bool) {
	return m.Code, m.OK
}

// MockDetector implements a fixed-result detector for testing
type MockDetector struct {
	Result detect.Result

	mu    sync.Mutex
	Calls int
}

func NewMockDetector(tag, name string) *MockDetector {
	return &MockDetector{Result: detect.Result{Tag: tag, Name: name}}
}

func (m *MockDetector) Detect(string) detect.Result {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	return m.Result
}

// TranslateCall records one translator invocation
type TranslateCall struct {
	Text      string
	SourceTag string
	TargetTag string
}

// MockTranslator implements translate.Translator for testing
type MockTranslator struct {
	Translation string
	Err         error

	mu    sync.Mutex
	calls []TranslateCall
}

func NewMockTranslator(translation string) *MockTranslator {
	return &MockTranslator{Translation: translation}
}

func (m *MockTranslator) Translate(ctx context.Context, text, sourceTag, targetTag string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, TranslateCall{Text: text, SourceTag: sourceTag, TargetTag: targetTag})
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Translation, nil
}

func (m *MockTranslator) Calls() []TranslateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]TranslateCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// MockSynthesizer implements synth.Synthesizer for testing
type MockSynthesizer struct {
	Audio []byte
	Err   error

	mu    sync.Mutex
	Codes []string
}

func NewMockSynthesizer(audio string) *MockSynthesizer {
	return &MockSynthesizer{Audio: []byte(audio)}
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text, code string, w io.Writer) error {
	m.mu.Lock()
	m.Codes = append(m.Codes, code)
	m.mu.Unlock()
	if m.Err != nil {
		// partial output that the store must discard
		w.Write([]byte("partial"))
		return m.Err
	}
	_, err := w.Write(m.Audio)
	return err
}

func (m *MockSynthesizer) Format() string { return "mp3" }

func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Codes)
}

// MockTranscriber implements a fixed-result speech transcriber for testing
type MockTranscriber struct {
	Result transcriber.Result

	mu    sync.Mutex
	Paths []string
}

func NewMockTranscriber(text string) *MockTranscriber {
	return &MockTranscriber{Result: transcriber.Result{Text: text}}
}

func NewFailingTranscriber(failure transcriber.Failure) *MockTranscriber {
	return &MockTranscriber{Result: transcriber.Result{Failure: failure}}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, path string) transcriber.Result {
	m.mu.Lock()
	m.Paths = append(m.Paths, path)
	m.mu.Unlock()
	return m.Result
}

// MockTranscriberAdapter implements transcriber.Adapter for testing
type MockTranscriberAdapter struct {
	TranscribeFunc func(ctx context.Context, audioData []byte, filename string) (string, error)
}

func (m *MockTranscriberAdapter) Transcribe(ctx context.Context, audioData []byte, filename string) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audioData, filename)
	}
	return "mock transcription", nil
}
