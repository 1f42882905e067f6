package translate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// ChatClient implements Translator using an OpenAI-compatible chat completions API
// (OpenAI, Groq).
type ChatClient struct {
	client       *openai.Client
	name         string
	model        string
	glossary     []string
	customPrompt string
	logger       *logrus.Logger
}

// NewChatClient creates a chat translator; baseURL is the API root including the version
func NewChatClient(name string, cfg Config) *ChatClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &ChatClient{
		client:       openai.NewClientWithConfig(clientConfig),
		name:         name,
		model:        cfg.Model,
		glossary:     cfg.Glossary,
		customPrompt: cfg.CustomPrompt,
		logger:       logger,
	}
}

func (c *ChatClient) Translate(ctx context.Context, text, sourceTag, targetTag string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: BuildSystemPrompt(sourceTag, targetTag, c.glossary)},
			{Role: openai.ChatMessageRoleUser, Content: BuildUserPrompt(text, c.customPrompt)},
		},
		Temperature: 0.2,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"engine":      c.name,
			"duration_ms": duration.Milliseconds(),
		}).Error("Chat translation failed")
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s chat completion: no response choices", c.name)
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.WithFields(logrus.Fields{
		"engine":      c.name,
		"source_tag":  sourceTag,
		"target_tag":  targetTag,
		"duration_ms": duration.Milliseconds(),
	}).Info("Translation completed successfully")
	return result, nil
}
