// Package openai adapts OpenAI-compatible chat completion endpoints to
// ai.Completer.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/utils"
)

const (
	defaultModel      = goopenai.GPT3Dot5Turbo
	defaultMaxRetries = 3
	providerName      = "openai"

	baseRetryDelay = time.Second
	maxRetryDelay  = 20 * time.Second
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Config configures the completer.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// MaxRetries is the total number of attempts per request.
	MaxRetries int
}

// Client sends prompts to an OpenAI-compatible chat completion API.
type Client struct {
	chat       chatClient
	model      string
	maxRetries int
	logger     *zap.Logger
}

var _ ai.Completer = (*Client)(nil)

// New creates a Client. BaseURL may point at any OpenAI-compatible server.
func New(cfg Config, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	clientCfg := goopenai.DefaultConfig(apiKey)
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		clientCfg.BaseURL = baseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Client{
		chat:       goopenai.NewClientWithConfig(clientCfg),
		model:      model,
		maxRetries: maxRetries,
		logger:     logger.ForCall(log, logger.Call{Provider: providerName, Model: model}),
	}, nil
}

// Complete implements ai.Completer.
func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	if c == nil || c.chat == nil {
		return "", errors.New("openai client is not initialized")
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if system := strings.TrimSpace(req.System); system != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: system})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: prompt})

	request := goopenai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	}
	if req.JSON {
		request.ResponseFormat = &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject}
	}

	log := logger.ForCall(c.logger, logger.Call{Operation: req.Operation})

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.chat.CreateChatCompletion(ctx, request)
		if err == nil {
			return responseText(resp)
		}
		lastErr = fmt.Errorf("create chat completion: %w", err)

		if !retryable(err) || attempt == c.maxRetries {
			break
		}

		delay := utils.Backoff(baseRetryDelay, maxRetryDelay, attempt)
		log.Warn("openai request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := utils.WaitFor(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

func responseText(resp goopenai.ChatCompletionResponse) (string, error) {
	for _, choice := range resp.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, nil
		}
	}
	return "", ai.ErrEmptyResponse
}

func retryable(err error) bool {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}
	return false
}

// Model returns the configured model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
