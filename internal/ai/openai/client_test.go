package openai

import (
	"context"
	"errors"
	"net/http"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
)

type fakeChat struct {
	requests  []goopenai.ChatCompletionRequest
	responses []goopenai.ChatCompletionResponse
	errs      []error
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	i := len(f.requests)
	f.requests = append(f.requests, req)
	if i < len(f.errs) && f.errs[i] != nil {
		return goopenai.ChatCompletionResponse{}, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return goopenai.ChatCompletionResponse{}, errors.New("unexpected call")
}

func reply(text string) goopenai.ChatCompletionResponse {
	return goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{{Message: goopenai.ChatCompletionMessage{Content: text}}},
	}
}

func newTestClient(chat chatClient, maxRetries int) *Client {
	return &Client{chat: chat, model: "test-model", maxRetries: maxRetries, logger: zap.NewNop()}
}

func TestCompleteBuildsRequest(t *testing.T) {
	chat := &fakeChat{responses: []goopenai.ChatCompletionResponse{reply("  {\"ok\": true}  ")}}

	out, err := newTestClient(chat, 1).Complete(context.Background(), ai.Request{
		Operation: ai.OperationAnalyzeKeywords,
		System:    "be precise",
		Prompt:    "analyse this",
		JSON:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)

	require.Len(t, chat.requests, 1)
	req := chat.requests[0]
	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, goopenai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "be precise", req.Messages[0].Content)
	assert.Equal(t, goopenai.ChatMessageRoleUser, req.Messages[1].Role)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, goopenai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)
}

func TestCompleteWithoutSystemOrJSON(t *testing.T) {
	chat := &fakeChat{responses: []goopenai.ChatCompletionResponse{reply("plain")}}

	out, err := newTestClient(chat, 1).Complete(context.Background(), ai.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "plain", out)
	assert.Len(t, chat.requests[0].Messages, 1)
	assert.Nil(t, chat.requests[0].ResponseFormat)
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	chat := &fakeChat{
		errs:      []error{&goopenai.APIError{HTTPStatusCode: http.StatusBadGateway}},
		responses: []goopenai.ChatCompletionResponse{{}, reply("second")},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := newTestClient(chat, 2).Complete(ctx, ai.Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "second", out)
	assert.Len(t, chat.requests, 2)
}

func TestCompleteStopsOnClientError(t *testing.T) {
	chat := &fakeChat{errs: []error{&goopenai.APIError{HTTPStatusCode: http.StatusUnauthorized}}}

	_, err := newTestClient(chat, 3).Complete(context.Background(), ai.Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Len(t, chat.requests, 1)
}

func TestCompleteRetryHonoursContext(t *testing.T) {
	chat := &fakeChat{errs: []error{&goopenai.RequestError{HTTPStatusCode: http.StatusTooManyRequests, Err: errors.New("slow down")}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(chat, 3).Complete(ctx, ai.Request{Prompt: "hi"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, chat.requests, 1)
}

func TestCompleteEmptyInputAndOutput(t *testing.T) {
	chat := &fakeChat{responses: []goopenai.ChatCompletionResponse{{}}}
	c := newTestClient(chat, 1)

	_, err := c.Complete(context.Background(), ai.Request{Prompt: " "})
	assert.EqualError(t, err, "prompt must not be empty")

	_, err = c.Complete(context.Background(), ai.Request{Prompt: "hi"})
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestNewValidatesKey(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)

	c, err := New(Config{APIKey: "sk-test", BaseURL: "http://localhost:11434/v1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultModel, c.Model())
	assert.Equal(t, defaultMaxRetries, c.maxRetries)
}
