package llms

import (
	"context"
	"errors"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/timeout"
	openai "github.com/sashabaranov/go-openai"

	"github.com/aifirst/llmdemos/config"
	"github.com/aifirst/llmdemos/pkg/models"
)

var _ models.ChatClient = &OpenAIChat{}

// OpenAIChat runs chat completions against the OpenAI API. Every call is
// bounded by a failsafe timeout policy.
type OpenAIChat struct {
	client  *openai.Client
	model   string
	timeout timeout.Timeout[openai.ChatCompletionResponse]
}

func NewOpenAIChat(client *openai.Client, cfg *config.Config) *OpenAIChat {
	limit := cfg.LLM.Timeout
	if limit <= 0 {
		limit = DefaultHTTPTimeout
	}
	return &OpenAIChat{
		client:  client,
		model:   cfg.LLM.Model,
		timeout: timeout.With[openai.ChatCompletionResponse](limit),
	}
}

func (c *OpenAIChat) Complete(ctx context.Context, request models.ChatRequest) (string, error) {
	if len(request.Messages) == 0 {
		return "", models.NewValidationError("chat request has no messages", nil)
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(request.Messages),
		Temperature: request.Temperature,
		MaxTokens:   request.MaxTokens,
		TopP:        request.TopP,
	}

	started := time.Now()
	resp, err := failsafe.NewExecutor[openai.ChatCompletionResponse](c.timeout).
		WithContext(ctx).
		GetWithExecution(func(exec failsafe.Execution[openai.ChatCompletionResponse]) (openai.ChatCompletionResponse, error) {
			return c.client.CreateChatCompletion(exec.Context(), req)
		})
	if err != nil {
		if errors.Is(err, timeout.ErrExceeded) {
			return "", models.NewAPIError(OpenAIService, 0, err)
		}
		return "", wrapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", models.NewAPIError(OpenAIService, 0, errors.New(ErrEmptyCompletionText))
	}

	log.WithFields(map[string]interface{}{
		"model":             c.model,
		"messages":          len(request.Messages),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"elapsed":           time.Since(started).String(),
	}).Debug("chat completion")

	return resp.Choices[0].Message.Content, nil
}
