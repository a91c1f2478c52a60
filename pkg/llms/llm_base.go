package llms

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	openai "github.com/sashabaranov/go-openai"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/models"
)

const (
	OpenAIService          = "openai"
	DefaultHTTPTimeout     = 90 * time.Second
	ErrEmptyCompletionText = "chat completion returned no choices"
)

var log = internal.GetLogger()

// NewRetryableHTTPClient returns a retryablehttp client logging through
// logrus. retryMax of 0 sends every request exactly once.
func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *retryablehttp.Client {
	retryableHTTPClient := retryablehttp.NewClient()
	retryableHTTPClient.RetryMax = retryMax
	retryableHTTPClient.HTTPClient.Timeout = timeout
	retryableHTTPClient.Logger = internal.NewLeveledLogrus(log)
	retryableHTTPClient.Backoff = retryablehttp.DefaultBackoff
	retryableHTTPClient.CheckRetry = retryPolicy
	// return the last response instead of a generic "giving up" error so the
	// caller can decode the upstream error body
	retryableHTTPClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return retryableHTTPClient
}

// retryPolicy is a retryablehttp.CheckRetry function. It is used to determine
// whether a request should be retried or not.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	// do not retry on context.Canceled or context.DeadlineExceeded
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// Do not retry 400 errors as they're used by OpenAI to indicate maximum
	// context length exceeded
	if resp != nil && resp.StatusCode == http.StatusBadRequest {
		return false, err
	}

	shouldRetry, _ := retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	return shouldRetry, nil
}

// wrapOpenAIError converts an error returned by the OpenAI SDK into a
// *models.APIError carrying the upstream status code when there is one.
func wrapOpenAIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return models.NewAPIError(OpenAIService, apiErr.HTTPStatusCode, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return models.NewAPIError(OpenAIService, reqErr.HTTPStatusCode, err)
	}

	return models.NewAPIError(OpenAIService, 0, err)
}

func toOpenAIMessages(messages []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return out
}
