package llms

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/aifirst/llmdemos/config"
)

// NewOpenAIClient builds an OpenAI SDK client for the given key. Requests go
// through a retryable HTTP client configured from cfg.LLM.
func NewOpenAIClient(apiKey string, cfg *config.Config) *openai.Client {
	timeout := cfg.LLM.Timeout
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	retryableHTTPClient := NewRetryableHTTPClient(cfg.LLM.MaxRetries, timeout)

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.HTTPClient = retryableHTTPClient.StandardClient()
	if cfg.LLM.OpenAIEndpoint != "" {
		clientConfig.BaseURL = cfg.LLM.OpenAIEndpoint
	}

	return openai.NewClientWithConfig(clientConfig)
}
