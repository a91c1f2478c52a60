package models

import "context"

type ChatRequest struct {
	Messages    []Message
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// ChatClient runs a single, non-streaming chat completion.
type ChatClient interface {
	Complete(ctx context.Context, request ChatRequest) (string, error)
}

type EmbeddingsClient interface {
	// EmbedText embeds a single string.
	EmbedText(ctx context.Context, text string) (Embedding, error)
	// EmbedTexts embeds every text; result i belongs to texts[i].
	EmbedTexts(ctx context.Context, texts []string) ([]Embedding, error)
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (SentimentResult, error)
}

type TokenCounter interface {
	CountTokens(text string) int
}
