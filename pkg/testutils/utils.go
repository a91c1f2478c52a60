// Package testutils holds fakes and fixtures shared by the package tests.
package testutils

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/aifirst/llmdemos/config"
	"github.com/aifirst/llmdemos/pkg/models"
)

// NewTestConfig returns a config with the application defaults and no
// network endpoints.
func NewTestConfig() *config.Config {
	return &config.Config{
		LLM: config.LLM{
			Model:            "gpt-4o-mini",
			APIKeyPrefix:     "sk-",
			Timeout:          5 * time.Second,
			MaxContextTokens: 128_000,
		},
		Embeddings: config.EmbeddingsConfig{
			Model:       "text-embedding-3-small",
			Concurrency: 2,
		},
		Sentiment: config.SentimentConfig{
			HuggingFaceModel:  "distilbert-sst2",
			PolarityThreshold: 0.1,
		},
		RAG: config.RAGConfig{TopK: 2},
		Apps: config.AppsConfig{
			StockPrize: config.StockPrizeConfig{ForecastPeriods: 12},
		},
		Session: config.SessionConfig{TTL: time.Hour},
		Server:  config.ServerConfig{Port: 8000, MaxUploadMB: 1},
		Log:     config.LogConfig{Level: "debug"},
	}
}

// FakeEmbedder embeds text as letter and digit counts. Distinct texts that
// are not anagrams of each other get distinct vectors.
type FakeEmbedder struct {
	// Fail is returned by every call when set.
	Fail error

	mu    sync.Mutex
	calls int
}

var _ models.EmbeddingsClient = &FakeEmbedder{}

func NewFakeEmbedder() *FakeEmbedder {
	return &FakeEmbedder{}
}

func (f *FakeEmbedder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeEmbedder) EmbedText(_ context.Context, text string) (models.Embedding, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.Fail != nil {
		return nil, f.Fail
	}

	v := make(models.Embedding, 36)
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z':
			v[r-'a']++
		case unicode.IsDigit(r) && r <= '9':
			v[26+r-'0']++
		}
	}
	return v, nil
}

func (f *FakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([]models.Embedding, error) {
	out := make([]models.Embedding, len(texts))
	for i, t := range texts {
		e, err := f.EmbedText(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// FakeChat replies with scripted responses in order, repeating the last one,
// and records every request it receives.
type FakeChat struct {
	Responses []string
	Fail      error

	mu       sync.Mutex
	requests []models.ChatRequest
}

var _ models.ChatClient = &FakeChat{}

func NewFakeChat(responses ...string) *FakeChat {
	return &FakeChat{Responses: responses}
}

func (f *FakeChat) Complete(_ context.Context, request models.ChatRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := make([]models.Message, len(request.Messages))
	copy(msgs, request.Messages)
	request.Messages = msgs
	f.requests = append(f.requests, request)

	if f.Fail != nil {
		return "", f.Fail
	}
	if len(f.Responses) == 0 {
		return "", nil
	}
	idx := min(len(f.requests)-1, len(f.Responses)-1)
	return f.Responses[idx], nil
}

func (f *FakeChat) Requests() []models.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.ChatRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// FakeSentiment labels text by the presence of "good" or "bad".
type FakeSentiment struct {
	Method models.SentimentMethod

	mu    sync.Mutex
	calls int
}

var _ models.SentimentAnalyzer = &FakeSentiment{}

func (f *FakeSentiment) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeSentiment) Analyze(_ context.Context, text string) (models.SentimentResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	result := models.SentimentResult{Text: text, Label: models.SentimentNeutral, Method: f.Method}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "good"):
		result.Label, result.Score = models.SentimentPositive, 0.9
	case strings.Contains(lower, "bad"):
		result.Label, result.Score = models.SentimentNegative, 0.8
	}
	return result, nil
}
