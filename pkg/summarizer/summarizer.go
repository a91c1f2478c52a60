// Package summarizer condenses news articles with the chat model.
package summarizer

import (
	"context"
	"errors"
	"strings"

	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/prompts"
)

var ErrEmptyArticle = errors.New("empty article")

type Summarizer struct {
	chat     models.ChatClient
	composer *prompts.Composer
}

func NewSummarizer(chat models.ChatClient, composer *prompts.Composer) *Summarizer {
	return &Summarizer{chat: chat, composer: composer}
}

// Summarize returns a single summary of the article. An empty article is
// rejected without calling the model.
func (s *Summarizer) Summarize(ctx context.Context, article string) (string, error) {
	if strings.TrimSpace(article) == "" {
		return "", models.NewValidationError("please enter an article to summarize", ErrEmptyArticle)
	}

	messages := []models.Message{
		{Role: models.RoleSystem, Content: prompts.SummarizerSystemPrompt},
		{Role: models.RoleUser, Content: article},
	}
	s.composer.CheckLength(messages)

	return s.chat.Complete(ctx, models.ChatRequest{Messages: messages})
}
