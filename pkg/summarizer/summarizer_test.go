package summarizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/prompts"
	"github.com/aifirst/llmdemos/pkg/testutils"
)

func TestSummarize(t *testing.T) {
	chat := testutils.NewFakeChat("A short summary.")
	s := NewSummarizer(chat, prompts.NewComposer(nil, 0))

	summary, err := s.Summarize(context.Background(), "Long article text.")
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", summary)

	requests := chat.Requests()
	require.Len(t, requests, 1)
	require.Len(t, requests[0].Messages, 2)
	assert.Equal(t, models.RoleSystem, requests[0].Messages[0].Role)
	assert.Equal(t, prompts.SummarizerSystemPrompt, requests[0].Messages[0].Content)
	assert.Equal(t, models.Message{Role: models.RoleUser, Content: "Long article text."}, requests[0].Messages[1])
	// sampling is left to the provider defaults
	assert.Zero(t, requests[0].Temperature)
	assert.Zero(t, requests[0].MaxTokens)
}

func TestSummarize_EmptyArticle(t *testing.T) {
	chat := testutils.NewFakeChat("unused")
	s := NewSummarizer(chat, prompts.NewComposer(nil, 0))

	_, err := s.Summarize(context.Background(), " \n ")
	assert.ErrorIs(t, err, ErrEmptyArticle)
	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.Empty(t, chat.Requests())
}
