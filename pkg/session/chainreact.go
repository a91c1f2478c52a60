package session

import (
	"context"
	"errors"
	"strings"

	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/prompts"
	"github.com/aifirst/llmdemos/pkg/rag"
)

const (
	chainReactTemperature = 0.5
	chainReactMaxTokens   = 1500
	chainReactTopP        = 1
)

var ErrEmptyQuestion = errors.New("empty question")

func chainReactRequest(messages []models.Message) models.ChatRequest {
	return models.ChatRequest{
		Messages:    messages,
		Temperature: chainReactTemperature,
		MaxTokens:   chainReactMaxTokens,
		TopP:        chainReactTopP,
	}
}

// ChainReactHistory starts the conversation if needed and returns the
// messages shown to the user.
func (s *Session) ChainReactHistory(ctx context.Context) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startChainReact(ctx); err != nil {
		return nil, err
	}
	return s.chainReact.Visible(), nil
}

// startChainReact seeds the conversation with the system prompt and the
// model's opening reply. On failure the conversation stays empty.
func (s *Session) startChainReact(ctx context.Context) error {
	if s.chainReact != nil && s.chainReact.State() == models.ConversationAccumulating {
		return nil
	}

	conv := models.NewConversation(models.Message{
		Role:    models.RoleSystem,
		Content: prompts.ChainReactSystemPrompt,
	})

	reply, err := s.clients.Chat.Complete(ctx, chainReactRequest(conv.Messages()))
	if err != nil {
		return err
	}

	conv.Append(models.Message{Role: models.RoleAssistant, Content: reply})
	s.chainReact = conv

	return nil
}

// ChainReactTurn answers a question from the logistics corpus. The model
// sees the history plus a Context/Query prompt; the history records the
// question as typed and the reply. A failed turn leaves the history
// unchanged.
func (s *Session) ChainReactTurn(ctx context.Context, question string) (models.Message, error) {
	if strings.TrimSpace(question) == "" {
		return models.Message{}, models.NewValidationError("please enter a question", ErrEmptyQuestion)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.startChainReact(ctx); err != nil {
		return models.Message{}, err
	}

	retriever, err := s.Retriever(ctx, s.opts.ChainReactCorpusURL)
	if err != nil {
		return models.Message{}, err
	}

	retrieved, err := retriever.Retrieve(ctx, question, s.opts.TopK)
	if err != nil {
		return models.Message{}, err
	}

	prompt, err := s.opts.Composer.RAGQuery(prompts.JoinContext(rag.Documents(retrieved)), question)
	if err != nil {
		return models.Message{}, err
	}

	messages := append(s.chainReact.Messages(), models.Message{Role: models.RoleUser, Content: prompt})
	s.opts.Composer.CheckLength(messages)

	reply, err := s.clients.Chat.Complete(ctx, chainReactRequest(messages))
	if err != nil {
		return models.Message{}, err
	}

	answer := models.Message{Role: models.RoleAssistant, Content: reply}
	s.chainReact.Append(models.Message{Role: models.RoleUser, Content: question}, answer)

	return answer, nil
}
