// Package session holds the per-user state of the demos: the OpenAI clients
// built from the user's key, the ChainReact conversation and the retrieval
// indexes built for that user.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/prompts"
	"github.com/aifirst/llmdemos/pkg/rag"
)

var log = internal.GetLogger()

// Clients are the model clients bound to one user's API key.
type Clients struct {
	Chat       models.ChatClient
	Embeddings models.EmbeddingsClient
}

// ClientFactory validates an API key and builds the clients that use it.
type ClientFactory func(apiKey string) (Clients, error)

// CorpusLoader fetches a corpus and flattens it into documents.
type CorpusLoader func(ctx context.Context, url string) ([]models.Document, error)

type Options struct {
	TTL        time.Duration
	NewClients ClientFactory
	LoadCorpus CorpusLoader
	Composer   *prompts.Composer
	// ChainReactCorpusURL is the corpus ChainReact answers questions from.
	ChainReactCorpusURL string
	TopK                int
}

// Session is one user's state. Operations that talk to the models hold the
// session lock, so turns within a session run one at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	opts    *Options
	clients Clients

	mu         sync.Mutex
	chainReact *models.Conversation

	corpusMu   sync.Mutex
	retrievers map[string]*rag.Retriever

	resultsMu        sync.Mutex
	sentimentResults []models.SentimentResult
}

func (s *Session) Chat() models.ChatClient {
	return s.clients.Chat
}

func (s *Session) Embeddings() models.EmbeddingsClient {
	return s.clients.Embeddings
}

// Exclusive runs fn while holding the session lock.
func (s *Session) Exclusive(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Retriever returns the retriever over the corpus at url, loading and
// embedding the corpus on first use. A failed build is not cached.
func (s *Session) Retriever(ctx context.Context, url string) (*rag.Retriever, error) {
	s.corpusMu.Lock()
	defer s.corpusMu.Unlock()

	if r, ok := s.retrievers[url]; ok {
		return r, nil
	}

	docs, err := s.opts.LoadCorpus(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	r, err := rag.Build(ctx, s.clients.Embeddings, docs)
	if err != nil {
		return nil, err
	}

	s.retrievers[url] = r
	log.Debugf("session %s: indexed %d documents from %s", s.ID, r.Len(), url)

	return r, nil
}

// SetSentimentResults keeps the latest batch results for paging and download.
func (s *Session) SetSentimentResults(results []models.SentimentResult) {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	s.sentimentResults = results
}

func (s *Session) SentimentResults() []models.SentimentResult {
	s.resultsMu.Lock()
	defer s.resultsMu.Unlock()
	return s.sentimentResults
}
