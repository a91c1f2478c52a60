package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aifirst/llmdemos/pkg/corpus"
	"github.com/aifirst/llmdemos/pkg/llms"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/prompts"
	"github.com/aifirst/llmdemos/pkg/testutils"
)

const corpusURL = "https://example.com/shipments.csv"

type fixture struct {
	store    *Store
	chat     *testutils.FakeChat
	embedder *testutils.FakeEmbedder
	loads    int
}

func newFixture(t *testing.T, ttl time.Duration, responses ...string) *fixture {
	t.Helper()
	f := &fixture{
		chat:     testutils.NewFakeChat(responses...),
		embedder: testutils.NewFakeEmbedder(),
	}
	var mu sync.Mutex
	f.store = NewStore(Options{
		TTL: ttl,
		NewClients: func(apiKey string) (Clients, error) {
			if err := llms.ValidateAPIKey(apiKey, "sk-", 0); err != nil {
				return Clients{}, err
			}
			return Clients{Chat: f.chat, Embeddings: f.embedder}, nil
		},
		LoadCorpus: func(_ context.Context, url string) ([]models.Document, error) {
			mu.Lock()
			f.loads++
			mu.Unlock()
			assert.Equal(t, corpusURL, url)
			table, err := corpus.Load(strings.NewReader(testutils.ShipmentsCSV))
			if err != nil {
				return nil, err
			}
			return table.Documents(), nil
		},
		Composer:            prompts.NewComposer(nil, 0),
		ChainReactCorpusURL: corpusURL,
		TopK:                2,
	})
	return f
}

func TestStore_CreateGetDelete(t *testing.T) {
	f := newFixture(t, time.Hour)

	s, err := f.store.Create("sk-test")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, f.store.Len())

	got, err := f.store.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, f.store.Delete(s.ID))
	_, err = f.store.Get(s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, f.store.Delete(s.ID), models.ErrNotFound)
}

func TestStore_CreateInvalidKey(t *testing.T) {
	f := newFixture(t, time.Hour)

	_, err := f.store.Create("not-a-key")
	assert.ErrorIs(t, err, models.ErrBadRequest)
	assert.Zero(t, f.store.Len())
}

func TestStore_Expiry(t *testing.T) {
	f := newFixture(t, time.Minute)
	now := time.Date(2024, 9, 13, 12, 0, 0, 0, time.UTC)
	f.store.now = func() time.Time { return now }

	stale, err := f.store.Create("sk-stale")
	require.NoError(t, err)
	fresh, err := f.store.Create("sk-fresh")
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	_, err = f.store.Get(fresh.ID)
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	_, err = f.store.Get(stale.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, 1, f.store.Sweep())
	assert.Equal(t, 1, f.store.Len())
	_, err = f.store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_SweeperStopsWithContext(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	_, err := f.store.Create("sk-test")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.store.StartSweeper(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return f.store.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestChainReactHistory_StartsOnce(t *testing.T) {
	f := newFixture(t, time.Hour, "Hello! Ask me about your shipments.")
	s, err := f.store.Create("sk-test")
	require.NoError(t, err)

	history, err := s.ChainReactHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.RoleAssistant, history[0].Role)

	_, err = s.ChainReactHistory(context.Background())
	require.NoError(t, err)

	requests := f.chat.Requests()
	require.Len(t, requests, 1)
	require.Len(t, requests[0].Messages, 1)
	assert.Equal(t, models.RoleSystem, requests[0].Messages[0].Role)
	assert.InDelta(t, 0.5, requests[0].Temperature, 1e-6)
	assert.Equal(t, 1500, requests[0].MaxTokens)
	assert.InDelta(t, 1, requests[0].TopP, 1e-6)
}

func TestChainReactHistory_FailureLeavesConversationEmpty(t *testing.T) {
	f := newFixture(t, time.Hour, "Hello!")
	s, err := f.store.Create("sk-test")
	require.NoError(t, err)

	f.chat.Fail = models.NewAPIError("openai", 401, errors.New("invalid api key"))
	_, err = s.ChainReactHistory(context.Background())
	assert.ErrorIs(t, err, models.ErrUpstream)
	assert.Nil(t, s.chainReact)

	f.chat.Fail = nil
	history, err := s.ChainReactHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestChainReactTurn(t *testing.T) {
	f := newFixture(t, time.Hour, "Hello!", "Truck from Manila to Cebu.", "Rail is cheapest.")
	s, err := f.store.Create("sk-test")
	require.NoError(t, err)

	question := "Which truck route is the most expensive?"
	answer, err := s.ChainReactTurn(context.Background(), question)
	require.NoError(t, err)
	assert.Equal(t, models.Message{Role: models.RoleAssistant, Content: "Truck from Manila to Cebu."}, answer)

	requests := f.chat.Requests()
	require.Len(t, requests, 2)
	turn := requests[1].Messages
	require.Len(t, turn, 3)
	last := turn[2]
	assert.Equal(t, models.RoleUser, last.Role)
	assert.True(t, strings.HasPrefix(last.Content, "Context:\n"))
	assert.Contains(t, last.Content, "Query:\n"+question)
	assert.True(t, strings.HasSuffix(last.Content, "Response:"))

	_, err = s.ChainReactTurn(context.Background(), "And the cheapest?")
	require.NoError(t, err)
	assert.Equal(t, 1, f.loads)

	history, err := s.ChainReactHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, models.Message{Role: models.RoleUser, Content: question}, history[1])
	assert.Equal(t, "Rail is cheapest.", history[4].Content)
	assert.Equal(t, models.ConversationAccumulating, s.chainReact.State())
}

func TestChainReactTurn_EmptyQuestion(t *testing.T) {
	f := newFixture(t, time.Hour, "Hello!")
	s, err := f.store.Create("sk-test")
	require.NoError(t, err)

	_, err = s.ChainReactTurn(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Empty(t, f.chat.Requests())
	assert.Zero(t, f.embedder.Calls())
}

func TestChainReactTurn_EmbeddingFailureKeepsHistory(t *testing.T) {
	f := newFixture(t, time.Hour, "Hello!")
	s, err := f.store.Create("sk-test")
	require.NoError(t, err)

	_, err = s.ChainReactHistory(context.Background())
	require.NoError(t, err)

	f.embedder.Fail = models.NewAPIError("openai", 500, errors.New("unavailable"))
	_, err = s.ChainReactTurn(context.Background(), "Which route?")
	assert.ErrorIs(t, err, models.ErrUpstream)
	assert.Equal(t, 2, s.chainReact.Len())
	assert.Equal(t, 1, f.loads)
}

func TestRetriever_Cached(t *testing.T) {
	f := newFixture(t, time.Hour)
	s, err := f.store.Create("sk-test")
	require.NoError(t, err)

	r1, err := s.Retriever(context.Background(), corpusURL)
	require.NoError(t, err)
	r2, err := s.Retriever(context.Background(), corpusURL)
	require.NoError(t, err)

	assert.Same(t, r1, r2)
	assert.Equal(t, 4, r1.Len())
	assert.Equal(t, 1, f.loads)
}

func TestSentimentResults(t *testing.T) {
	f := newFixture(t, time.Hour)
	s, err := f.store.Create("sk-test")
	require.NoError(t, err)

	assert.Empty(t, s.SentimentResults())

	results := []models.SentimentResult{{Text: "good", Label: models.SentimentPositive, Score: 0.9}}
	s.SetSentimentResults(results)
	assert.Equal(t, results, s.SentimentResults())
}
