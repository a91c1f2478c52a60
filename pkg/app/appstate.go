// Package app wires configuration, model clients and the session store into
// the state shared by every request handler.
package app

import (
	"context"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/aifirst/llmdemos/config"
	"github.com/aifirst/llmdemos/pkg/corpus"
	"github.com/aifirst/llmdemos/pkg/forecast"
	"github.com/aifirst/llmdemos/pkg/llms"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/prompts"
	"github.com/aifirst/llmdemos/pkg/rag"
	"github.com/aifirst/llmdemos/pkg/sentiment"
	"github.com/aifirst/llmdemos/pkg/session"
	"github.com/aifirst/llmdemos/pkg/summarizer"
)

// AppState is a struct that holds the state of the application
// Use NewAppState to create a new instance
type AppState struct {
	Config     *config.Config
	Sessions   *session.Store
	Composer   *prompts.Composer
	Sentiment  *sentiment.Service
	HTTPClient *retryablehttp.Client
}

func NewAppState(cfg *config.Config) *AppState {
	httpClient := llms.NewRetryableHTTPClient(cfg.LLM.MaxRetries, llms.DefaultHTTPTimeout)
	composer := prompts.NewComposer(llms.NewTiktokenCounter(cfg.LLM.Model), cfg.LLM.MaxContextTokens)

	sentimentService := sentiment.NewService(map[models.SentimentMethod]models.SentimentAnalyzer{
		models.MethodHuggingFace: sentiment.NewHuggingFaceClassifier(httpClient, cfg.Sentiment),
		models.MethodPolarity:    sentiment.NewPolarityAnalyzer(cfg.Sentiment.PolarityThreshold),
	})

	return NewAppStateWith(cfg, composer, sentimentService, httpClient, OpenAIClients(cfg))
}

// NewAppStateWith builds an AppState from explicit dependencies.
func NewAppStateWith(
	cfg *config.Config,
	composer *prompts.Composer,
	sentimentService *sentiment.Service,
	httpClient *retryablehttp.Client,
	newClients session.ClientFactory,
) *AppState {
	sessions := session.NewStore(session.Options{
		TTL:                 cfg.Session.TTL,
		NewClients:          newClients,
		LoadCorpus:          CorpusLoader(httpClient),
		Composer:            composer,
		ChainReactCorpusURL: cfg.Apps.ChainReact.CorpusURL,
		TopK:                cfg.RAG.TopK,
	})

	return &AppState{
		Config:     cfg,
		Sessions:   sessions,
		Composer:   composer,
		Sentiment:  sentimentService,
		HTTPClient: httpClient,
	}
}

// OpenAIClients validates a user's key and builds OpenAI chat and
// embeddings clients for it. An empty key falls back to the key from the
// environment, if one is set.
func OpenAIClients(cfg *config.Config) session.ClientFactory {
	return func(apiKey string) (session.Clients, error) {
		apiKey = strings.TrimSpace(apiKey)
		if apiKey == "" {
			apiKey = cfg.LLM.OpenAIAPIKey
		}
		if err := llms.ValidateAPIKey(apiKey, cfg.LLM.APIKeyPrefix, cfg.LLM.APIKeyLength); err != nil {
			return session.Clients{}, err
		}

		client := llms.NewOpenAIClient(apiKey, cfg)
		return session.Clients{
			Chat:       llms.NewOpenAIChat(client, cfg),
			Embeddings: llms.NewOpenAIEmbeddings(client, cfg),
		}, nil
	}
}

// CorpusLoader downloads a CSV corpus and flattens each row into a document.
func CorpusLoader(client *retryablehttp.Client) session.CorpusLoader {
	return func(ctx context.Context, url string) ([]models.Document, error) {
		table, err := corpus.LoadURL(ctx, client, url)
		if err != nil {
			return nil, err
		}
		return table.Documents(), nil
	}
}

// Forecaster returns a forecaster using the session's clients and the
// session's index over the reference price corpus.
func (a *AppState) Forecaster(s *session.Session) *forecast.Forecaster {
	url := a.Config.Apps.StockPrize.CorpusURL
	return forecast.NewForecaster(
		s.Chat(),
		a.Composer,
		func(ctx context.Context) (*rag.Retriever, error) {
			return s.Retriever(ctx, url)
		},
		a.Config.RAG.TopK,
		a.Config.Apps.StockPrize.ForecastPeriods,
	)
}

func (a *AppState) Summarizer(s *session.Session) *summarizer.Summarizer {
	return summarizer.NewSummarizer(s.Chat(), a.Composer)
}
