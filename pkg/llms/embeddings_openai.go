package llms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/aifirst/llmdemos/config"
	"github.com/aifirst/llmdemos/pkg/models"
)

const DefaultEmbeddingConcurrency = 4

var ErrNoEmbeddingInResponse = errors.New("no embedding in response")

var _ models.EmbeddingsClient = &OpenAIEmbeddings{}

// OpenAIEmbeddings issues one embeddings request per text. EmbedTexts fans
// the requests out over a bounded group of workers, paced by a rate limiter,
// and collects results in input order.
type OpenAIEmbeddings struct {
	client      *openai.Client
	model       openai.EmbeddingModel
	concurrency int
	limiter     *rate.Limiter
}

func NewOpenAIEmbeddings(client *openai.Client, cfg *config.Config) *OpenAIEmbeddings {
	concurrency := cfg.Embeddings.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultEmbeddingConcurrency
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.Embeddings.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Embeddings.RequestsPerSecond), concurrency)
	}

	return &OpenAIEmbeddings{
		client:      client,
		model:       openai.EmbeddingModel(cfg.Embeddings.Model),
		concurrency: concurrency,
		limiter:     limiter,
	}
}

func (e *OpenAIEmbeddings) EmbedText(ctx context.Context, text string) (models.Embedding, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("cannot embed empty text", nil)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, models.NewAPIError(OpenAIService, 0, err)
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, wrapOpenAIError(err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, models.NewAPIError(OpenAIService, 0, ErrNoEmbeddingInResponse)
	}

	return resp.Data[0].Embedding, nil
}

// EmbedTexts embeds every text. The first failure cancels the remaining
// requests and is returned; no partial result is returned.
func (e *OpenAIEmbeddings) EmbedTexts(ctx context.Context, texts []string) ([]models.Embedding, error) {
	results := make([]models.Embedding, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			embedding, err := e.EmbedText(gctx, text)
			if err != nil {
				return fmt.Errorf("embedding document %d: %w", i, err)
			}
			results[i] = embedding
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	dim := 0
	for i, r := range results {
		if dim == 0 {
			dim = len(r)
		}
		if len(r) != dim {
			return nil, models.NewAPIError(
				OpenAIService,
				0,
				fmt.Errorf("embedding %d has dimension %d, expected %d", i, len(r), dim),
			)
		}
	}

	log.Debugf("embedded %d documents with %s", len(texts), e.model)

	return results, nil
}
