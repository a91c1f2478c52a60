// Package rag builds a per-session retrieval index over a document corpus.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/index"
	"github.com/aifirst/llmdemos/pkg/models"
)

var log = internal.GetLogger()

// Retriever pairs a corpus with its flat index. Index id i is document i.
type Retriever struct {
	embedder models.EmbeddingsClient
	docs     []models.Document
	index    *index.FlatIndex
}

// Build embeds every non-blank document and indexes the vectors. Blank
// documents are skipped and never retrieved. Any embedding failure aborts
// the build.
func Build(
	ctx context.Context,
	embedder models.EmbeddingsClient,
	docs []models.Document,
) (*Retriever, error) {
	docs = nonBlank(docs)
	if len(docs) == 0 {
		return nil, models.NewValidationError("corpus contains no documents", nil)
	}

	embeddings, err := embedder.EmbedTexts(ctx, models.DocumentTexts(docs))
	if err != nil {
		return nil, fmt.Errorf("embedding corpus: %w", err)
	}

	idx := index.NewFlatIndex(0)
	if err := idx.Add(embeddings...); err != nil {
		return nil, fmt.Errorf("indexing corpus: %w", err)
	}

	if idx.Len() != len(docs) {
		return nil, fmt.Errorf("index holds %d vectors for %d documents", idx.Len(), len(docs))
	}

	log.Debugf("built retrieval index: %d documents, dimension %d", idx.Len(), idx.Dim())

	return &Retriever{embedder: embedder, docs: docs, index: idx}, nil
}

// nonBlank returns a copy of docs without the whitespace-only ones.
func nonBlank(docs []models.Document) []models.Document {
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		out = append(out, d)
	}
	if skipped := len(docs) - len(out); skipped > 0 {
		log.Debugf("skipping %d blank documents", skipped)
	}
	return out
}

func (r *Retriever) Len() int {
	return len(r.docs)
}

// Retrieve embeds the query and returns the k nearest documents, closest
// first.
func (r *Retriever) Retrieve(
	ctx context.Context,
	query string,
	k int,
) ([]models.RetrievedDocument, error) {
	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return r.RetrieveByEmbedding(embedding, k)
}

func (r *Retriever) RetrieveByEmbedding(
	embedding models.Embedding,
	k int,
) ([]models.RetrievedDocument, error) {
	hits, err := r.index.Search(embedding, k)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	out := make([]models.RetrievedDocument, len(hits))
	for i, h := range hits {
		out[i] = models.RetrievedDocument{Document: r.docs[h.ID], Distance: h.Distance}
	}
	return out, nil
}

// Documents strips the distances from retrieved documents.
func Documents(retrieved []models.RetrievedDocument) []models.Document {
	out := make([]models.Document, len(retrieved))
	for i, r := range retrieved {
		out[i] = r.Document
	}
	return out
}
