// Package sentiment classifies text with a hosted model or a local polarity
// lexicon, one text at a time or over a CSV upload.
package sentiment

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/corpus"
	"github.com/aifirst/llmdemos/pkg/models"
)

var log = internal.GetLogger()

const TextColumn = "text"

var ResultsCSVHeader = []string{"Text", "Sentiment", "Score/Polarity"}

var ErrEmptyText = errors.New("empty text")

// Service dispatches analysis to the analyzer registered for a method.
type Service struct {
	analyzers map[models.SentimentMethod]models.SentimentAnalyzer
}

func NewService(analyzers map[models.SentimentMethod]models.SentimentAnalyzer) *Service {
	return &Service{analyzers: analyzers}
}

func (s *Service) analyzer(method models.SentimentMethod) (models.SentimentAnalyzer, error) {
	a, ok := s.analyzers[method]
	if !ok {
		return nil, models.NewValidationError(fmt.Sprintf("unknown analysis method %q", method), nil)
	}
	return a, nil
}

// Analyze classifies a single text. Empty text is rejected before any call
// is made.
func (s *Service) Analyze(
	ctx context.Context,
	method models.SentimentMethod,
	text string,
) (models.SentimentResult, error) {
	if strings.TrimSpace(text) == "" {
		return models.SentimentResult{}, models.NewValidationError(
			fmt.Sprintf("please enter some text for %s analysis", method),
			ErrEmptyText,
		)
	}

	a, err := s.analyzer(method)
	if err != nil {
		return models.SentimentResult{}, err
	}

	return a.Analyze(ctx, text)
}

// AnalyzeBatch classifies every value of the table's text column, producing
// exactly one result per row. A missing column yields a validation error and
// no results; any analyzer error aborts the batch.
func (s *Service) AnalyzeBatch(
	ctx context.Context,
	method models.SentimentMethod,
	table *corpus.Table,
) ([]models.SentimentResult, error) {
	a, err := s.analyzer(method)
	if err != nil {
		return nil, err
	}

	texts, err := table.Column(TextColumn)
	if err != nil {
		return nil, err
	}

	results := make([]models.SentimentResult, 0, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := a.Analyze(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("analysing row %d: %w", i+1, err)
		}
		results = append(results, r)
	}

	log.Debugf("analysed %d rows with %s", len(results), method)

	return results, nil
}

// WriteCSV writes results with the Text, Sentiment, Score/Polarity header.
func WriteCSV(w io.Writer, results []models.SentimentResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultsCSVHeader); err != nil {
		return err
	}
	for _, r := range results {
		record := []string{
			r.Text,
			string(r.Label),
			strconv.FormatFloat(r.Score, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
