// Package forecast produces stock price forecasts and their explanations
// from historical data and a retrieval corpus of past prices.
package forecast

import (
	"context"
	"fmt"
	"strings"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/models"
	"github.com/aifirst/llmdemos/pkg/prompts"
	"github.com/aifirst/llmdemos/pkg/rag"
)

var log = internal.GetLogger()

const (
	forecastTemperature    = 0.1
	explanationTemperature = 0.7
	explanationMaxTokens   = 1000
)

// RetrieverFunc returns the retriever over the reference price corpus. It
// is called once per forecast and may return a cached retriever.
type RetrieverFunc func(ctx context.Context) (*rag.Retriever, error)

type Forecaster struct {
	chat      models.ChatClient
	composer  *prompts.Composer
	retriever RetrieverFunc
	topK      int
	periods   int
}

func NewForecaster(
	chat models.ChatClient,
	composer *prompts.Composer,
	retriever RetrieverFunc,
	topK int,
	periods int,
) *Forecaster {
	return &Forecaster{
		chat:      chat,
		composer:  composer,
		retriever: retriever,
		topK:      topK,
		periods:   periods,
	}
}

// Forecast retrieves the reference rows nearest to the dataset, asks the
// chat model for the next periods and parses the reply. A reply that is not
// a list of numbers is a ParseError; nothing is retried.
func (f *Forecaster) Forecast(ctx context.Context, ds *Dataset) (*models.Forecast, error) {
	retriever, err := f.retriever(ctx)
	if err != nil {
		return nil, err
	}

	data := ds.DataString()
	retrieved, err := retriever.Retrieve(ctx, data, f.topK)
	if err != nil {
		return nil, err
	}
	retrievedContext := prompts.JoinContext(rag.Documents(retrieved))

	system, err := f.composer.ForecastSystem(f.periods)
	if err != nil {
		return nil, err
	}
	user, err := f.composer.Forecast(data, retrievedContext, f.periods)
	if err != nil {
		return nil, err
	}

	messages := []models.Message{
		{Role: models.RoleSystem, Content: system},
		{Role: models.RoleUser, Content: user},
	}
	f.composer.CheckLength(messages)

	reply, err := f.chat.Complete(ctx, models.ChatRequest{
		Messages:    messages,
		Temperature: forecastTemperature,
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("forecast reply: %s", reply)

	values, err := ParseForecast(reply)
	if err != nil {
		return nil, err
	}

	return &models.Forecast{Values: values, Context: retrievedContext}, nil
}

// Explain asks the chat model to interpret forecast values against the
// historical data.
func (f *Forecaster) Explain(ctx context.Context, ds *Dataset, values []float64) (string, error) {
	user, err := f.composer.Explanation(ds.Historical(), values)
	if err != nil {
		return "", err
	}

	messages := []models.Message{
		{Role: models.RoleSystem, Content: prompts.ExplanationSystemPrompt},
		{Role: models.RoleUser, Content: user},
	}
	f.composer.CheckLength(messages)

	return f.chat.Complete(ctx, models.ChatRequest{
		Messages:    messages,
		Temperature: explanationTemperature,
		MaxTokens:   explanationMaxTokens,
	})
}

// Run forecasts and then explains the forecast.
func (f *Forecaster) Run(ctx context.Context, ds *Dataset) (*models.Forecast, error) {
	fc, err := f.Forecast(ctx, ds)
	if err != nil {
		return nil, err
	}

	explanation, err := f.Explain(ctx, ds, fc.Values)
	if err != nil {
		return nil, fmt.Errorf("explaining forecast: %w", err)
	}
	fc.Explanation = explanation

	return fc, nil
}

// ParseForecast parses a comma-separated list of numbers. Any token that is
// not a finite number fails the whole parse.
func ParseForecast(reply string) ([]float64, error) {
	parts := strings.Split(reply, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseFinite(p)
		if err != nil {
			return nil, &models.ParseError{Input: reply, Err: err}
		}
		values[i] = v
	}
	return values, nil
}
