// Package prompts composes the prompts sent to the chat model from fixed
// instruction templates and retrieved context.
package prompts

import (
	"strconv"
	"strings"

	"github.com/aifirst/llmdemos/internal"
	"github.com/aifirst/llmdemos/pkg/models"
)

var log = internal.GetLogger()

// Composer renders prompt templates. Output is deterministic for the same
// inputs. Prompt length is measured but never truncated; prompts over the
// token budget are logged.
type Composer struct {
	counter   models.TokenCounter
	maxTokens int
}

// NewComposer returns a Composer. A nil counter or a maxTokens of 0 disables
// the length check.
func NewComposer(counter models.TokenCounter, maxTokens int) *Composer {
	return &Composer{counter: counter, maxTokens: maxTokens}
}

// JoinContext joins retrieved documents with single spaces.
func JoinContext(docs []models.Document) string {
	return strings.Join(models.DocumentTexts(docs), " ")
}

// RAGQuery wraps the retrieved context and the user's question in the
// structured Context/Query/Response prompt.
func (c *Composer) RAGQuery(context, query string) (string, error) {
	return c.render(ragQueryTemplate, RAGQueryTemplateData{Context: context, Query: query})
}

// ForecastSystem is the forecaster's system prompt for the given horizon.
func (c *Composer) ForecastSystem(periods int) (string, error) {
	return c.render(forecastSystemPromptTemplate, ForecastTemplateData{Periods: periods})
}

// Forecast renders the forecast request for the serialised price data and
// retrieved context.
func (c *Composer) Forecast(data, context string, periods int) (string, error) {
	return c.render(forecastUserTemplate, ForecastTemplateData{
		Data:    data,
		Context: context,
		Periods: periods,
	})
}

// Explanation renders the explanation request for the historical table and
// the forecast values.
func (c *Composer) Explanation(historical string, forecast []float64) (string, error) {
	values := make([]string, len(forecast))
	for i, v := range forecast {
		values[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return c.render(explanationUserTemplate, ExplanationTemplateData{
		Historical: historical,
		Forecast:   values,
	})
}

// CheckLength logs a warning when the messages exceed the token budget and
// returns the token count.
func (c *Composer) CheckLength(messages []models.Message) int {
	if c.counter == nil {
		return 0
	}
	total := 0
	for _, m := range messages {
		total += c.counter.CountTokens(m.Content)
	}
	if c.maxTokens > 0 && total > c.maxTokens {
		log.Warnf("prompt is %d tokens, exceeding the %d token context budget", total, c.maxTokens)
	}
	return total
}

func (c *Composer) render(tmpl string, data any) (string, error) {
	return internal.ParsePrompt(tmpl, data)
}
