package apihandlers

import (
	"time"

	"github.com/aifirst/llmdemos/pkg/models"
)

type CreateSessionRequest struct {
	// APIKey may be omitted when the server has a key configured.
	APIKey string `json:"api_key"`
}

type SessionResponse struct {
	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SentimentRequest struct {
	Text   string `json:"text"`
	Method string `json:"method" validate:"omitempty,oneof=huggingface polarity"`
}

type SentimentResponse struct {
	Text   string  `json:"text"`
	Label  string  `json:"label"`
	Score  float64 `json:"score"`
	Method string  `json:"method"`
}

type SummaryRequest struct {
	Article string `json:"article"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type ChatMessageRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply    *models.Message  `json:"reply,omitempty"`
	Messages []models.Message `json:"messages"`
}

type ForecastResponse struct {
	Values      []float64          `json:"values"`
	Context     string             `json:"context"`
	Explanation string             `json:"explanation"`
	Series      models.PriceSeries `json:"series"`
}
