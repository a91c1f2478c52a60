package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/aifirst/llmdemos/config"
	"github.com/aifirst/llmdemos/pkg/models"
)

const HuggingFaceService = "huggingface"

var (
	ErrMalformedResponse = errors.New("malformed classification response")
	ErrMissingToken      = errors.New(
		"no HuggingFace token configured: set HF_TOKEN or sentiment.huggingface_token",
	)
)

// classification is one label/score pair returned by a hosted text
// classification model.
type classification struct {
	Label string   `json:"label"`
	Score *float64 `json:"score"`
}

type hfErrorResponse struct {
	Error string `json:"error"`
}

// HuggingFaceClassifier calls a hosted text-classification model.
type HuggingFaceClassifier struct {
	client   *retryablehttp.Client
	endpoint string
	token    string
}

var _ models.SentimentAnalyzer = &HuggingFaceClassifier{}

func NewHuggingFaceClassifier(
	client *retryablehttp.Client,
	cfg config.SentimentConfig,
) *HuggingFaceClassifier {
	endpoint := strings.TrimRight(cfg.HuggingFaceEndpoint, "/") + "/" + cfg.HuggingFaceModel
	return &HuggingFaceClassifier{client: client, endpoint: endpoint, token: cfg.HuggingFaceToken}
}

func (h *HuggingFaceClassifier) Analyze(ctx context.Context, text string) (models.SentimentResult, error) {
	if h.token == "" {
		return models.SentimentResult{}, models.NewAPIError(HuggingFaceService, http.StatusUnauthorized, ErrMissingToken)
	}

	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return models.SentimentResult{}, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.SentimentResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.token)

	resp, err := h.client.Do(req)
	if err != nil {
		return models.SentimentResult{}, models.NewAPIError(HuggingFaceService, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.SentimentResult{}, models.NewAPIError(HuggingFaceService, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr hfErrorResponse
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		return models.SentimentResult{}, models.NewAPIError(HuggingFaceService, resp.StatusCode, errors.New(msg))
	}

	best, err := decodeClassification(raw)
	if err != nil {
		return models.SentimentResult{}, models.NewAPIError(HuggingFaceService, resp.StatusCode, err)
	}

	return models.SentimentResult{
		Text:   text,
		Label:  models.NormalizeSentimentLabel(best.Label),
		Score:  *best.Score,
		Method: models.MethodHuggingFace,
	}, nil
}

// decodeClassification accepts both the nested ([[...]]) and flat ([...])
// response shapes and returns the highest scoring label. Entries without a
// label or score are rejected.
func decodeClassification(raw []byte) (classification, error) {
	var nested [][]classification
	var flat []classification

	switch {
	case json.Unmarshal(raw, &nested) == nil && len(nested) > 0:
		flat = nested[0]
	case json.Unmarshal(raw, &flat) == nil:
	default:
		return classification{}, fmt.Errorf("%w: %s", ErrMalformedResponse, truncate(string(raw), 120))
	}

	if len(flat) == 0 {
		return classification{}, fmt.Errorf("%w: no labels", ErrMalformedResponse)
	}

	var best classification
	for _, c := range flat {
		if c.Label == "" || c.Score == nil {
			return classification{}, fmt.Errorf("%w: missing label or score", ErrMalformedResponse)
		}
		if best.Score == nil || *c.Score > *best.Score {
			best = c
		}
	}
	return best, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
