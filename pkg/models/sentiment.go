package models

import "strings"

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// NormalizeSentimentLabel upper-cases a classifier label. Unknown labels map
// to NEUTRAL.
func NormalizeSentimentLabel(label string) SentimentLabel {
	switch SentimentLabel(strings.ToUpper(strings.TrimSpace(label))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

type SentimentMethod string

const (
	MethodHuggingFace SentimentMethod = "huggingface"
	MethodPolarity    SentimentMethod = "polarity"
)

func (m SentimentMethod) Valid() bool {
	return m == MethodHuggingFace || m == MethodPolarity
}

// SentimentResult is one analysed text. Score is the classifier confidence
// for the hosted model and the polarity in [-1, 1] for the local analyser.
type SentimentResult struct {
	Text   string          `json:"text"`
	Label  SentimentLabel  `json:"label"`
	Score  float64         `json:"score"`
	Method SentimentMethod `json:"method"`
}
