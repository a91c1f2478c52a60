package sentiment

import (
	"bufio"
	"context"
	_ "embed"
	"strconv"
	"strings"
	"unicode"

	"github.com/aifirst/llmdemos/pkg/models"
)

//go:embed lexicon.txt
var lexiconData string

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "n't": true,
	"isn't": true, "wasn't": true, "don't": true, "doesn't": true,
	"didn't": true, "can't": true, "won't": true, "aren't": true,
}

var intensifiers = map[string]float64{
	"very":       1.3,
	"really":     1.3,
	"so":         1.3,
	"extremely":  1.5,
	"incredibly": 1.5,
	"super":      1.4,
	"quite":      1.1,
	"slightly":   0.5,
	"somewhat":   0.7,
}

const negationFactor = -0.5

// PolarityAnalyzer scores text in [-1, 1] by averaging lexicon polarities.
// A preceding intensifier scales a word's polarity and a preceding negation
// flips and halves it.
type PolarityAnalyzer struct {
	lexicon   map[string]float64
	threshold float64
}

var _ models.SentimentAnalyzer = &PolarityAnalyzer{}

func NewPolarityAnalyzer(threshold float64) *PolarityAnalyzer {
	return &PolarityAnalyzer{lexicon: parseLexicon(lexiconData), threshold: threshold}
}

func parseLexicon(data string) map[string]float64 {
	lexicon := make(map[string]float64)
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		lexicon[fields[0]] = v
	}
	return lexicon
}

func (p *PolarityAnalyzer) Analyze(_ context.Context, text string) (models.SentimentResult, error) {
	polarity := p.Polarity(text)
	return models.SentimentResult{
		Text:   text,
		Label:  LabelForPolarity(polarity, p.threshold),
		Score:  polarity,
		Method: models.MethodPolarity,
	}, nil
}

// Polarity returns the averaged polarity of the scored words in text, or 0
// when no word is in the lexicon.
func (p *PolarityAnalyzer) Polarity(text string) float64 {
	words := tokenize(text)

	var sum float64
	var n int
	for i, w := range words {
		score, ok := p.lexicon[w]
		if !ok {
			continue
		}
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			prev := words[j]
			if f, ok := intensifiers[prev]; ok {
				score *= f
				continue
			}
			if negations[prev] {
				score *= negationFactor
			}
			break
		}
		sum += score
		n++
	}

	if n == 0 {
		return 0
	}
	return clamp(sum/float64(n), -1, 1)
}

// LabelForPolarity maps a polarity to a label. Values strictly above
// threshold are POSITIVE, strictly below -threshold NEGATIVE, anything else
// NEUTRAL.
func LabelForPolarity(polarity, threshold float64) models.SentimentLabel {
	switch {
	case polarity > threshold:
		return models.SentimentPositive
	case polarity < -threshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
