package llms

import (
	"github.com/pkoukk/tiktoken-go"

	"github.com/aifirst/llmdemos/pkg/models"
)

const DefaultEncoding = "cl100k_base"

var _ models.TokenCounter = &TiktokenCounter{}

// TiktokenCounter counts tokens with a tiktoken encoding. If the encoding
// cannot be loaded it falls back to an estimate of four characters per token.
type TiktokenCounter struct {
	tkm *tiktoken.Tiktoken
}

func NewTiktokenCounter(model string) *TiktokenCounter {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tkm, err = tiktoken.GetEncoding(DefaultEncoding)
	}
	if err != nil {
		log.Warnf("unable to load tiktoken encoding, token counts are estimates: %v", err)
		return &TiktokenCounter{}
	}
	return &TiktokenCounter{tkm: tkm}
}

func (t *TiktokenCounter) CountTokens(text string) int {
	if t.tkm == nil {
		return (len(text) + 3) / 4
	}
	return len(t.tkm.Encode(text, nil, nil))
}
