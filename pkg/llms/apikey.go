package llms

import (
	"fmt"
	"strings"

	"github.com/aifirst/llmdemos/pkg/models"
)

// ValidateAPIKey applies the prefix and length heuristics to a key entered by
// the user. The key is not verified against the API; a bad key surfaces on
// first use. A length of 0 accepts any length.
func ValidateAPIKey(apiKey, prefix string, length int) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return models.NewValidationError("please enter your OpenAI API key", nil)
	}
	if prefix != "" && !strings.HasPrefix(apiKey, prefix) {
		return models.NewValidationError(
			fmt.Sprintf("please enter a valid OpenAI API key: key must start with %q", prefix),
			nil,
		)
	}
	if length > 0 && len(apiKey) != length {
		return models.NewValidationError(
			fmt.Sprintf("please enter a valid OpenAI API key: key must be %d characters", length),
			nil,
		)
	}
	return nil
}
