package internal

import (
	"bytes"
	"text/template"

	"github.com/getzep/sprig/v3"
)

// ParsePrompt renders promptTemplate with data. Sprig's text functions
// (join, trim, upper, ...) are available to every prompt.
func ParsePrompt(promptTemplate string, data any) (string, error) {
	tmpl, err := template.New("prompt").Funcs(sprig.TxtFuncMap()).Parse(promptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// MergeMaps merges the given maps into a new map. Later maps win on key
// collisions.
func MergeMaps[K comparable, V any](maps ...map[K]V) map[K]V {
	result := make(map[K]V)
	for _, m := range maps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}
