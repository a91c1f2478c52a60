package web

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/getzep/sprig/v3"

	"github.com/aifirst/llmdemos/internal"
)

func add(a, b int) int {
	return a + b
}

func sub(a, b int) int {
	return a - b
}

func percent(a, b int) int {
	if b == 0 {
		return 0
	}
	return int(float32(a) / float32(b) * 100)
}

// volume formats a traded volume with thousands separators.
func volume(v float64) string {
	return humanize.Commaf(v)
}

// price formats a price with two decimals.
func price(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// paragraphs splits model output on blank lines.
func paragraphs(s string) []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// humanizeAgo describes a duration in the past, e.g. "3 hours ago".
func humanizeAgo(d time.Duration) string {
	return humanize.Time(time.Now().Add(-d))
}

// TemplateFuncs returns sprig's HTML functions plus the page helpers.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap(internal.MergeMaps(sprig.FuncMap(), template.FuncMap{
		"ToLower":    strings.ToLower,
		"Add":        add,
		"Sub":        sub,
		"Percent":    percent,
		"Volume":     volume,
		"Price":      price,
		"Score":      score,
		"Paragraphs": paragraphs,
		"RelTime":    humanize.Time,
		"Ago":        humanizeAgo,
	}))
}
