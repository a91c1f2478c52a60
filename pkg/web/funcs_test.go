package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTemplateFuncs(t *testing.T) {
	funcs := TemplateFuncs()

	assert.Equal(t, "test", funcs["ToLower"].(func(string) string)("TEST"))
	assert.Equal(t, 15, funcs["Add"].(func(int, int) int)(10, 5))
	assert.Equal(t, 5, funcs["Sub"].(func(int, int) int)(10, 5))
	assert.Equal(t, 50, funcs["Percent"].(func(int, int) int)(1, 2))
	assert.Equal(t, 0, funcs["Percent"].(func(int, int) int)(1, 0))

	// sprig functions are available alongside ours
	assert.Contains(t, funcs, "upper")
	assert.Contains(t, funcs, "join")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "36,766,620", volume(36766620))
	assert.Equal(t, "1,222.50", price(1222.5))
	assert.Equal(t, "0.900", score(0.9))
	assert.Equal(t, "-0.350", score(-0.35))
	assert.Equal(t, "3 hours ago", relTimeAgo(3*time.Hour))
}

func relTimeAgo(d time.Duration) string {
	return TemplateFuncs()["RelTime"].(func(time.Time) string)(time.Now().Add(-d))
}

func TestParagraphs(t *testing.T) {
	got := paragraphs("First line.\nStill first.\n\n\n  Second.  \r\n\r\nThird.")
	assert.Equal(t, []string{"First line.\nStill first.", "Second.", "Third."}, got)
}
