package webhandlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/sentiment", "/sentiment"},
		{"/stockprize?page=2", "/stockprize?page=2"},
		{"", "/"},
		{"sentiment", "/"},
		{"https://evil.com", "/"},
		{"//evil.com", "/"},
		{"/\\evil.com", "/"},
		{"\\\\evil.com", "/"},
		{"/sentiment\\..\\", "/"},
		{"/\t/evil.com", "/"},
		{"/\n/evil.com", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.next, func(t *testing.T) {
			assert.Equal(t, tt.want, safeRedirect(tt.next))
		})
	}
}
