package output

import (
	"strings"
	"testing"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty string", "", 0},
		{"four chars is one token", "abcd", 1},
		{"rounds to nearest", "abcdef", 2},
		{"counts runes not bytes", "日本語デ", 1},
		{"structured output", strings.Repeat("sha: abc123\n", 100), 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatTokenCount(t *testing.T) {
	tests := []struct {
		tokens   int
		expected string
	}{
		{0, "0"},
		{100, "100"},
		{999, "999"},
		{1000, "1.0k"},
		{1500, "1.5k"},
		{10000, "10.0k"},
		{204800, "204.8k"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatTokenCount(tt.tokens); got != tt.expected {
				t.Errorf("FormatTokenCount(%d) = %v, want %v", tt.tokens, got, tt.expected)
			}
		})
	}
}
