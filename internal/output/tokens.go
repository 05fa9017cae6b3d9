package output

import (
	"fmt"
	"unicode/utf8"
)

// charsPerToken approximates the character-to-token ratio of structured
// analysis output. Code-heavy text runs near four characters per token.
const charsPerToken = 4.0

// EstimateTokens returns an approximate token count for the given text,
// using a character-based heuristic.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	runes := utf8.RuneCountInString(text)
	return int(float64(runes)/charsPerToken + 0.5)
}

// FormatTokenCount formats a token count for display. Counts of a thousand
// or more are shown as "X.Xk".
func FormatTokenCount(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("%d", tokens)
	}
	return fmt.Sprintf("%.1fk", float64(tokens)/1000)
}
