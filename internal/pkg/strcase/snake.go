// Package strcase converts Go identifiers into the snake_case keys used in
// API error payloads.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts an identifier such as "AttemptsRemaining" or "UserID"
// into "attempts_remaining" or "user_id". Runs of capitals are kept together
// as one word, so "HTTPServer" becomes "http_server".
func ToLowerSnake(s string) string {
	runes := []rune(s)
	words := make([]string, 0, 4)

	start := 0
	for i := 1; i < len(runes); i++ {
		if isBoundary(runes, i) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}

	return strings.ToLower(strings.Join(words, "_"))
}

func isBoundary(runes []rune, i int) bool {
	cur, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(cur) {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
