package chat

import (
	"strings"
	"unicode"
)

var triggerWords = map[string]bool{
	"of":    true,
	"for":   true,
	"about": true,
}

// Extract returns the token right after the first trigger word ("of", "for",
// "about"). Punctuation is stripped before splitting on whitespace. The next
// token is taken as is, so "price for the pump" yields "the".
func Extract(message string) (string, bool) {
	tokens := strings.Fields(stripPunctuation(strings.ToLower(message)))
	for i, tok := range tokens {
		if triggerWords[tok] && i+1 < len(tokens) {
			return tokens[i+1], true
		}
	}
	return "", false
}

// keeps letters, digits, underscores and whitespace
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}
