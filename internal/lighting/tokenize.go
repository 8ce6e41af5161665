package lighting

import "strings"

// Tokenize splits a raw line on commas into lowercased, trimmed, non-empty tokens.
func Tokenize(line string) []string {
	fragments := strings.Split(line, ",")
	tokens := make([]string, 0, len(fragments))
	for _, f := range fragments {
		token := strings.TrimSpace(strings.ToLower(f))
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
