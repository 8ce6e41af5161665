package lighting

import "regexp"

var keyPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// validateKeys checks that every key token is purely alphabetic.
// The tokens are returned unchanged on success.
func validateKeys(tokens []string, line int) ([]string, error) {
	for _, key := range tokens {
		if !keyPattern.MatchString(key) {
			return nil, &ParseError{Kind: ErrInvalidKey, Token: key, Line: line}
		}
	}
	return tokens, nil
}

// validateEffect classifies the single token of an effect line.
func validateEffect(tokens []string, line int) (Effect, error) {
	if len(tokens) != 1 {
		return 0, &ParseError{Kind: ErrInvalidEffectArity, Line: line}
	}
	effect, ok := ParseEffect(tokens[0])
	if !ok {
		return 0, &ParseError{Kind: ErrUnknownEffect, Token: tokens[0], Line: line}
	}
	return effect, nil
}

// validateColors converts color tokens in order, stopping at the first unknown one.
func validateColors(tokens []string, line int) ([]Color, error) {
	colors := make([]Color, 0, len(tokens))
	for _, token := range tokens {
		c, ok := ParseColor(token)
		if !ok {
			return nil, &ParseError{Kind: ErrInvalidColor, Token: token, Line: line}
		}
		colors = append(colors, c)
	}
	return colors, nil
}
