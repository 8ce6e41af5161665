package lighting

import (
	"errors"
	"fmt"
)

// Configuration errors. Every *ParseError unwraps to one of these.
var (
	// ErrMalformedInput is returned when the line count is not a multiple of three.
	ErrMalformedInput = errors.New("missing lines to complete the config")

	// ErrInvalidKey is returned when a key token is not purely alphabetic.
	ErrInvalidKey = errors.New("invalid key token")

	// ErrInvalidEffectArity is returned when an effect line does not hold exactly one token.
	ErrInvalidEffectArity = errors.New("only one effect expected by line")

	// ErrUnknownEffect is returned when the effect token is not static, wave or disco.
	ErrUnknownEffect = errors.New("unknown effect")

	// ErrInvalidColor is returned when a color token is not a known color.
	ErrInvalidColor = errors.New("invalid color")

	// ErrInvalidColorCount is returned when the number of colors does not fit the effect.
	ErrInvalidColorCount = errors.New("invalid color count")
)

// invalidPrefix marks semantic configuration errors, as opposed to I/O errors.
const invalidPrefix = "INVALID: "

// ParseError describes the first problem found in a configuration.
type ParseError struct {
	Kind   error  // one of the Err* sentinels
	Token  string // offending token, if any
	Effect Effect // effect being built, for ErrInvalidColorCount
	Count  int    // colors received, for ErrInvalidColorCount
	Line   int    // 1-based input line, 0 when not tied to a line
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case ErrInvalidKey, ErrUnknownEffect, ErrInvalidColor:
		msg = fmt.Sprintf("%v: %s", e.Kind, e.Token)
	case ErrInvalidColorCount:
		switch e.Effect {
		case EffectStatic:
			msg = fmt.Sprintf("static effects are single color only, got %d colors", e.Count)
		case EffectDisco:
			msg = fmt.Sprintf("disco config requires 3 colors, got %d", e.Count)
		default:
			msg = fmt.Sprintf("%v for %s: %d", e.Kind, e.Effect, e.Count)
		}
	default:
		msg = e.Kind.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s%s (line %d)", invalidPrefix, msg, e.Line)
	}
	return invalidPrefix + msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// IsInvalid reports whether err is a configuration error rather than an I/O failure.
func IsInvalid(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
