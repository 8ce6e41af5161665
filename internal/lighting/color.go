package lighting

import "fmt"

// Color is one of the fixed set of colors a key can be lit with.
type Color uint8

const (
	Green Color = iota
	Blue
	Red
	Yellow
	Orange
)

var colorNames = [...]string{
	Green:  "green",
	Blue:   "blue",
	Red:    "red",
	Yellow: "yellow",
	Orange: "orange",
}

// Colors returns every known color in declaration order.
func Colors() []Color {
	return []Color{Green, Blue, Red, Yellow, Orange}
}

// String returns the canonical lowercase name of the color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor matches a token against the canonical color names.
// Matching is exact: callers are expected to lowercase first.
func ParseColor(token string) (Color, bool) {
	for i, name := range colorNames {
		if name == token {
			return Color(i), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	if int(c) >= len(colorNames) {
		return nil, fmt.Errorf("unknown color %d", uint8(c))
	}
	return []byte(colorNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("unknown color %q", text)
	}
	*c = parsed
	return nil
}
