package lighting

import "fmt"

// Effect names the lighting behavior assigned to a key.
type Effect uint8

const (
	EffectStatic Effect = iota
	EffectWave
	EffectDisco
)

var effectNames = [...]string{
	EffectStatic: "static",
	EffectWave:   "wave",
	EffectDisco:  "disco",
}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("effect(%d)", uint8(e))
}

// ParseEffect matches a token against the known effect names.
func ParseEffect(token string) (Effect, bool) {
	for i, name := range effectNames {
		if name == token {
			return Effect(i), true
		}
	}
	return 0, false
}

// KeyEffect is the declared lighting of a single key.
// The set of implementations is closed: Static, Wave and Disco.
type KeyEffect interface {
	// Code returns the lowercase key code the effect applies to.
	Code() string
	// Effect reports which variant this is.
	Effect() Effect
	// Palette returns the colors in declared order.
	Palette() []Color

	keyEffect()
}

// Static lights a key with a single color.
type Static struct {
	Key   string
	Color Color
}

// Wave cycles a key through an ordered sequence of colors.
// The sequence may be empty.
type Wave struct {
	Key    string
	Colors []Color
}

// Disco cycles a key through exactly three colors.
type Disco struct {
	Key    string
	Color1 Color
	Color2 Color
	Color3 Color
}

func (s Static) Code() string     { return s.Key }
func (s Static) Effect() Effect   { return EffectStatic }
func (s Static) Palette() []Color { return []Color{s.Color} }
func (Static) keyEffect()         {}

func (w Wave) Code() string   { return w.Key }
func (w Wave) Effect() Effect { return EffectWave }
func (w Wave) Palette() []Color {
	out := make([]Color, len(w.Colors))
	copy(out, w.Colors)
	return out
}
func (Wave) keyEffect() {}

func (d Disco) Code() string     { return d.Key }
func (d Disco) Effect() Effect   { return EffectDisco }
func (d Disco) Palette() []Color { return []Color{d.Color1, d.Color2, d.Color3} }
func (Disco) keyEffect()         {}
