package lighting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColor_RoundTripNames(t *testing.T) {
	for _, c := range Colors() {
		parsed, ok := ParseColor(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}

	_, ok := ParseColor("Red")
	assert.False(t, ok, "matching is on lowercase names only")
	assert.Equal(t, "color(42)", Color(42).String())
}

func TestColor_JSON(t *testing.T) {
	data, err := json.Marshal([]Color{Orange, Green})
	require.NoError(t, err)
	assert.JSONEq(t, `["orange","green"]`, string(data))

	var back []Color
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []Color{Orange, Green}, back)

	assert.Error(t, json.Unmarshal([]byte(`["pink"]`), &back))
}

func TestParseEffect(t *testing.T) {
	for _, name := range []string{"static", "wave", "disco"} {
		e, ok := ParseEffect(name)
		require.True(t, ok)
		assert.Equal(t, name, e.String())
	}
	_, ok := ParseEffect("rainbow")
	assert.False(t, ok)
}

func TestKeyEffect_Palette(t *testing.T) {
	tests := []struct {
		effect KeyEffect
		kind   Effect
		want   []Color
	}{
		{Static{Key: "a", Color: Red}, EffectStatic, []Color{Red}},
		{Wave{Key: "b", Colors: []Color{Blue, Green}}, EffectWave, []Color{Blue, Green}},
		{Wave{Key: "c"}, EffectWave, []Color{}},
		{Disco{Key: "d", Color1: Yellow, Color2: Red, Color3: Orange}, EffectDisco, []Color{Yellow, Red, Orange}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.effect.Effect())
		assert.Equal(t, tt.want, tt.effect.Palette())
	}
}
