package lighting

// triple is one declaration unit: a keys line, an effect line and a colors line.
type triple struct {
	index  int // 0-based position among triples
	keys   []string
	effect []string
	colors []string
}

// line returns the 1-based input line of the given row (0 keys, 1 effect, 2 colors).
func (t triple) line(row int) int {
	return 3*t.index + row + 1
}

// build validates a triple and expands it into one KeyEffect per declared key.
// Checks run keys, effect, colors, then color count; the first failure wins.
func (t triple) build() ([]KeyEffect, error) {
	keys, err := validateKeys(t.keys, t.line(0))
	if err != nil {
		return nil, err
	}
	effect, err := validateEffect(t.effect, t.line(1))
	if err != nil {
		return nil, err
	}
	colors, err := validateColors(t.colors, t.line(2))
	if err != nil {
		return nil, err
	}

	effects := make([]KeyEffect, 0, len(keys))
	switch effect {
	case EffectStatic:
		if len(colors) != 1 {
			return nil, t.countError(effect, len(colors))
		}
		for _, key := range keys {
			effects = append(effects, Static{Key: key, Color: colors[0]})
		}

	case EffectWave:
		for _, key := range keys {
			seq := make([]Color, len(colors))
			copy(seq, colors)
			effects = append(effects, Wave{Key: key, Colors: seq})
		}

	case EffectDisco:
		if len(colors) != 3 {
			return nil, t.countError(effect, len(colors))
		}
		for _, key := range keys {
			effects = append(effects, Disco{
				Key:    key,
				Color1: colors[0],
				Color2: colors[1],
				Color3: colors[2],
			})
		}
	}

	return effects, nil
}

func (t triple) countError(effect Effect, count int) error {
	return &ParseError{Kind: ErrInvalidColorCount, Effect: effect, Count: count, Line: t.line(2)}
}
