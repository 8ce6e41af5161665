// Package lighting parses keyboard lighting configurations.
//
// A configuration is a sequence of three-line declarations:
//
//	<key>,<key>,...        alphabetic key codes
//	<effect>               static | wave | disco
//	<color>,<color>,...    green | blue | red | yellow | orange
//
// Tokens are case-insensitive and whitespace around commas is ignored.
// A key declared again in a later triple overrides the earlier declaration.
package lighting

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// maxLineSize bounds a single configuration line read by ParseReader.
const maxLineSize = 1 << 20

// Parser turns configuration lines into a sorted, deduplicated list of effects.
// A Parser holds no per-call state and is safe for concurrent use.
type Parser struct {
	logger *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for debug tracing of triples and overrides.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses raw configuration lines with a default Parser.
func Parse(lines []string) ([]KeyEffect, error) {
	return defaultParser.Parse(lines)
}

// ParseString parses a whole configuration text with a default Parser.
func ParseString(text string) ([]KeyEffect, error) {
	return defaultParser.Parse(SplitLines(text))
}

// ParseReader parses a configuration read from r with a default Parser.
func ParseReader(r io.Reader) ([]KeyEffect, error) {
	return defaultParser.ParseReader(r)
}

// ParseFile parses the configuration file at path with a default Parser.
func ParseFile(path string) ([]KeyEffect, error) {
	return defaultParser.ParseFile(path)
}

// Parse tokenizes, validates and aggregates lines.
// On error no effects are returned.
func (p *Parser) Parse(lines []string) ([]KeyEffect, error) {
	tokens := make([][]string, len(lines))
	for i, line := range lines {
		tokens[i] = Tokenize(line)
	}

	triples, err := group(tokens)
	if err != nil {
		return nil, err
	}

	table := make(map[string]KeyEffect)
	origin := make(map[string]int)
	for _, t := range triples {
		effects, err := t.build()
		if err != nil {
			p.logger.Debug("triple rejected", zap.Int("triple", t.index), zap.Error(err))
			return nil, err
		}
		p.logger.Debug("triple accepted",
			zap.Int("triple", t.index),
			zap.Strings("keys", t.keys),
			zap.Int("effects", len(effects)))

		for _, e := range effects {
			if prev, ok := origin[e.Code()]; ok && prev != t.index {
				p.logger.Debug("key overridden",
					zap.String("key", e.Code()),
					zap.Int("previous_triple", prev),
					zap.Int("triple", t.index),
					zap.Stringer("effect", e.Effect()))
			}
			table[e.Code()] = e
			origin[e.Code()] = t.index
		}
	}

	return sortedEffects(table), nil
}

// ParseReader reads every line from r and parses them.
// Read failures are returned as-is and are not configuration errors.
func (p *Parser) ParseReader(r io.Reader) ([]KeyEffect, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return p.Parse(lines)
}

// ParseFile opens path and parses its content.
func (p *Parser) ParseFile(path string) ([]KeyEffect, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p.logger.Debug("parsing file", zap.String("path", path))
	return p.ParseReader(f)
}

// SplitLines splits text into lines on '\n', dropping a trailing '\r' from
// each line. A final line terminator does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// group partitions tokenized lines into consecutive triples.
func group(lines [][]string) ([]triple, error) {
	if len(lines)%3 != 0 {
		return nil, &ParseError{Kind: ErrMalformedInput}
	}
	triples := make([]triple, 0, len(lines)/3)
	for i := 0; i < len(lines)/3; i++ {
		triples = append(triples, triple{
			index:  i,
			keys:   lines[3*i],
			effect: lines[3*i+1],
			colors: lines[3*i+2],
		})
	}
	return triples, nil
}

// sortedEffects extracts the table values ordered by key code.
func sortedEffects(table map[string]KeyEffect) []KeyEffect {
	effects := make([]KeyEffect, 0, len(table))
	for _, e := range table {
		effects = append(effects, e)
	}
	sort.Slice(effects, func(i, j int) bool {
		return effects[i].Code() < effects[j].Code()
	})
	return effects
}
