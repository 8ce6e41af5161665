// Package render prints parsed lighting effects in the supported output formats.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"keylight/internal/lighting"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatText   Format = "text"   // one human readable line per key
	FormatJSON   Format = "json"   // array of records
	FormatYAML   Format = "yaml"   // list of records
	FormatConfig Format = "config" // re-encoded configuration, parseable again
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatConfig}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format: %s (valid: %v)", name, Formats())
}

// Options controls rendering.
type Options struct {
	Format Format
	// Color styles color names in text output.
	Color bool
}

// Record is the structured form of one effect used by json and yaml output.
type Record struct {
	Key    string   `json:"key" yaml:"key"`
	Effect string   `json:"effect" yaml:"effect"`
	Colors []string `json:"colors" yaml:"colors"`
}

// NewRecord converts an effect into its structured form.
func NewRecord(e lighting.KeyEffect) Record {
	palette := e.Palette()
	colors := make([]string, len(palette))
	for i, c := range palette {
		colors[i] = c.String()
	}
	return Record{Key: e.Code(), Effect: e.Effect().String(), Colors: colors}
}

// Write renders effects to w.
func Write(w io.Writer, effects []lighting.KeyEffect, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return writeText(w, effects, opts.Color)
	case FormatJSON:
		return writeJSON(w, effects)
	case FormatYAML:
		return writeYAML(w, effects)
	case FormatConfig:
		return writeConfig(w, effects)
	default:
		return fmt.Errorf("unknown output format: %s", opts.Format)
	}
}

// Line renders a single effect the way the text format prints it.
func Line(e lighting.KeyEffect) string {
	return line(e, plain)
}

func writeText(w io.Writer, effects []lighting.KeyEffect, color bool) error {
	paint := plain
	if color {
		paint = styled
	}
	for _, e := range effects {
		if _, err := fmt.Fprintln(w, line(e, paint)); err != nil {
			return err
		}
	}
	return nil
}

func line(e lighting.KeyEffect, paint func(lighting.Color) string) string {
	switch v := e.(type) {
	case lighting.Static:
		return fmt.Sprintf("%s, static, %s", v.Key, paint(v.Color))
	case lighting.Wave:
		names := make([]string, len(v.Colors))
		for i, c := range v.Colors {
			names[i] = paint(c)
		}
		return fmt.Sprintf("%s, wave, [%s]", v.Key, strings.Join(names, "-"))
	case lighting.Disco:
		return fmt.Sprintf("%s, disco, %s, %s, %s", v.Key, paint(v.Color1), paint(v.Color2), paint(v.Color3))
	default:
		return fmt.Sprintf("%s, %s", e.Code(), e.Effect())
	}
}

func plain(c lighting.Color) string {
	return c.String()
}

// ANSI palette entries for each color; orange has no basic slot.
var swatches = map[lighting.Color]lipgloss.Color{
	lighting.Green:  lipgloss.Color("2"),
	lighting.Blue:   lipgloss.Color("4"),
	lighting.Red:    lipgloss.Color("1"),
	lighting.Yellow: lipgloss.Color("3"),
	lighting.Orange: lipgloss.Color("208"),
}

func styled(c lighting.Color) string {
	return lipgloss.NewStyle().
		Foreground(swatches[c]).
		Bold(true).
		Render(c.String())
}

func records(effects []lighting.KeyEffect) []Record {
	out := make([]Record, 0, len(effects))
	for _, e := range effects {
		out = append(out, NewRecord(e))
	}
	return out
}

func writeJSON(w io.Writer, effects []lighting.KeyEffect) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records(effects))
}

func writeYAML(w io.Writer, effects []lighting.KeyEffect) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(effects)); err != nil {
		return err
	}
	return enc.Close()
}

// writeConfig re-encodes effects in the input grammar, one triple per key.
func writeConfig(w io.Writer, effects []lighting.KeyEffect) error {
	for _, e := range effects {
		palette := e.Palette()
		names := make([]string, len(palette))
		for i, c := range palette {
			names[i] = c.String()
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n", e.Code(), e.Effect(), strings.Join(names, ",")); err != nil {
			return err
		}
	}
	return nil
}
