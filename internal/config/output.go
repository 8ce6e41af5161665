package config

// OutputConfig configures how parse results are printed.
type OutputConfig struct {
	Format string `yaml:"format" json:"format,omitempty"` // text, json, yaml, config
	Color  bool   `yaml:"color" json:"color,omitempty"`   // style color names in text output
}
