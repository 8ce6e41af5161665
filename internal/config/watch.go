package config

// WatchConfig configures the file watcher.
type WatchConfig struct {
	// Quiet period after the last change before the file is re-parsed
	Debounce string `yaml:"debounce" json:"debounce,omitempty"`
}
