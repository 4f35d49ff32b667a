package config

// SourceConfig defines where index shards are read from.
type SourceConfig struct {
	InputDir string `json:"input_dir,omitempty" yaml:"input_dir,omitempty"`
}

// NewDefaultSourceConfig creates default source configuration
func NewDefaultSourceConfig() SourceConfig {
	return SourceConfig{}
}
