package config

// CleanerConfig defines input/output for the product data cleaning stage.
type CleanerConfig struct {
	InputFiles []string `json:"input_files,omitempty" yaml:"input_files,omitempty"`
	OutputFile string   `json:"output_file,omitempty" yaml:"output_file,omitempty"`
}

// NewDefaultCleanerConfig creates default cleaner configuration
func NewDefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		InputFiles: []string{},
	}
}
