package config

// ParserConfig defines input/output for the product parsing stage, which
// reads previously captured HTML documents from a directory.
type ParserConfig struct {
	HTMLDir    string `json:"html_dir,omitempty" yaml:"html_dir,omitempty"`
	OutputFile string `json:"output_file,omitempty" yaml:"output_file,omitempty"`
}

// NewDefaultParserConfig creates default parser configuration
func NewDefaultParserConfig() ParserConfig {
	return ParserConfig{}
}
