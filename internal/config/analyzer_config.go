package config

// AnalyzerConfig defines the price analysis stage: input/output files and
// the thresholds splitting prices into low/mid/high segments.
type AnalyzerConfig struct {
	InputFile         string  `json:"input_file,omitempty" yaml:"input_file,omitempty"`
	OutputFile        string  `json:"output_file,omitempty" yaml:"output_file,omitempty"`
	LowPriceThreshold float64 `json:"low_price_threshold,omitempty" yaml:"low_price_threshold,omitempty" validate:"min=0"`
	MidPriceThreshold float64 `json:"mid_price_threshold,omitempty" yaml:"mid_price_threshold,omitempty" validate:"min=0"`
}

// NewDefaultAnalyzerConfig creates default analyzer configuration
func NewDefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		LowPriceThreshold: DefaultLowPriceThreshold,
		MidPriceThreshold: DefaultMidPriceThreshold,
	}
}
