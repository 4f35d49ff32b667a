package config

// ResourceLimiterConfig defines advisory resource monitoring during
// extraction. The limiter never aborts a run; above the system memory
// threshold it forces a GC and logs a warning.
type ResourceLimiterConfig struct {
	Enabled              bool    `json:"enabled" yaml:"enabled"`
	SystemMemThreshold   float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"min=0,max=1"`
	CheckIntervalSeconds int     `json:"check_interval_seconds,omitempty" yaml:"check_interval_seconds,omitempty" validate:"min=0"`
}

// NewDefaultResourceLimiterConfig creates default resource limiter configuration
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		Enabled:              DefaultResourceLimiterEnabled,
		SystemMemThreshold:   DefaultSystemMemThreshold,
		CheckIntervalSeconds: DefaultResourceCheckIntervalSecs,
	}
}
