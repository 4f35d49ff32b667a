package config

// Default configuration values
const (
	DefaultMode = "extract"

	DefaultCompressionCodec = "zstd"
	DefaultWorkerCount      = 0 // 0 means one worker per CPU

	DefaultLowPriceThreshold = 300
	DefaultMidPriceThreshold = 700

	DefaultSQLiteDBPath = "data/ccextract_runs.db"

	DefaultResourceLimiterEnabled      = true
	DefaultSystemMemThreshold          = 0.85
	DefaultResourceCheckIntervalSecs   = 30
	DefaultMaxConfigFileSizeBytes      = 10 * 1024 * 1024
	ConfigPathEnvVar                   = "CCEXTRACT_CONFIG_PATH"
	DefaultConfigFileNameYAML          = "config.yaml"
	DefaultConfigFileNameJSON          = "config.json"
)

// Pipeline modes
const (
	ModeExtract = "extract"
	ModeParse   = "parse"
	ModeClean   = "clean"
	ModeAnalyze = "analyze"
)
