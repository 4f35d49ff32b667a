package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
mode: extract
filter_config:
  allowed_crawls:
    - CC-MAIN-2020-05
    - CC-MAIN-2022-05
  allowed_domains:
    - amazon.com
    - bestbuy.com
  required_substring: laptop
  forbidden_substrings:
    - /reviews
source_config:
  input_dir: /data/index
storage_config:
  destination_uri: /data/extracted
  compression_codec: zstd
  worker_count: 4
`)

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ModeExtract, cfg.Mode)
	assert.Equal(t, []string{"CC-MAIN-2020-05", "CC-MAIN-2022-05"}, cfg.FilterConfig.AllowedCrawls)
	assert.Equal(t, "laptop", cfg.FilterConfig.RequiredSubstring)
	assert.Equal(t, "/data/index", cfg.SourceConfig.InputDir)
	assert.Equal(t, "/data/extracted", cfg.StorageConfig.DestinationURI)
	assert.Equal(t, 4, cfg.StorageConfig.WorkerCount)

	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_JSON(t *testing.T) {
	path := writeConfigFile(t, "config.json", `{
  "mode": "analyze",
  "analyzer_config": {
    "input_file": "/data/cleaned.jsonl",
    "output_file": "/data/summary.json",
    "low_price_threshold": 250,
    "mid_price_threshold": 650
  }
}`)

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ModeAnalyze, cfg.Mode)
	assert.Equal(t, "/data/cleaned.jsonl", cfg.AnalyzerConfig.InputFile)
	assert.Equal(t, 250.0, cfg.AnalyzerConfig.LowPriceThreshold)

	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_KeepsDefaultsForOmittedSections(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
mode: clean
cleaner_config:
  input_files:
    - /data/products.jsonl
  output_file: /data/cleaned.jsonl
`)

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)

	assert.Equal(t, float64(DefaultLowPriceThreshold), cfg.AnalyzerConfig.LowPriceThreshold)
	assert.Equal(t, float64(DefaultMidPriceThreshold), cfg.AnalyzerConfig.MidPriceThreshold)
	assert.Equal(t, DefaultSQLiteDBPath, cfg.LedgerConfig.SQLiteDBPath)
}

func TestLoadGlobalConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", "mode: [unclosed")

	_, err := LoadGlobalConfig(path)
	assert.Error(t, err)
}

func TestValidateConfig_RejectsUnknownMode(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.Mode = "transmogrify"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode")
}

func TestValidateConfig_RejectsUnknownCodec(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.StorageConfig.CompressionCodec = "lzma"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "codec")
}

func TestValidateConfig_ExtractModeRequiresFilter(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.Mode = ModeExtract
	cfg.SourceConfig.InputDir = "/data/index"
	cfg.StorageConfig.DestinationURI = "/data/extracted"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowed_crawls")

	cfg.FilterConfig.AllowedCrawls = []string{"CC-MAIN-2022-05"}
	cfg.FilterConfig.AllowedDomains = []string{"amazon.com"}
	cfg.FilterConfig.RequiredSubstring = "laptop"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfig_AnalyzeModeThresholdOrder(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.Mode = ModeAnalyze
	cfg.AnalyzerConfig.InputFile = "/data/cleaned.jsonl"
	cfg.AnalyzerConfig.OutputFile = "/data/summary.json"
	cfg.AnalyzerConfig.LowPriceThreshold = 700
	cfg.AnalyzerConfig.MidPriceThreshold = 300

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mid_price_threshold")
}

func TestValidateConfig_CleanModeRequiresInputs(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.Mode = ModeClean
	cfg.CleanerConfig.OutputFile = "/data/cleaned.jsonl"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input_files")
}

func TestGetConfigPath_PrefersProvidedFlag(t *testing.T) {
	path := writeConfigFile(t, "custom.yaml", "mode: parse\n")

	got, err := GetConfigPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestGetConfigPath_MissingExplicitPathIsError(t *testing.T) {
	fallback := writeConfigFile(t, "env.yaml", "mode: parse\n")
	t.Setenv(ConfigPathEnvVar, fallback)

	_, err := GetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "a typoed explicit path must not fall through to discovery")
}

func TestGetConfigPath_FallsBackToEnvVar(t *testing.T) {
	path := writeConfigFile(t, "env.yaml", "mode: parse\n")
	t.Setenv(ConfigPathEnvVar, path)

	got, err := GetConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestLoadGlobalConfig_MissingExplicitPathIsError(t *testing.T) {
	_, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
