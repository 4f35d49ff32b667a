package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"ccextract/internal/common"
	"ccextract/internal/logger"

	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	Mode                  string                `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,mode"`
	FilterConfig          FilterConfig          `json:"filter_config,omitempty" yaml:"filter_config,omitempty"`
	SourceConfig          SourceConfig          `json:"source_config,omitempty" yaml:"source_config,omitempty"`
	StorageConfig         StorageConfig         `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	ParserConfig          ParserConfig          `json:"parser_config,omitempty" yaml:"parser_config,omitempty"`
	CleanerConfig         CleanerConfig         `json:"cleaner_config,omitempty" yaml:"cleaner_config,omitempty"`
	AnalyzerConfig        AnalyzerConfig        `json:"analyzer_config,omitempty" yaml:"analyzer_config,omitempty"`
	LedgerConfig          LedgerConfig          `json:"ledger_config,omitempty" yaml:"ledger_config,omitempty"`
	ResourceLimiterConfig ResourceLimiterConfig `json:"resource_limiter_config,omitempty" yaml:"resource_limiter_config,omitempty"`
	LogConfig             logger.LogConfig      `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mode:                  DefaultMode,
		FilterConfig:          NewDefaultFilterConfig(),
		SourceConfig:          NewDefaultSourceConfig(),
		StorageConfig:         NewDefaultStorageConfig(),
		ParserConfig:          NewDefaultParserConfig(),
		CleanerConfig:         NewDefaultCleanerConfig(),
		AnalyzerConfig:        NewDefaultAnalyzerConfig(),
		LedgerConfig:          NewDefaultLedgerConfig(),
		ResourceLimiterConfig: NewDefaultResourceLimiterConfig(),
		LogConfig:             logger.NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and supports both
// JSON and YAML formats. YAML is preferred if the extension is .yaml/.yml.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath, err := GetConfigPath(providedPath)
	if err != nil {
		return nil, common.WrapError(common.ErrInvalidConfiguration, err.Error())
	}
	if filePath == "" {
		return cfg, nil
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, common.NewValidationError("config_file", filePath, "config file does not exist")
	}
	if info.Size() > DefaultMaxConfigFileSizeBytes {
		return nil, common.NewValidationError("config_file", filePath, "config file exceeds maximum size")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.WrapErrorf(err, "failed to parse YAML config file %s", filePath)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.WrapErrorf(err, "failed to parse JSON config file %s", filePath)
	}
	return nil
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
