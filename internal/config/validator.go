package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Register custom validation for pipeline mode
	_ = validate.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
		mode := strings.ToLower(fl.Field().String())
		switch mode {
		case "", ModeExtract, ModeParse, ModeClean, ModeAnalyze: // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for compression codec
	_ = validate.RegisterValidation("codec", func(fl validator.FieldLevel) bool {
		codec := strings.ToLower(fl.Field().String())
		switch codec {
		case "", "zstd", "snappy", "gzip":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var validationErrorMessages []string
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.StructNamespace(), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				validationErrorMessages = append(validationErrorMessages, msg)
			}
			return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(validationErrorMessages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}

	if err := validateModeSections(cfg); err != nil {
		return err
	}

	return nil
}

// validateModeSections enforces the fields the selected mode actually needs.
// Only the active stage's section is checked so a config file can carry the
// whole pipeline while individual stages run one at a time.
func validateModeSections(cfg *GlobalConfig) error {
	switch strings.ToLower(cfg.Mode) {
	case ModeExtract:
		if cfg.SourceConfig.InputDir == "" {
			return fmt.Errorf("source_config.input_dir is required in extract mode")
		}
		if cfg.StorageConfig.DestinationURI == "" {
			return fmt.Errorf("storage_config.destination_uri is required in extract mode")
		}
		if len(cfg.FilterConfig.AllowedCrawls) == 0 {
			return fmt.Errorf("filter_config.allowed_crawls is required in extract mode")
		}
		if len(cfg.FilterConfig.AllowedDomains) == 0 {
			return fmt.Errorf("filter_config.allowed_domains is required in extract mode")
		}
		if cfg.FilterConfig.RequiredSubstring == "" {
			return fmt.Errorf("filter_config.required_substring is required in extract mode")
		}
	case ModeParse:
		if cfg.ParserConfig.HTMLDir == "" {
			return fmt.Errorf("parser_config.html_dir is required in parse mode")
		}
		if cfg.ParserConfig.OutputFile == "" {
			return fmt.Errorf("parser_config.output_file is required in parse mode")
		}
	case ModeClean:
		if len(cfg.CleanerConfig.InputFiles) == 0 {
			return fmt.Errorf("cleaner_config.input_files is required in clean mode")
		}
		if cfg.CleanerConfig.OutputFile == "" {
			return fmt.Errorf("cleaner_config.output_file is required in clean mode")
		}
	case ModeAnalyze:
		if cfg.AnalyzerConfig.InputFile == "" {
			return fmt.Errorf("analyzer_config.input_file is required in analyze mode")
		}
		if cfg.AnalyzerConfig.OutputFile == "" {
			return fmt.Errorf("analyzer_config.output_file is required in analyze mode")
		}
		if cfg.AnalyzerConfig.MidPriceThreshold < cfg.AnalyzerConfig.LowPriceThreshold {
			return fmt.Errorf("analyzer_config.mid_price_threshold must be >= low_price_threshold")
		}
	}
	return nil
}
