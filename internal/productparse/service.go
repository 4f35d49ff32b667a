package productparse

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ccextract/internal/common"
	"ccextract/internal/config"
	"ccextract/internal/models"

	"github.com/rs/zerolog"
)

// ParseStats summarizes a parse run.
type ParseStats struct {
	FilesScanned int64
	FilesParsed  int64
	FilesSkipped int64
	OutputPath   string
	Duration     time.Duration
}

// Service runs the parse stage: it reads captured HTML documents from a
// directory and emits one JSONL product record per parseable file.
type Service struct {
	cfg    *config.ParserConfig
	parser *ProductParser
	logger zerolog.Logger
}

// NewService creates a new parse stage service.
func NewService(cfg *config.ParserConfig, logger zerolog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, common.NewValidationError("parser_config", cfg, "parser config cannot be nil")
	}
	return &Service{
		cfg:    cfg,
		parser: NewProductParser(logger),
		logger: logger.With().Str("component", "ParseService").Logger(),
	}, nil
}

// Run parses every .html file under the configured directory and writes
// the extracted records as JSON lines, replacing any previous output.
func (s *Service) Run(ctx context.Context) (*ParseStats, error) {
	startTime := time.Now()

	entries, err := os.ReadDir(s.cfg.HTMLDir)
	if err != nil {
		return nil, common.WrapErrorf(common.ErrSourceUnavailable, "html directory %s cannot be read", s.cfg.HTMLDir)
	}

	var htmlFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm") {
			htmlFiles = append(htmlFiles, filepath.Join(s.cfg.HTMLDir, name))
		}
	}
	sort.Strings(htmlFiles)

	stats := &ParseStats{OutputPath: s.cfg.OutputFile}
	var records []models.ProductRecord

	for _, htmlPath := range htmlFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats.FilesScanned++

		file, err := os.Open(htmlPath)
		if err != nil {
			s.logger.Warn().Err(err).Str("file", htmlPath).Msg("Failed to open HTML file, skipping")
			stats.FilesSkipped++
			continue
		}

		record, err := s.parser.Parse(file)
		file.Close()
		if err != nil {
			s.logger.Warn().Err(err).Str("file", htmlPath).Msg("Failed to parse HTML file, skipping")
			stats.FilesSkipped++
			continue
		}

		record.URL = strings.TrimSuffix(filepath.Base(htmlPath), filepath.Ext(htmlPath))
		records = append(records, record)
		stats.FilesParsed++
	}

	if err := writeJSONLines(s.cfg.OutputFile, records); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(startTime)
	s.logger.Info().
		Int64("files_scanned", stats.FilesScanned).
		Int64("files_parsed", stats.FilesParsed).
		Int64("files_skipped", stats.FilesSkipped).
		Str("output_file", stats.OutputPath).
		Dur("duration", stats.Duration).
		Msg("Parse run completed")

	return stats, nil
}

// writeJSONLines writes records as JSON lines via a temp file and rename.
func writeJSONLines(outputPath string, records []models.ProductRecord) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return common.WrapError(common.ErrDestinationWrite, "failed to create output directory for "+outputPath)
	}

	tmpPath := fmt.Sprintf("%s.tmp-%d", outputPath, time.Now().UnixNano())
	file, err := os.Create(tmpPath)
	if err != nil {
		return common.WrapError(common.ErrDestinationWrite, "failed to create output file "+tmpPath)
	}

	encoder := json.NewEncoder(file)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return common.WrapError(err, "failed to encode product record")
		}
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return common.WrapError(common.ErrDestinationWrite, "failed to close output file "+tmpPath)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return common.WrapError(common.ErrDestinationWrite, "failed to publish output file "+outputPath)
	}
	return nil
}
