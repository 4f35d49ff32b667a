package datastore

import (
	"io"
	"os"

	"ccextract/internal/common"
	"ccextract/internal/config"
	"ccextract/internal/models"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ExtractWriter writes extracted records to Parquet part files.
type ExtractWriter struct {
	config *config.StorageConfig
	logger zerolog.Logger
}

// ExtractWriterBuilder provides a fluent interface for creating ExtractWriter
type ExtractWriterBuilder struct {
	config *config.StorageConfig
	logger zerolog.Logger
}

// NewExtractWriterBuilder creates a new ExtractWriterBuilder
func NewExtractWriterBuilder(logger zerolog.Logger) *ExtractWriterBuilder {
	return &ExtractWriterBuilder{
		logger: logger.With().Str("component", "ExtractWriter").Logger(),
	}
}

// WithStorageConfig sets the storage configuration
func (b *ExtractWriterBuilder) WithStorageConfig(cfg *config.StorageConfig) *ExtractWriterBuilder {
	b.config = cfg
	return b
}

// Build creates a new ExtractWriter instance
func (b *ExtractWriterBuilder) Build() (*ExtractWriter, error) {
	if b.config == nil {
		return nil, common.NewValidationError("config", b.config, "storage config cannot be nil")
	}

	return &ExtractWriter{
		config: b.config,
		logger: b.logger,
	}, nil
}

// NewExtractWriter creates a new ExtractWriter using builder pattern
func NewExtractWriter(cfg *config.StorageConfig, logger zerolog.Logger) (*ExtractWriter, error) {
	return NewExtractWriterBuilder(logger).
		WithStorageConfig(cfg).
		Build()
}

// WritePart writes a slice of extracted records to a single Parquet part
// file. Empty slices still produce a part so that an all-filtered shard
// leaves a valid, readable output.
func (ew *ExtractWriter) WritePart(partPath string, records []models.ExtractRecord) (int, error) {
	file, err := os.Create(partPath)
	if err != nil {
		return 0, common.WrapError(common.ErrDestinationWrite, "failed to create parquet part file: "+partPath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[models.ExtractRecord](file, ew.compressionOption())

	recordsWritten := 0
	if len(records) > 0 {
		recordsWritten, err = writer.Write(records)
		if err != nil {
			return 0, common.WrapError(err, "failed to write records to parquet part file")
		}
	}

	if err := writer.Close(); err != nil {
		return 0, common.WrapError(err, "failed to finalize parquet part file")
	}

	ew.logger.Debug().
		Str("part_path", partPath).
		Int("records_written", recordsWritten).
		Msg("Wrote parquet part file")

	return recordsWritten, nil
}

// compressionOption returns the compression option based on configuration
func (ew *ExtractWriter) compressionOption() parquet.WriterOption {
	switch ew.config.CompressionCodec {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	default:
		return parquet.Compression(&parquet.Zstd) // Default to Zstd
	}
}

// ReadExtractFile reads back a single extracted part file.
func ReadExtractFile(partPath string) ([]models.ExtractRecord, error) {
	file, err := os.Open(partPath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to open parquet part file %s", partPath)
	}
	defer file.Close()

	reader := parquet.NewGenericReader[models.ExtractRecord](file)
	defer reader.Close()

	var records []models.ExtractRecord
	buf := make([]models.ExtractRecord, 64)
	for {
		n, err := reader.Read(buf)
		records = append(records, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, common.WrapErrorf(err, "failed to read rows from %s", partPath)
		}
	}

	return records, nil
}
