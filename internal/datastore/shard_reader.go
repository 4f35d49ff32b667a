package datastore

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"ccextract/internal/common"
	"ccextract/internal/models"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// ShardReader reads index records from a directory of Parquet shards.
type ShardReader struct {
	logger zerolog.Logger
}

// NewShardReader creates a new ShardReader.
func NewShardReader(logger zerolog.Logger) *ShardReader {
	return &ShardReader{
		logger: logger.With().Str("component", "ShardReader").Logger(),
	}
}

// ListShards returns the Parquet shard files under inputDir in stable
// order. A missing directory or a directory with no shards surfaces as
// ErrSourceUnavailable: there is nothing to scan.
func (sr *ShardReader) ListShards(inputDir string) ([]string, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, common.WrapErrorf(common.ErrSourceUnavailable, "input directory %s cannot be read", inputDir)
	}
	if !info.IsDir() {
		return nil, common.WrapErrorf(common.ErrSourceUnavailable, "input path %s is not a directory", inputDir)
	}

	matches, err := filepath.Glob(filepath.Join(inputDir, "*.parquet"))
	if err != nil {
		return nil, common.WrapError(err, "failed to glob input directory")
	}
	if len(matches) == 0 {
		return nil, common.WrapErrorf(common.ErrSourceUnavailable, "no parquet shards found in %s", inputDir)
	}

	sort.Strings(matches)
	sr.logger.Debug().Int("shard_count", len(matches)).Str("input_dir", inputDir).Msg("Discovered input shards")
	return matches, nil
}

// ReadShard reads every row of a single shard file.
func (sr *ShardReader) ReadShard(shardPath string) ([]models.ParquetIndexRecord, error) {
	file, err := os.Open(shardPath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to open parquet shard %s", shardPath)
	}
	defer file.Close()

	reader := parquet.NewReader(file)
	defer reader.Close()

	var rows []models.ParquetIndexRecord
	for {
		var row models.ParquetIndexRecord
		if err := reader.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, common.WrapErrorf(err, "failed to read row from %s", shardPath)
		}
		rows = append(rows, row)
	}

	sr.logger.Debug().Int("record_count", len(rows)).Str("shard", shardPath).Msg("Read shard")
	return rows, nil
}
