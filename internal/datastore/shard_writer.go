package datastore

import (
	"os"

	"ccextract/internal/common"
	"ccextract/internal/models"

	"github.com/parquet-go/parquet-go"
)

// WriteIndexShard writes index records as a single Parquet shard.
// Used by fixture generation and tests.
func WriteIndexShard(shardPath string, rows []models.ParquetIndexRecord) error {
	file, err := os.Create(shardPath)
	if err != nil {
		return common.WrapError(err, "failed to create index shard file: "+shardPath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[models.ParquetIndexRecord](file, parquet.Compression(&parquet.Snappy))
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return common.WrapError(err, "failed to write rows to index shard")
		}
	}
	if err := writer.Close(); err != nil {
		return common.WrapError(err, "failed to finalize index shard")
	}
	return nil
}
