package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"ccextract/internal/common"
	"ccextract/internal/config"
	"ccextract/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtractWriter_NilConfig(t *testing.T) {
	_, err := NewExtractWriter(nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestExtractWriter_WritePart_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.StorageConfig{CompressionCodec: "zstd"}

	writer, err := NewExtractWriter(cfg, zerolog.Nop())
	require.NoError(t, err)

	records := []models.ExtractRecord{
		{
			URL:              "https://amazon.com/laptop-1",
			WARCFilename:     "warc/a.warc.gz",
			WARCRecordOffset: 100,
			WARCRecordLength: 5000,
			FetchTime:        1643704200000,
		},
		{
			URL:              "https://bestbuy.com/laptop-2",
			WARCFilename:     "warc/b.warc.gz",
			WARCRecordOffset: 0,
			WARCRecordLength: 1,
			FetchTime:        1580000000000,
		},
	}

	partPath := filepath.Join(tempDir, "part-00000.parquet")
	written, err := writer.WritePart(partPath, records)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	readBack, err := ReadExtractFile(partPath)
	require.NoError(t, err)
	assert.Equal(t, records, readBack)
}

func TestExtractWriter_WritePart_EmptyRecords(t *testing.T) {
	tempDir := t.TempDir()
	cfg := &config.StorageConfig{CompressionCodec: "snappy"}

	writer, err := NewExtractWriter(cfg, zerolog.Nop())
	require.NoError(t, err)

	partPath := filepath.Join(tempDir, "part-00000.parquet")
	written, err := writer.WritePart(partPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	readBack, err := ReadExtractFile(partPath)
	require.NoError(t, err)
	assert.Empty(t, readBack)
}

func TestShardReader_ListShards_MissingDir(t *testing.T) {
	reader := NewShardReader(zerolog.Nop())

	_, err := reader.ListShards(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSourceUnavailable)
}

func TestShardReader_ListShards_SortedOrder(t *testing.T) {
	tempDir := t.TempDir()
	for _, name := range []string{"b.parquet", "a.parquet", "c.parquet"} {
		require.NoError(t, WriteIndexShard(filepath.Join(tempDir, name), nil))
	}

	reader := NewShardReader(zerolog.Nop())
	shards, err := reader.ListShards(tempDir)
	require.NoError(t, err)

	require.Len(t, shards, 3)
	assert.Equal(t, filepath.Join(tempDir, "a.parquet"), shards[0])
	assert.Equal(t, filepath.Join(tempDir, "c.parquet"), shards[2])
}

func TestShardReader_ReadShard_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	url := "https://amazon.com/laptop-1"
	warc := "warc/a.warc.gz"
	offset := int64(10)
	length := int64(20)
	millis := int64(1643704200000)
	crawl := "CC-MAIN-2022-05"

	rows := []models.ParquetIndexRecord{{
		URL:              &url,
		WARCFilename:     &warc,
		WARCRecordOffset: &offset,
		WARCRecordLength: &length,
		FetchTime:        &millis,
		Crawl:            &crawl,
	}}
	shardPath := filepath.Join(tempDir, "shard.parquet")
	require.NoError(t, WriteIndexShard(shardPath, rows))

	reader := NewShardReader(zerolog.Nop())
	readBack, err := reader.ReadShard(shardPath)
	require.NoError(t, err)

	require.Len(t, readBack, 1)
	require.NotNil(t, readBack[0].URL)
	assert.Equal(t, url, *readBack[0].URL)
	require.NotNil(t, readBack[0].Crawl)
	assert.Equal(t, crawl, *readBack[0].Crawl)
	assert.Nil(t, readBack[0].URLHostRegisteredDomain)
}

func TestPublisher_StageAndPublish(t *testing.T) {
	parent := t.TempDir()
	destPath := filepath.Join(parent, "out")

	publisher := NewPublisher(zerolog.Nop())

	stageDir, err := publisher.Stage(destPath)
	require.NoError(t, err)
	require.DirExists(t, stageDir)

	require.NoError(t, os.WriteFile(filepath.Join(stageDir, "part-00000.parquet"), []byte("x"), 0644))
	require.NoError(t, publisher.Publish(stageDir, destPath))

	assert.FileExists(t, filepath.Join(destPath, "part-00000.parquet"))
	assert.NoDirExists(t, stageDir)
}

func TestPublisher_Publish_ReplacesPrevious(t *testing.T) {
	parent := t.TempDir()
	destPath := filepath.Join(parent, "out")

	require.NoError(t, os.MkdirAll(destPath, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(destPath, "stale.parquet"), []byte("old"), 0644))

	publisher := NewPublisher(zerolog.Nop())
	stageDir, err := publisher.Stage(destPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(stageDir, "fresh.parquet"), []byte("new"), 0644))

	require.NoError(t, publisher.Publish(stageDir, destPath))

	assert.NoFileExists(t, filepath.Join(destPath, "stale.parquet"))
	assert.FileExists(t, filepath.Join(destPath, "fresh.parquet"))
}

func TestPublisher_Discard(t *testing.T) {
	parent := t.TempDir()
	destPath := filepath.Join(parent, "out")

	publisher := NewPublisher(zerolog.Nop())
	stageDir, err := publisher.Stage(destPath)
	require.NoError(t, err)

	publisher.Discard(stageDir)
	assert.NoDirExists(t, stageDir)
}
