package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"ccextract/internal/common"
	"ccextract/internal/config"
	"ccextract/internal/datastore"
	"ccextract/internal/models"
	"ccextract/internal/rslimiter"
	"ccextract/internal/urlhandler"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Extractor runs the filter-project-sink pipeline: it scans index shards,
// applies the FilterSpec to every record, and writes matching projections
// to the destination as Parquet part files with create-or-replace
// semantics.
type Extractor struct {
	sourceCfg  *config.SourceConfig
	storageCfg *config.StorageConfig
	filter     *FilterSpec
	reader     *datastore.ShardReader
	writer     *datastore.ExtractWriter
	publisher  *datastore.Publisher
	limiter    *rslimiter.Limiter
	logger     zerolog.Logger
}

// ExtractorBuilder provides a fluent interface for creating Extractor
type ExtractorBuilder struct {
	sourceCfg  *config.SourceConfig
	storageCfg *config.StorageConfig
	filterCfg  *config.FilterConfig
	limiter    *rslimiter.Limiter
	logger     zerolog.Logger
}

// NewExtractorBuilder creates a new ExtractorBuilder
func NewExtractorBuilder(logger zerolog.Logger) *ExtractorBuilder {
	return &ExtractorBuilder{
		logger: logger.With().Str("component", "Extractor").Logger(),
	}
}

// WithSourceConfig sets the source configuration
func (b *ExtractorBuilder) WithSourceConfig(cfg *config.SourceConfig) *ExtractorBuilder {
	b.sourceCfg = cfg
	return b
}

// WithStorageConfig sets the storage configuration
func (b *ExtractorBuilder) WithStorageConfig(cfg *config.StorageConfig) *ExtractorBuilder {
	b.storageCfg = cfg
	return b
}

// WithFilterConfig sets the filter configuration
func (b *ExtractorBuilder) WithFilterConfig(cfg *config.FilterConfig) *ExtractorBuilder {
	b.filterCfg = cfg
	return b
}

// WithResourceLimiter sets an optional resource limiter checked between shards
func (b *ExtractorBuilder) WithResourceLimiter(limiter *rslimiter.Limiter) *ExtractorBuilder {
	b.limiter = limiter
	return b
}

// Build creates a new Extractor instance
func (b *ExtractorBuilder) Build() (*Extractor, error) {
	if b.sourceCfg == nil {
		return nil, common.NewValidationError("source_config", b.sourceCfg, "source config cannot be nil")
	}
	if b.storageCfg == nil {
		return nil, common.NewValidationError("storage_config", b.storageCfg, "storage config cannot be nil")
	}
	if b.filterCfg == nil {
		return nil, common.NewValidationError("filter_config", b.filterCfg, "filter config cannot be nil")
	}

	filter, err := NewFilterSpec(*b.filterCfg)
	if err != nil {
		return nil, err
	}

	writer, err := datastore.NewExtractWriter(b.storageCfg, b.logger)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		sourceCfg:  b.sourceCfg,
		storageCfg: b.storageCfg,
		filter:     filter,
		reader:     datastore.NewShardReader(b.logger),
		writer:     writer,
		publisher:  datastore.NewPublisher(b.logger),
		limiter:    b.limiter,
		logger:     b.logger,
	}, nil
}

// Run executes a full extraction pass. Workers own one input shard and
// one output part each, so no ordering or locking is needed between
// them. On any failure the staged output is discarded and the previous
// destination content is left untouched.
func (e *Extractor) Run(ctx context.Context) (*ExtractStats, error) {
	startTime := time.Now()

	destPath, err := urlhandler.ResolveDestinationPath(e.storageCfg.DestinationURI)
	if err != nil {
		return nil, common.WrapError(common.ErrDestinationWrite, err.Error())
	}

	shards, err := e.reader.ListShards(e.sourceCfg.InputDir)
	if err != nil {
		return nil, err
	}

	stageDir, err := e.publisher.Stage(destPath)
	if err != nil {
		return nil, err
	}

	stats := &statsCollector{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.workerCount())

	for i, shardPath := range shards {
		shardPath := shardPath
		partPath := filepath.Join(stageDir, fmt.Sprintf("part-%05d.parquet", i))
		group.Go(func() error {
			return e.processShard(groupCtx, shardPath, partPath, stats)
		})
	}

	if err := group.Wait(); err != nil {
		e.publisher.Discard(stageDir)
		return nil, err
	}

	if err := e.publisher.Publish(stageDir, destPath); err != nil {
		e.publisher.Discard(stageDir)
		return nil, err
	}

	result := stats.snapshot(destPath, time.Since(startTime))
	e.logger.Info().
		Int64("shards_scanned", result.ShardsScanned).
		Int64("records_scanned", result.RecordsScanned).
		Int64("records_matched", result.RecordsMatched).
		Int64("records_skipped", result.RecordsSkipped).
		Str("destination", result.OutputPath).
		Dur("duration", result.Duration).
		Msg("Extraction run completed")

	return result, nil
}

// workerCount resolves the configured worker count, defaulting to one
// worker per CPU.
func (e *Extractor) workerCount() int {
	if e.storageCfg.WorkerCount > 0 {
		return e.storageCfg.WorkerCount
	}
	return runtime.NumCPU()
}

// processShard filters one input shard into one output part.
func (e *Extractor) processShard(ctx context.Context, shardPath, partPath string, stats *statsCollector) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows, err := e.reader.ReadShard(shardPath)
	if err != nil {
		return err
	}

	var matched []models.ExtractRecord
	for _, row := range rows {
		stats.recordsScanned.Add(1)

		rec, err := row.ToIndexRecord()
		if err != nil {
			stats.recordsSkipped.Add(1)
			continue
		}

		if rec.RegisteredDomain == "" {
			domain, derr := urlhandler.RegisteredDomain(rec.URL)
			if derr != nil {
				stats.recordsSkipped.Add(1)
				continue
			}
			rec.RegisteredDomain = domain
		}

		if e.filter.Matches(rec) {
			matched = append(matched, models.Project(rec))
			stats.recordsMatched.Add(1)
		}
	}

	written, err := e.writer.WritePart(partPath, matched)
	if err != nil {
		return err
	}

	stats.shardsScanned.Add(1)
	stats.partsWritten.Add(1)

	e.logger.Debug().
		Str("shard", shardPath).
		Int("matched", written).
		Msg("Processed shard")

	if e.limiter != nil {
		e.limiter.Check()
	}

	return nil
}
