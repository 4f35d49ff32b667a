package extractor

import (
	"sync/atomic"
	"time"
)

// ExtractStats summarizes an extraction run.
type ExtractStats struct {
	ShardsScanned  int64
	RecordsScanned int64
	RecordsMatched int64
	RecordsSkipped int64
	PartsWritten   int64
	OutputPath     string
	Duration       time.Duration
}

// statsCollector accumulates counters across shard workers.
type statsCollector struct {
	shardsScanned  atomic.Int64
	recordsScanned atomic.Int64
	recordsMatched atomic.Int64
	recordsSkipped atomic.Int64
	partsWritten   atomic.Int64
}

func (sc *statsCollector) snapshot(outputPath string, duration time.Duration) *ExtractStats {
	return &ExtractStats{
		ShardsScanned:  sc.shardsScanned.Load(),
		RecordsScanned: sc.recordsScanned.Load(),
		RecordsMatched: sc.recordsMatched.Load(),
		RecordsSkipped: sc.recordsSkipped.Load(),
		PartsWritten:   sc.partsWritten.Load(),
		OutputPath:     outputPath,
		Duration:       duration,
	}
}
