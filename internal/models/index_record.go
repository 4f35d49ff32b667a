package models

import (
	"time"

	"ccextract/internal/common"
)

// IndexRecord is one row of the crawl URL index: a single URL capture
// with the WARC locator needed to retrieve its raw content later.
type IndexRecord struct {
	URL              string
	WARCFilename     string
	WARCRecordOffset int64
	WARCRecordLength int64
	FetchTime        time.Time
	Crawl            string
	RegisteredDomain string
}

// ParquetIndexRecord defines the schema for index shards as stored on disk.
// All fields are optional pointers so that rows with gaps (common in crawl
// index data) survive decoding and can be skipped explicitly.
// Timestamps are stored as int64 UnixMilli per parquet-go conventions.
type ParquetIndexRecord struct {
	URL                     *string `parquet:"url,optional"`
	WARCFilename            *string `parquet:"warc_filename,optional"`
	WARCRecordOffset        *int64  `parquet:"warc_record_offset,optional"`
	WARCRecordLength        *int64  `parquet:"warc_record_length,optional"`
	FetchTime               *int64  `parquet:"fetch_time,optional"`
	Crawl                   *string `parquet:"crawl,optional"`
	URLHostRegisteredDomain *string `parquet:"url_host_registered_domain,optional"`
}

// ToIndexRecord converts a raw shard row into an IndexRecord.
// It returns a MalformedRecordError naming the first missing field that
// filtering or projection depends on. The registered domain column is
// allowed to be absent here; the extractor derives it from the URL host.
func (pir *ParquetIndexRecord) ToIndexRecord() (IndexRecord, error) {
	if pir.URL == nil || *pir.URL == "" {
		return IndexRecord{}, common.NewMalformedRecordError("url")
	}
	if pir.WARCFilename == nil || *pir.WARCFilename == "" {
		return IndexRecord{}, common.NewMalformedRecordError("warc_filename")
	}
	if pir.WARCRecordOffset == nil || *pir.WARCRecordOffset < 0 {
		return IndexRecord{}, common.NewMalformedRecordError("warc_record_offset")
	}
	if pir.WARCRecordLength == nil || *pir.WARCRecordLength < 0 {
		return IndexRecord{}, common.NewMalformedRecordError("warc_record_length")
	}
	if pir.FetchTime == nil {
		return IndexRecord{}, common.NewMalformedRecordError("fetch_time")
	}
	if pir.Crawl == nil || *pir.Crawl == "" {
		return IndexRecord{}, common.NewMalformedRecordError("crawl")
	}

	rec := IndexRecord{
		URL:              *pir.URL,
		WARCFilename:     *pir.WARCFilename,
		WARCRecordOffset: *pir.WARCRecordOffset,
		WARCRecordLength: *pir.WARCRecordLength,
		FetchTime:        time.UnixMilli(*pir.FetchTime).UTC(),
		Crawl:            *pir.Crawl,
	}
	if pir.URLHostRegisteredDomain != nil {
		rec.RegisteredDomain = *pir.URLHostRegisteredDomain
	}
	return rec, nil
}

// FromIndexRecord converts an IndexRecord back into its shard schema.
// Used by tests and shard-generation tooling.
func FromIndexRecord(rec IndexRecord) ParquetIndexRecord {
	fetchMillis := rec.FetchTime.UnixMilli()
	return ParquetIndexRecord{
		URL:                     StringPtrOrNil(rec.URL),
		WARCFilename:            StringPtrOrNil(rec.WARCFilename),
		WARCRecordOffset:        &rec.WARCRecordOffset,
		WARCRecordLength:        &rec.WARCRecordLength,
		FetchTime:               &fetchMillis,
		Crawl:                   StringPtrOrNil(rec.Crawl),
		URLHostRegisteredDomain: StringPtrOrNil(rec.RegisteredDomain),
	}
}

// StringPtrOrNil converts string to pointer, or nil if string is empty
func StringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
