package models

import "time"

// ExtractRecord defines the schema for extracted rows written to the
// destination. Only the five projected columns are present: the crawl id
// and registered domain are filter-only fields and never leave the
// extractor.
type ExtractRecord struct {
	URL              string `parquet:"url"`
	WARCFilename     string `parquet:"warc_filename"`
	WARCRecordOffset int64  `parquet:"warc_record_offset"`
	WARCRecordLength int64  `parquet:"warc_record_length"`
	FetchTime        int64  `parquet:"fetch_time"` // UnixMilli
}

// Project builds the output row for a matched index record.
func Project(rec IndexRecord) ExtractRecord {
	return ExtractRecord{
		URL:              rec.URL,
		WARCFilename:     rec.WARCFilename,
		WARCRecordOffset: rec.WARCRecordOffset,
		WARCRecordLength: rec.WARCRecordLength,
		FetchTime:        rec.FetchTime.UnixMilli(),
	}
}

// FetchTimeUTC returns the fetch time as a time.Time.
func (er ExtractRecord) FetchTimeUTC() time.Time {
	return time.UnixMilli(er.FetchTime).UTC()
}
