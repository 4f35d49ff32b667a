package analyzer

import (
	"bufio"
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

// Price segment names
const (
	SegmentLow  = "low"
	SegmentMid  = "mid"
	SegmentHigh = "high"
)

// minSegmentPrice is the lowest price that lands in any segment.
// Prices below it are counted as priced but contribute to no bucket.
const minSegmentPrice = 100

// YearSummary holds per-segment statistics for one fetch year.
type YearSummary struct {
	Year     string                     `json:"year"`
	Counts   map[string]int             `json:"counts"`
	Segments map[string]PriceStatistics `json:"segments"`
}

// InflationEntry holds the year-over-year change of each segment's
// average price, relative to the preceding year. A rate is nil when
// either year has no prices in that segment.
type InflationEntry struct {
	Year  string              `json:"year"`
	Rates map[string]*float64 `json:"rates"`
}

// AnalysisSummary is the output of an analysis run.
type AnalysisSummary struct {
	GeneratedAt       string           `json:"generated_at"`
	RecordsRead       int64            `json:"records_read"`
	RecordsPriced     int64            `json:"records_priced"`
	LowThreshold      float64          `json:"low_threshold"`
	MidThreshold      float64          `json:"mid_threshold"`
	InflationAnalysis []string         `json:"inflation_analysis"`
	Inflation         []InflationEntry `json:"inflation_summary"`
	Years             []YearSummary    `json:"yearly_segment_summary"`
}

// Analyzer segments cleaned product prices per fetch year into
// low/mid/high buckets, summarizes each bucket, and derives
// year-over-year inflation rates from the segment averages.
type Analyzer struct {
	cfg    *config.AnalyzerConfig
	logger zerolog.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(cfg *config.AnalyzerConfig, logger zerolog.Logger) (*Analyzer, error) {
	if cfg == nil {
		return nil, common.NewValidationError("analyzer_config", cfg, "analyzer config cannot be nil")
	}
	return &Analyzer{
		cfg:    cfg,
		logger: logger.With().Str("component", "Analyzer").Logger(),
	}, nil
}

// Run reads cleaned records, builds the summary, and writes it as JSON,
// replacing any previous output file.
func (a *Analyzer) Run(ctx context.Context) (*AnalysisSummary, error) {
	records, err := a.readCleanedRecords()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := a.Summarize(records)

	if err := a.writeSummary(summary); err != nil {
		return nil, err
	}

	a.logger.Info().
		Int64("records_read", summary.RecordsRead).
		Int64("records_priced", summary.RecordsPriced).
		Int("years", len(summary.Years)).
		Str("output_file", a.cfg.OutputFile).
		Msg("Analysis run completed")

	return summary, nil
}

// Summarize buckets prices by fetch year and segment. Records without
// a price, or priced below the segment floor, are counted but
// contribute no statistics; records without a parseable fetch year
// land in the "unknown" year.
func (a *Analyzer) Summarize(records []models.CleanedProductRecord) *AnalysisSummary {
	summary := &AnalysisSummary{
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		LowThreshold: a.cfg.LowPriceThreshold,
		MidThreshold: a.cfg.MidPriceThreshold,
	}

	yearSegments := make(map[string]map[string][]float64)
	for _, record := range records {
		summary.RecordsRead++
		if record.Price == nil {
			continue
		}
		summary.RecordsPriced++

		segment, ok := a.segmentFor(*record.Price)
		if !ok {
			continue
		}

		year := fetchYear(record.FetchTime)
		if _, present := yearSegments[year]; !present {
			yearSegments[year] = map[string][]float64{
				SegmentLow:  nil,
				SegmentMid:  nil,
				SegmentHigh: nil,
			}
		}
		yearSegments[year][segment] = append(yearSegments[year][segment], *record.Price)
	}

	years := make([]string, 0, len(yearSegments))
	for year := range yearSegments {
		years = append(years, year)
	}
	sort.Strings(years)

	for _, year := range years {
		entry := YearSummary{
			Year:     year,
			Counts:   make(map[string]int),
			Segments: make(map[string]PriceStatistics),
		}
		for _, segment := range []string{SegmentLow, SegmentMid, SegmentHigh} {
			prices := yearSegments[year][segment]
			entry.Counts[segment] = len(prices)
			entry.Segments[segment] = CalculateStatistics(prices)
		}
		summary.Years = append(summary.Years, entry)
	}

	summary.Inflation, summary.InflationAnalysis = inflationRates(summary.Years)

	return summary
}

// inflationRates computes year-over-year changes of each segment's
// average price across consecutive known years, with a readable
// sentence per non-zero rate. The "unknown" year never participates.
func inflationRates(years []YearSummary) ([]InflationEntry, []string) {
	var known []YearSummary
	for _, year := range years {
		if year.Year != "unknown" {
			known = append(known, year)
		}
	}

	var entries []InflationEntry
	var analysis []string
	for i := 1; i < len(known); i++ {
		prev := known[i-1]
		curr := known[i]

		entry := InflationEntry{Year: curr.Year, Rates: make(map[string]*float64)}
		for _, segment := range []string{SegmentLow, SegmentMid, SegmentHigh} {
			prevAvg := prev.Segments[segment].Average
			currAvg := curr.Segments[segment].Average
			if prevAvg == nil || currAvg == nil || *prevAvg == 0 {
				entry.Rates[segment] = nil
				continue
			}

			rate := (*currAvg - *prevAvg) / *prevAvg * 100
			entry.Rates[segment] = round2(rate)
			if rate > 0 {
				analysis = append(analysis, fmt.Sprintf(
					"Average %s segment price rose %.2f%% from %s to %s.", segment, rate, prev.Year, curr.Year))
			} else if rate < 0 {
				analysis = append(analysis, fmt.Sprintf(
					"Average %s segment price fell %.2f%% from %s to %s.", segment, -rate, prev.Year, curr.Year))
			}
		}
		entries = append(entries, entry)
	}
	return entries, analysis
}

// segmentFor maps a price to its segment. Thresholds are inclusive
// upper bounds: a price equal to the low threshold is a low price.
func (a *Analyzer) segmentFor(price float64) (string, bool) {
	switch {
	case price < minSegmentPrice:
		return "", false
	case price <= a.cfg.LowPriceThreshold:
		return SegmentLow, true
	case price <= a.cfg.MidPriceThreshold:
		return SegmentMid, true
	default:
		return SegmentHigh, true
	}
}

// fetchYear extracts the four-digit year from an RFC3339 fetch time.
func fetchYear(fetchTime string) string {
	if len(fetchTime) >= 4 {
		year := fetchTime[:4]
		if isDigits(year) {
			return year
		}
	}
	return "unknown"
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// readCleanedRecords reads the cleaned JSONL input file.
func (a *Analyzer) readCleanedRecords() ([]models.CleanedProductRecord, error) {
	file, err := os.Open(a.cfg.InputFile)
	if err != nil {
		return nil, common.WrapErrorf(common.ErrSourceUnavailable, "input file %s cannot be read", a.cfg.InputFile)
	}
	defer file.Close()

	var records []models.CleanedProductRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record models.CleanedProductRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			a.logger.Warn().Err(err).Msg("Skipping undecodable line in cleaned input")
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, common.WrapErrorf(err, "failed to scan input file %s", a.cfg.InputFile)
	}
	return records, nil
}

// writeSummary writes the summary JSON via temp file + rename.
func (a *Analyzer) writeSummary(summary *AnalysisSummary) error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.OutputFile), 0755); err != nil {
		return common.WrapError(common.ErrDestinationWrite, "failed to create output directory for "+a.cfg.OutputFile)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return common.WrapError(err, "failed to marshal analysis summary")
	}

	tmpPath := fmt.Sprintf("%s.tmp-%d", a.cfg.OutputFile, time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return common.WrapError(common.ErrDestinationWrite, "failed to write summary file "+tmpPath)
	}
	if err := os.Rename(tmpPath, a.cfg.OutputFile); err != nil {
		os.Remove(tmpPath)
		return common.WrapError(common.ErrDestinationWrite, "failed to publish summary file "+a.cfg.OutputFile)
	}
	return nil
}
