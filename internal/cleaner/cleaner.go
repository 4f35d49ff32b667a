package cleaner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ccextract/internal/common"
	"ccextract/internal/config"
	"ccextract/internal/models"

	"github.com/rs/zerolog"
)

// fetchTimeLayouts are tried in order when normalizing fetch timestamps.
// Crawl index exports use "2006-01-02 15:04:05"; upstream stages may
// already emit RFC3339.
var fetchTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Titles that retail captures produce for non-product pages. The exact
// list holds server/error responses as the pages emit them; the
// lowercase list holds storefront landing pages.
var (
	errorPageTitles = map[string]struct{}{
		"301 Moved Permanently":        {},
		"Robot Check":                  {},
		"Sorry! Something went wrong!": {},
		"No Title Found":               {},
	}
	landingPageTitles = map[string]struct{}{
		"amazon prime":        {},
		"amazon prime day":    {},
		"prime":               {},
		"amazon best sellers": {},
		"best sellers":        {},
		"cyber monday":        {},
		"black friday":        {},
		"error page":          {},
	}
	// "Prices" that are really years leaked from page text into the
	// price selector.
	bogusPriceValues = map[float64]struct{}{
		1996: {}, 2020: {}, 2021: {}, 2022: {}, 2023: {}, 2024: {},
	}
)

// minValidPrice is the lowest price treated as a real product price.
const minValidPrice = 99

// CleanStats summarizes a cleaning run.
type CleanStats struct {
	RecordsRead    int64
	RecordsKept    int64
	RecordsDropped int64
	Duplicates     int64
	OutputPath     string
	Duration       time.Duration
}

// Cleaner normalizes raw product records: price strings become numbers,
// fetch times become RFC3339, error and landing pages are dropped along
// with implausible prices, and duplicate URLs keep their first
// occurrence.
type Cleaner struct {
	cfg    *config.CleanerConfig
	logger zerolog.Logger
}

// NewCleaner creates a new Cleaner.
func NewCleaner(cfg *config.CleanerConfig, logger zerolog.Logger) (*Cleaner, error) {
	if cfg == nil {
		return nil, common.NewValidationError("cleaner_config", cfg, "cleaner config cannot be nil")
	}
	return &Cleaner{
		cfg:    cfg,
		logger: logger.With().Str("component", "Cleaner").Logger(),
	}, nil
}

// Run reads every configured JSONL input file, normalizes the records,
// and writes the combined cleaned output, replacing any previous file.
func (c *Cleaner) Run(ctx context.Context) (*CleanStats, error) {
	startTime := time.Now()
	stats := &CleanStats{OutputPath: c.cfg.OutputFile}

	seenURLs := make(map[string]struct{})
	var cleaned []models.CleanedProductRecord

	for _, inputPath := range c.cfg.InputFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := c.readInputFile(inputPath, stats)
		if err != nil {
			return nil, err
		}

		for _, raw := range records {
			record, ok := c.cleanRecord(raw)
			if !ok {
				stats.RecordsDropped++
				continue
			}
			if record.URL != "" {
				if _, dup := seenURLs[record.URL]; dup {
					stats.Duplicates++
					continue
				}
				seenURLs[record.URL] = struct{}{}
			}
			cleaned = append(cleaned, record)
			stats.RecordsKept++
		}
	}

	if err := c.writeOutput(cleaned); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(startTime)
	c.logger.Info().
		Int64("records_read", stats.RecordsRead).
		Int64("records_kept", stats.RecordsKept).
		Int64("records_dropped", stats.RecordsDropped).
		Int64("duplicates", stats.Duplicates).
		Str("output_file", stats.OutputPath).
		Dur("duration", stats.Duration).
		Msg("Cleaning run completed")

	return stats, nil
}

// readInputFile reads a JSONL file of raw product records. Lines that do
// not decode are logged and skipped.
func (c *Cleaner) readInputFile(inputPath string, stats *CleanStats) ([]models.ProductRecord, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, common.WrapErrorf(common.ErrSourceUnavailable, "input file %s cannot be read", inputPath)
	}
	defer file.Close()

	var records []models.ProductRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.RecordsRead++

		var record models.ProductRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			c.logger.Warn().Err(err).Str("file", inputPath).Msg("Skipping undecodable line")
			stats.RecordsDropped++
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, common.WrapErrorf(err, "failed to scan input file %s", inputPath)
	}
	return records, nil
}

// cleanRecord normalizes one record. The second return value is false
// when the record is a non-product page, carries an implausible price,
// or carries no usable product data at all.
func (c *Cleaner) cleanRecord(raw models.ProductRecord) (models.CleanedProductRecord, bool) {
	record := models.CleanedProductRecord{
		Title: strings.TrimSpace(raw.Title),
		URL:   strings.TrimSpace(raw.URL),
	}

	if _, bad := errorPageTitles[record.Title]; bad {
		return models.CleanedProductRecord{}, false
	}
	if _, bad := landingPageTitles[strings.ToLower(record.Title)]; bad {
		return models.CleanedProductRecord{}, false
	}

	if price, ok := NormalizePrice(raw.Price); ok {
		if !plausiblePrice(price) {
			return models.CleanedProductRecord{}, false
		}
		record.Price = &price
	}

	if raw.FetchTime != "" {
		if parsed, ok := parseFetchTime(raw.FetchTime); ok {
			record.FetchTime = parsed.UTC().Format(time.RFC3339)
		} else {
			c.logger.Warn().Str("fetch_time", raw.FetchTime).Msg("Unable to parse fetch_time")
		}
	}

	if record.Title == "" && record.Price == nil {
		return models.CleanedProductRecord{}, false
	}
	return record, true
}

// plausiblePrice rejects prices below the product floor and values that
// are calendar years scraped as prices.
func plausiblePrice(price float64) bool {
	if price < minValidPrice {
		return false
	}
	_, bogus := bogusPriceValues[price]
	return !bogus
}

// NormalizePrice strips currency formatting from a price string and
// converts it to a float. "$1,299.99" becomes 1299.99.
func NormalizePrice(price string) (float64, bool) {
	cleaned := strings.TrimSpace(price)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// parseFetchTime tries the known fetch time layouts in order.
func parseFetchTime(value string) (time.Time, bool) {
	for _, layout := range fetchTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// writeOutput writes cleaned records as JSON lines via temp file + rename.
func (c *Cleaner) writeOutput(records []models.CleanedProductRecord) error {
	if err := os.MkdirAll(filepath.Dir(c.cfg.OutputFile), 0755); err != nil {
		return common.WrapError(common.ErrDestinationWrite, "failed to create output directory for "+c.cfg.OutputFile)
	}

	tmpPath := fmt.Sprintf("%s.tmp-%d", c.cfg.OutputFile, time.Now().UnixNano())
	file, err := os.Create(tmpPath)
	if err != nil {
		return common.WrapError(common.ErrDestinationWrite, "failed to create output file "+tmpPath)
	}

	encoder := json.NewEncoder(file)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			file.Close()
			os.Remove(tmpPath)
			return common.WrapError(err, "failed to encode cleaned record")
		}
	}

	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return common.WrapError(common.ErrDestinationWrite, "failed to close output file "+tmpPath)
	}
	if err := os.Rename(tmpPath, c.cfg.OutputFile); err != nil {
		os.Remove(tmpPath)
		return common.WrapError(common.ErrDestinationWrite, "failed to publish output file "+c.cfg.OutputFile)
	}
	return nil
}
