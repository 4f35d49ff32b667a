package analyzer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ccextract/internal/config"
	"ccextract/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculateStatistics(t *testing.T) {
	stats := CalculateStatistics([]float64{100, 200, 300})

	require.NotNil(t, stats.Average)
	assert.InDelta(t, 200, *stats.Average, 0.001)
	require.NotNil(t, stats.Max)
	assert.InDelta(t, 300, *stats.Max, 0.001)
	require.NotNil(t, stats.Min)
	assert.InDelta(t, 100, *stats.Min, 0.001)
	require.NotNil(t, stats.Stdev)
	assert.InDelta(t, 100, *stats.Stdev, 0.001)
}

func TestCalculateStatistics_SinglePrice(t *testing.T) {
	stats := CalculateStatistics([]float64{250})

	require.NotNil(t, stats.Stdev)
	assert.Equal(t, 0.0, *stats.Stdev)
	require.NotNil(t, stats.Average)
	assert.InDelta(t, 250, *stats.Average, 0.001)
}

func TestCalculateStatistics_Empty(t *testing.T) {
	stats := CalculateStatistics(nil)
	assert.Nil(t, stats.Average)
	assert.Nil(t, stats.Max)
	assert.Nil(t, stats.Min)
	assert.Nil(t, stats.Stdev)
}

func newTestAnalyzer(t *testing.T, cfg *config.AnalyzerConfig) *Analyzer {
	t.Helper()
	an, err := NewAnalyzer(cfg, zerolog.Nop())
	require.NoError(t, err)
	return an
}

func TestAnalyzer_Summarize_SegmentsByThresholds(t *testing.T) {
	an := newTestAnalyzer(t, &config.AnalyzerConfig{
		LowPriceThreshold: 300,
		MidPriceThreshold: 700,
	})

	records := []models.CleanedProductRecord{
		{Title: "cheap", Price: floatPtr(150), FetchTime: "2020-05-01T00:00:00Z"},
		{Title: "mid", Price: floatPtr(450), FetchTime: "2020-06-01T00:00:00Z"},
		{Title: "high", Price: floatPtr(1200), FetchTime: "2020-07-01T00:00:00Z"},
		{Title: "boundary-low", Price: floatPtr(300), FetchTime: "2020-08-01T00:00:00Z"},
		{Title: "boundary-mid", Price: floatPtr(700), FetchTime: "2020-08-02T00:00:00Z"},
		{Title: "below-floor", Price: floatPtr(50), FetchTime: "2020-08-03T00:00:00Z"},
		{Title: "unpriced", FetchTime: "2020-09-01T00:00:00Z"},
	}

	summary := an.Summarize(records)

	assert.Equal(t, int64(7), summary.RecordsRead)
	assert.Equal(t, int64(6), summary.RecordsPriced)
	require.Len(t, summary.Years, 1)

	year := summary.Years[0]
	assert.Equal(t, "2020", year.Year)
	assert.Equal(t, 2, year.Counts[SegmentLow], "a price equal to the low threshold is a low price")
	assert.Equal(t, 2, year.Counts[SegmentMid], "a price equal to the mid threshold is a mid price")
	assert.Equal(t, 1, year.Counts[SegmentHigh])
	assert.Equal(t, 5, year.Counts[SegmentLow]+year.Counts[SegmentMid]+year.Counts[SegmentHigh],
		"a price below the segment floor lands in no bucket")
}

func TestAnalyzer_Summarize_GroupsByYear(t *testing.T) {
	an := newTestAnalyzer(t, &config.AnalyzerConfig{
		LowPriceThreshold: 300,
		MidPriceThreshold: 700,
	})

	records := []models.CleanedProductRecord{
		{Title: "a", Price: floatPtr(100), FetchTime: "2020-05-01T00:00:00Z"},
		{Title: "b", Price: floatPtr(100), FetchTime: "2022-05-01T00:00:00Z"},
		{Title: "c", Price: floatPtr(100)},
	}

	summary := an.Summarize(records)
	require.Len(t, summary.Years, 3)

	years := []string{summary.Years[0].Year, summary.Years[1].Year, summary.Years[2].Year}
	assert.Equal(t, []string{"2020", "2022", "unknown"}, years)
}

func TestAnalyzer_Summarize_InflationRates(t *testing.T) {
	an := newTestAnalyzer(t, &config.AnalyzerConfig{
		LowPriceThreshold: 300,
		MidPriceThreshold: 700,
	})

	records := []models.CleanedProductRecord{
		{Title: "low-2020", Price: floatPtr(200), FetchTime: "2020-05-01T00:00:00Z"},
		{Title: "mid-2020", Price: floatPtr(500), FetchTime: "2020-06-01T00:00:00Z"},
		{Title: "low-2021", Price: floatPtr(220), FetchTime: "2021-05-01T00:00:00Z"},
		{Title: "high-2021", Price: floatPtr(1000), FetchTime: "2021-06-01T00:00:00Z"},
		{Title: "no-year", Price: floatPtr(250)},
	}

	summary := an.Summarize(records)

	require.Len(t, summary.Inflation, 1, "the unknown year must not produce a comparison")
	entry := summary.Inflation[0]
	assert.Equal(t, "2021", entry.Year)

	require.NotNil(t, entry.Rates[SegmentLow])
	assert.InDelta(t, 10.0, *entry.Rates[SegmentLow], 0.001)
	assert.Nil(t, entry.Rates[SegmentMid], "a segment empty in the current year has no rate")
	assert.Nil(t, entry.Rates[SegmentHigh], "a segment empty in the previous year has no rate")

	require.Len(t, summary.InflationAnalysis, 1)
	assert.Contains(t, summary.InflationAnalysis[0], "rose 10.00%")
	assert.Contains(t, summary.InflationAnalysis[0], "low")
}

func TestAnalyzer_Summarize_InflationDecrease(t *testing.T) {
	an := newTestAnalyzer(t, &config.AnalyzerConfig{
		LowPriceThreshold: 300,
		MidPriceThreshold: 700,
	})

	records := []models.CleanedProductRecord{
		{Title: "a", Price: floatPtr(250), FetchTime: "2020-05-01T00:00:00Z"},
		{Title: "b", Price: floatPtr(200), FetchTime: "2021-05-01T00:00:00Z"},
	}

	summary := an.Summarize(records)

	require.Len(t, summary.Inflation, 1)
	require.NotNil(t, summary.Inflation[0].Rates[SegmentLow])
	assert.InDelta(t, -20.0, *summary.Inflation[0].Rates[SegmentLow], 0.001)

	require.Len(t, summary.InflationAnalysis, 1)
	assert.Contains(t, summary.InflationAnalysis[0], "fell 20.00%")
}

func TestAnalyzer_Run_EndToEnd(t *testing.T) {
	tempDir := t.TempDir()
	inputPath := filepath.Join(tempDir, "cleaned.jsonl")
	outputPath := filepath.Join(tempDir, "summary.json")

	file, err := os.Create(inputPath)
	require.NoError(t, err)
	encoder := json.NewEncoder(file)
	records := []models.CleanedProductRecord{
		{Title: "a", Price: floatPtr(199.99), URL: "u1", FetchTime: "2020-05-01T00:00:00Z"},
		{Title: "b", Price: floatPtr(899.0), URL: "u2", FetchTime: "2020-06-01T00:00:00Z"},
	}
	for _, record := range records {
		require.NoError(t, encoder.Encode(record))
	}
	require.NoError(t, file.Close())

	an := newTestAnalyzer(t, &config.AnalyzerConfig{
		InputFile:         inputPath,
		OutputFile:        outputPath,
		LowPriceThreshold: 300,
		MidPriceThreshold: 700,
	})

	summary, err := an.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.RecordsPriced)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var written AnalysisSummary
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, summary.RecordsRead, written.RecordsRead)
	require.Len(t, written.Years, 1)
	assert.Equal(t, 1, written.Years[0].Counts[SegmentLow])
	assert.Equal(t, 1, written.Years[0].Counts[SegmentHigh])
	assert.Empty(t, written.Inflation, "a single year has nothing to compare against")
}

func TestAnalyzer_Run_MissingInputIsError(t *testing.T) {
	tempDir := t.TempDir()
	an := newTestAnalyzer(t, &config.AnalyzerConfig{
		InputFile:         filepath.Join(tempDir, "missing.jsonl"),
		OutputFile:        filepath.Join(tempDir, "summary.json"),
		LowPriceThreshold: 300,
		MidPriceThreshold: 700,
	})

	_, err := an.Run(context.Background())
	assert.Error(t, err)
}
