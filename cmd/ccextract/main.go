package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ccextract/internal/analyzer"
	"ccextract/internal/cleaner"
	"ccextract/internal/config"
	"ccextract/internal/extractor"
	"ccextract/internal/ledger"
	"ccextract/internal/logger"
	"ccextract/internal/productparse"
	"ccextract/internal/rslimiter"

	"github.com/rs/zerolog"
)

// stageResult is what a pipeline stage reports back for the run ledger.
type stageResult struct {
	recordsIn      int64
	recordsOut     int64
	recordsSkipped int64
	outputPath     string
}

func main() {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}

	// --mode flag takes precedence over the config file
	if flags.Mode != "" {
		gCfg.Mode = flags.Mode
	}
	gCfg.Mode = strings.ToLower(gCfg.Mode)

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}
	zLogger.Info().Str("mode", gCfg.Mode).Msg("Configuration loaded and validated")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zLogger.Warn().Str("signal", sig.String()).Msg("Received shutdown signal, cancelling run")
		cancel()
	}()

	runDB, err := ledger.NewDB(gCfg.LedgerConfig.SQLiteDBPath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to open run ledger database")
	}
	defer runDB.Close()

	if err := runStage(ctx, gCfg, runDB, zLogger); err != nil {
		zLogger.Fatal().Err(err).Str("mode", gCfg.Mode).Msg("Pipeline stage failed")
	}
}

// runStage dispatches to the selected pipeline stage and records the run
// in the ledger.
func runStage(ctx context.Context, gCfg *config.GlobalConfig, runDB *ledger.DB, zLogger zerolog.Logger) error {
	startTime := time.Now()
	runID, err := runDB.RecordRunStart(gCfg.Mode, startTime)
	if err != nil {
		zLogger.Warn().Err(err).Msg("Could not record run start in ledger")
	}

	var result stageResult
	var stageErr error

	switch gCfg.Mode {
	case config.ModeExtract:
		result, stageErr = runExtract(ctx, gCfg, zLogger)
	case config.ModeParse:
		result, stageErr = runParse(ctx, gCfg, zLogger)
	case config.ModeClean:
		result, stageErr = runClean(ctx, gCfg, zLogger)
	case config.ModeAnalyze:
		result, stageErr = runAnalyze(ctx, gCfg, zLogger)
	}

	if runID != 0 {
		status := ledger.StatusCompleted
		if stageErr != nil {
			status = ledger.StatusFailed
		}
		if err := runDB.RecordRunCompletion(runID, time.Now(), status,
			result.recordsIn, result.recordsOut, result.recordsSkipped, result.outputPath); err != nil {
			zLogger.Warn().Err(err).Msg("Could not record run completion in ledger")
		}
	}

	return stageErr
}

func runExtract(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) (stageResult, error) {
	limiter := rslimiter.NewLimiter(gCfg.ResourceLimiterConfig, zLogger)

	ext, err := extractor.NewExtractorBuilder(zLogger).
		WithSourceConfig(&gCfg.SourceConfig).
		WithStorageConfig(&gCfg.StorageConfig).
		WithFilterConfig(&gCfg.FilterConfig).
		WithResourceLimiter(limiter).
		Build()
	if err != nil {
		return stageResult{}, err
	}

	stats, err := ext.Run(ctx)
	if err != nil {
		return stageResult{}, err
	}
	return stageResult{
		recordsIn:      stats.RecordsScanned,
		recordsOut:     stats.RecordsMatched,
		recordsSkipped: stats.RecordsSkipped,
		outputPath:     stats.OutputPath,
	}, nil
}

func runParse(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) (stageResult, error) {
	service, err := productparse.NewService(&gCfg.ParserConfig, zLogger)
	if err != nil {
		return stageResult{}, err
	}

	stats, err := service.Run(ctx)
	if err != nil {
		return stageResult{}, err
	}
	return stageResult{
		recordsIn:      stats.FilesScanned,
		recordsOut:     stats.FilesParsed,
		recordsSkipped: stats.FilesSkipped,
		outputPath:     stats.OutputPath,
	}, nil
}

func runClean(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) (stageResult, error) {
	cl, err := cleaner.NewCleaner(&gCfg.CleanerConfig, zLogger)
	if err != nil {
		return stageResult{}, err
	}

	stats, err := cl.Run(ctx)
	if err != nil {
		return stageResult{}, err
	}
	return stageResult{
		recordsIn:      stats.RecordsRead,
		recordsOut:     stats.RecordsKept,
		recordsSkipped: stats.RecordsDropped + stats.Duplicates,
		outputPath:     stats.OutputPath,
	}, nil
}

func runAnalyze(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) (stageResult, error) {
	an, err := analyzer.NewAnalyzer(&gCfg.AnalyzerConfig, zLogger)
	if err != nil {
		return stageResult{}, err
	}

	summary, err := an.Run(ctx)
	if err != nil {
		return stageResult{}, err
	}
	return stageResult{
		recordsIn:  summary.RecordsRead,
		recordsOut: summary.RecordsPriced,
		outputPath: gCfg.AnalyzerConfig.OutputFile,
	}, nil
}
