package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Run statuses recorded in run_history.
const (
	StatusStarted   = "STARTED"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// DB wraps the SQL database connection and provides methods for
// recording pipeline stage runs.
type DB struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunEntry represents a record in the run_history table.
type RunEntry struct {
	ID             int64
	Stage          string
	StartTime      time.Time
	EndTime        sql.NullTime
	Status         string
	RecordsIn      int64
	RecordsOut     int64
	RecordsSkipped int64
	OutputPath     sql.NullString
}

// NewDB initializes a new DB connection and ensures the schema is set up.
func NewDB(dataSourceName string, logger zerolog.Logger) (*DB, error) {
	logger = logger.With().Str("component", "RunLedger").Logger()
	logger.Info().Str("db_path", dataSourceName).Msg("Initializing run ledger database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}

	db := &DB{
		db:     dbInstance,
		logger: logger,
	}

	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// InitSchema creates the run_history table if it doesn't already exist.
func (d *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stage TEXT NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME,
		status TEXT NOT NULL,
		records_in INTEGER DEFAULT 0,
		records_out INTEGER DEFAULT 0,
		records_skipped INTEGER DEFAULT 0,
		output_path TEXT
	);
	`
	_, err := d.db.Exec(query)
	if err != nil {
		d.logger.Error().Err(err).Msg("Failed to initialize run_history schema")
		return err
	}
	return nil
}

// RecordRunStart inserts a new record with status STARTED and returns
// the ID of the newly inserted row.
func (d *DB) RecordRunStart(stage string, startTime time.Time) (int64, error) {
	query := `INSERT INTO run_history (stage, start_time, status) VALUES (?, ?, ?)`
	result, err := d.db.Exec(query, stage, startTime, StatusStarted)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	d.logger.Info().Int64("run_id", id).Str("stage", stage).Msg("Recorded run start")
	return id, nil
}

// RecordRunCompletion updates an existing run_history record with
// completion details.
func (d *DB) RecordRunCompletion(runID int64, endTime time.Time, status string, recordsIn, recordsOut, recordsSkipped int64, outputPath string) error {
	query := `UPDATE run_history SET end_time = ?, status = ?, records_in = ?, records_out = ?, records_skipped = ?, output_path = ? WHERE id = ?`
	_, err := d.db.Exec(query, endTime, status, recordsIn, recordsOut, recordsSkipped,
		sql.NullString{String: outputPath, Valid: outputPath != ""}, runID)
	if err != nil {
		return fmt.Errorf("failed to update run completion for ID %d: %w", runID, err)
	}
	d.logger.Info().
		Int64("run_id", runID).
		Str("status", status).
		Int64("records_out", recordsOut).
		Msg("Recorded run completion")
	return nil
}

// LatestRun returns the most recent run entry for a stage, or nil when
// the stage has never run.
func (d *DB) LatestRun(stage string) (*RunEntry, error) {
	query := `SELECT id, stage, start_time, end_time, status, records_in, records_out, records_skipped, output_path
		FROM run_history WHERE stage = ? ORDER BY start_time DESC, id DESC LIMIT 1`
	row := d.db.QueryRow(query, stage)

	var entry RunEntry
	err := row.Scan(&entry.ID, &entry.Stage, &entry.StartTime, &entry.EndTime, &entry.Status,
		&entry.RecordsIn, &entry.RecordsOut, &entry.RecordsSkipped, &entry.OutputPath)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run for stage %s: %w", stage, err)
	}
	return &entry, nil
}
