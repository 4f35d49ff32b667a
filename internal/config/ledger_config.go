package config

// LedgerConfig defines where the run history database lives.
type LedgerConfig struct {
	SQLiteDBPath string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty"`
}

// NewDefaultLedgerConfig creates default ledger configuration
func NewDefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		SQLiteDBPath: DefaultSQLiteDBPath,
	}
}
