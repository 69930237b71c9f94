// Package database manages the embedded sqlite store used in local mode.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"snowlist/logging"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path            string        `env:"DB_PATH" default:"./snowlist.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" default:"15m"`
	BusyTimeoutMs   int           `env:"DB_BUSY_TIMEOUT_MS" default:"5000"`
	EnableWAL       bool          `env:"DB_ENABLE_WAL" default:"true"`
}

// Database wraps the sqlite connection pool. The browse workload is
// read-only; writes happen only through migrations and status imports, which
// go through the same pool.
type Database struct {
	db     *sql.DB
	config Config
	logger *logging.Logger
}

// New opens the sqlite database, applies pragmas and runs migrations.
func New(config Config, logger *logging.Logger) (*Database, error) {
	dbExists := checkDatabaseExists(config.Path)

	logger.Database("Opening database",
		"path", config.Path,
		"exists", dbExists,
		"max_open_conns", config.MaxOpenConns)

	db, err := sql.Open("sqlite", buildDSN(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	database := &Database{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := database.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	logger.Database("Database initialized",
		"path", config.Path,
		"existed", dbExists,
		"wal_mode", config.EnableWAL)

	return database, nil
}

// buildDSN constructs the sqlite DSN with performance and reliability settings.
func buildDSN(config Config) string {
	dsn := fmt.Sprintf("file:%s?", config.Path)
	dsn += fmt.Sprintf("_busy_timeout=%d", config.BusyTimeoutMs)
	if config.EnableWAL {
		dsn += "&_journal_mode=WAL"
	}
	dsn += "&_cache_size=-64000"  // 64MB cache
	dsn += "&_temp_store=memory"  // memory for temp tables
	dsn += "&_synchronous=normal" // balance safety and speed
	return dsn
}

// initialize verifies connectivity and applies per-connection pragmas.
func (d *Database) initialize() error {
	if err := d.db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := d.db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", d.config.BusyTimeoutMs)); err != nil {
		return fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	if d.config.EnableWAL {
		var journalMode string
		if err := d.db.QueryRow("PRAGMA journal_mode=WAL").Scan(&journalMode); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		if journalMode != "wal" {
			d.logger.Warn("WAL mode not enabled", "journal_mode", journalMode)
		}
	}

	return nil
}

// DB returns the underlying connection pool.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Close closes the database connection pool.
func (d *Database) Close() error {
	d.logger.Database("Closing database")

	if d.config.EnableWAL {
		if _, err := d.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			d.logger.Warn("failed to checkpoint WAL", "error", err)
		}
	}
	return d.db.Close()
}

// Health checks connectivity and returns pool statistics.
func (d *Database) Health() (map[string]interface{}, error) {
	if err := d.db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	stats := d.db.Stats()
	return map[string]interface{}{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"max_open":         stats.MaxOpenConnections,
	}, nil
}

func checkDatabaseExists(path string) bool {
	if path == ":memory:" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
