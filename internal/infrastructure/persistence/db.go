package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the database and creates the tables
func Open(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// one connection keeps writes serialized and ":memory:" databases shared
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sqlx.DB) error {
	// Values of the progress store, JSON encoded
	kvTable := `
	CREATE TABLE IF NOT EXISTS kv_store (
		storage_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := db.Exec(kvTable); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}

	// Word lists, ids are unique per level
	wordsTable := `
	CREATE TABLE IF NOT EXISTS words (
		level TEXT NOT NULL,
		id BIGINT NOT NULL,
		korean TEXT NOT NULL,
		japanese TEXT NOT NULL,
		PRIMARY KEY (level, id)
	);`

	if _, err := db.Exec(wordsTable); err != nil {
		return fmt.Errorf("failed to create words table: %w", err)
	}

	grammarTable := `
	CREATE TABLE IF NOT EXISTS grammar_items (
		level TEXT NOT NULL,
		id BIGINT NOT NULL,
		korean TEXT NOT NULL,
		japanese TEXT NOT NULL,
		example_ko TEXT NOT NULL DEFAULT '',
		example_ja TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (level, id)
	);`

	if _, err := db.Exec(grammarTable); err != nil {
		return fmt.Errorf("failed to create grammar_items table: %w", err)
	}

	return nil
}
