package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between the supported databases.
type Dialect struct {
	Name        string
	seqColumn   string
	placeholder func(n int) string
}

var (
	SQLite = Dialect{
		Name:        "sqlite",
		seqColumn:   "seq INTEGER PRIMARY KEY AUTOINCREMENT",
		placeholder: func(int) string { return "?" },
	}
	Postgres = Dialect{
		Name:        "postgres",
		seqColumn:   "seq BIGSERIAL PRIMARY KEY",
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	}
)

// params returns n comma separated placeholders starting at 1.
func (d Dialect) params(n int) string {
	ph := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		ph = append(ph, d.placeholder(i))
	}
	return strings.Join(ph, ", ")
}

// Initialize the designers schema.
func InitSchema(db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDesignersQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS designers (
		%s,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		display_address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		country_code TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	`, d.seqColumn)

	statements := []string{
		createDesignersQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
