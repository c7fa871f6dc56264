package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// New opens a pgx-backed database/sql pool and verifies connectivity. The
// API server, the reminder sweep and the console all share one database, so
// each process passes its own connection ceiling.
func New(connStr string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(maxConns)

	idle := maxConns / 4
	if idle < 1 {
		idle = 1
	}

	db.SetMaxIdleConns(idle)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
