// Package store wraps the local SQLite database shared by the command log,
// the AI memory buffer, and the task scheduler.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/neuralforge/neuralforge/pkg/models"
)

//go:embed migration.sql
var migrationSQL string

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
	path string
}

// New opens (and if necessary creates) the database at dbPath and runs the
// schema migration.
func New(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{conn: conn, path: dbPath}
	if err := db.Migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

// Migrate applies the embedded schema.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(migrationSQL); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn exposes the underlying connection for packages that run their own
// queries (memory, scheduler, analytics).
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// LogCommand records one processed input line and returns the row ID.
func (db *DB) LogCommand(sessionID, input, action string, confidence float64, status string, duration time.Duration) (int64, error) {
	result, err := db.conn.Exec(`
		INSERT INTO command_log (session_id, input, action, confidence, status, duration_ms, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, input, action, confidence, status, duration.Milliseconds(), time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to log command: %w", err)
	}
	return result.LastInsertId()
}

// RecentLogs returns the newest command log entries, newest first.
func (db *DB) RecentLogs(limit int) ([]models.LogEntry, error) {
	rows, err := db.conn.Query(`
		SELECT id, session_id, input, action, confidence, status, duration_ms, ts
		FROM command_log
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query command log: %w", err)
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Input, &e.Action, &e.Confidence, &e.Status, &e.DurationMs, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
