// Package database provides the SQLite connection used by the user store.
package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var schema string

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
	name string // Database name for logging
}

// Config holds database configuration
type Config struct {
	Path string
	Name string // Friendly name for logging (e.g., "users")
}

// New opens (creating if needed) the database at cfg.Path.
// ":memory:" and file: URIs are used as-is.
func New(cfg Config) (*DB, error) {
	if cfg.Path != ":memory:" && !strings.HasPrefix(cfg.Path, "file:") {
		absPath, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path to absolute: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		cfg.Path = absPath
	}
	if cfg.Name == "" {
		cfg.Name = "users"
	}

	conn, err := sql.Open("sqlite", buildConnectionString(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Name, err)
	}

	// SQLite serializes writers anyway; one long-lived connection avoids SQLITE_BUSY
	// and keeps an in-memory database alive for the life of the pool.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	return &DB{
		conn: conn,
		path: cfg.Path,
		name: cfg.Name,
	}, nil
}

func buildConnectionString(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	connStr := path + sep + "_pragma=journal_mode(WAL)"
	connStr += "&_pragma=synchronous(NORMAL)"
	connStr += "&_pragma=foreign_keys(1)"
	connStr += "&_pragma=busy_timeout(5000)"
	return connStr
}

// Migrate applies the embedded schema. Statements are idempotent.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema to %s: %w", db.name, err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Name returns the database name for logging
func (db *DB) Name() string {
	return db.name
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}
