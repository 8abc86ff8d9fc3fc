// Package store owns tofi's SQLite database.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/rnwolfe/tofi/internal/config"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// migration is one schema step, applied once and recorded by name.
type migration struct {
	name string
	sql  string
}

// migrations run in order. Append only; never edit an applied step.
var migrations = []migration{
	{
		name: "001_launches",
		sql: `CREATE TABLE launches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			mode TEXT NOT NULL,
			selection TEXT NOT NULL,
			outcome TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
	},
	{
		name: "002_launches_mode_index",
		sql:  `CREATE INDEX idx_launches_mode ON launches(mode, id)`,
	},
}

// Open opens (or creates) the database under the XDG data directory.
func Open() (*DB, error) {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("creating data dirs: %w", err)
	}
	return OpenPath(paths.DBFile)
}

// OpenPath opens (or creates) a database at path and brings its schema up
// to date.
func OpenPath(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	for _, p := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	} {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the raw sql.DB for direct queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Applied returns the names of the applied migrations in order.
func (db *DB) Applied() ([]string, error) {
	rows, err := db.conn.Query(`SELECT name FROM migrations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// migrate applies every migration not yet recorded, each in its own
// transaction together with its record.
func (db *DB) migrate() error {
	if _, err := db.conn.Exec(`CREATE TABLE IF NOT EXISTS migrations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	applied := make(map[string]bool)
	names, err := db.Applied()
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	for _, n := range names {
		applied[n] = true
	}

	for _, m := range migrations {
		if applied[m.name] {
			continue
		}
		if err := db.apply(m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
	}
	return nil
}

func (db *DB) apply(m migration) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(m.sql); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`INSERT INTO migrations (name) VALUES (?)`, m.name); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
