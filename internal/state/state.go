// Package state tracks which pages have been converted, backed by SQLite.
// The checksum of each written document lets a later run skip pages whose
// rendered output is unchanged.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/ansuz/internal/apperr"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pages (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	dest       TEXT NOT NULL DEFAULT '',
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_pages_dest ON pages(dest);
`

// Store is the interface consumers depend on instead of the concrete *DB,
// so tests can substitute fakes.
type Store interface {
	UpsertPage(row PageRow) error
	GetChecksum(id string) (string, error)
	ListPages() ([]PageRow, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// PageRow is one converted page.
type PageRow struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Dest      string    `json:"dest"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DB wraps a sql.DB with conversion-state operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("state: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("state: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("state: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// UpsertPage inserts or replaces a page row, stamping updated_at.
func (db *DB) UpsertPage(row PageRow) error {
	updatedAt := row.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(`
		INSERT INTO pages (id, title, dest, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title      = excluded.title,
			dest       = excluded.dest,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, row.ID, row.Title, row.Dest, row.Checksum, updatedAt)
	if err != nil {
		return fmt.Errorf("state: upsert page: %w", err)
	}
	return nil
}

// GetChecksum returns the stored checksum for a page, or apperr.ErrNotFound
// when the page has never been converted.
func (db *DB) GetChecksum(id string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM pages WHERE id = ?`, id).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("state: get checksum: %w", err)
	}
	return cs, nil
}

// ListPages returns every converted page ordered by destination file name.
func (db *DB) ListPages() ([]PageRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, dest, checksum, updated_at
		FROM pages ORDER BY dest
	`)
	if err != nil {
		return nil, fmt.Errorf("state: list pages: %w", err)
	}
	defer rows.Close()

	var out []PageRow
	for rows.Next() {
		var r PageRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Dest, &r.Checksum, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("state: scan page: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("state: iterate pages: %w", err)
	}
	return out, nil
}
