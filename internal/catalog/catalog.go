// Package catalog keeps a local index of finished sessions.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one finished session.
type Entry struct {
	ConversationID string
	StartedAt      time.Time
	EndedAt        time.Time
	Chunks         int
	Records        int
	ExportPath     string
}

// Catalog stores session entries in a SQLite database.
type Catalog struct {
	db *sql.DB
}

func Open(dbPath string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id TEXT NOT NULL UNIQUE,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL,
		chunks INTEGER NOT NULL,
		records INTEGER NOT NULL,
		export_path TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Save records a finished session, replacing any previous entry for the same
// conversation.
func (c *Catalog) Save(e Entry) error {
	query := `
	INSERT OR REPLACE INTO sessions (conversation_id, started_at, ended_at, chunks, records, export_path)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := c.db.Exec(query, e.ConversationID, e.StartedAt, e.EndedAt, e.Chunks, e.Records, e.ExportPath)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// List returns up to limit sessions, most recent first.
func (c *Catalog) List(limit int) ([]Entry, error) {
	query := `
	SELECT conversation_id, started_at, ended_at, chunks, records, export_path
	FROM sessions ORDER BY started_at DESC LIMIT ?
	`

	rows, err := c.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ConversationID, &e.StartedAt, &e.EndedAt, &e.Chunks, &e.Records, &e.ExportPath); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// UpdateExportPath points an existing entry at a re-exported document. A
// conversation the catalog has never seen is not an error.
func (c *Catalog) UpdateExportPath(conversationID, exportPath string) error {
	_, err := c.db.Exec(`UPDATE sessions SET export_path = ? WHERE conversation_id = ?`, exportPath, conversationID)
	if err != nil {
		return fmt.Errorf("failed to update export path: %w", err)
	}
	return nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}
