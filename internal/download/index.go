package download

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// Index records completed downloads so the downloads listing doesn't have to
// guess titles back out of file names.
type Index struct {
	db *sql.DB
}

// Entry is one completed download.
type Entry struct {
	Title       string
	Path        string
	CompletedAt time.Time
}

// OpenIndex opens (creating if needed) the download index at dbPath.
func OpenIndex(dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS downloads (
		path TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		completed_at TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

// Add records a completed download, replacing any previous record for the
// same path (re-downloads are routine).
func (ix *Index) Add(title, path string) error {
	_, err := ix.db.Exec(
		`INSERT OR REPLACE INTO downloads (path, title, completed_at) VALUES (?, ?, ?)`,
		path, title, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// List returns every recorded download, newest first.
func (ix *Index) List() ([]Entry, error) {
	rows, err := ix.db.Query(`SELECT title, path, completed_at FROM downloads ORDER BY completed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Title, &e.Path, &ts); err != nil {
			return nil, err
		}
		e.CompletedAt, _ = time.Parse(time.RFC3339, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}
