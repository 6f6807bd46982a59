package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// maxRecent caps the recent-projects list.
const maxRecent = 20

// RecentProject is one entry of the recently-opened list.
type RecentProject struct {
	Path     string
	Name     string
	OpenedAt time.Time
}

// Workspace is the sqlite-backed application state shared across
// sessions: which projects were opened recently and when.
type Workspace struct {
	db   *sql.DB
	path string
}

// OpenWorkspace opens (creating if necessary) the workspace database at
// the given path. Use ":memory:" for tests.
func OpenWorkspace(path string) (*Workspace, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("opening workspace %s: %w", path, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening workspace %s: %w", path, err)
	}
	// Single connection: the workspace is tiny and this keeps
	// ":memory:" databases coherent across statements.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening workspace %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing workspace schema: %w", err)
	}
	return &Workspace{db: db, path: path}, nil
}

// Close closes the workspace database.
func (w *Workspace) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}

// Touch records that a project was opened or saved now, inserting or
// refreshing its recent entry and trimming the list to the cap.
func (w *Workspace) Touch(path, name string) error {
	_, err := w.db.Exec(
		`INSERT INTO recent_projects (path, name, opened_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET name = excluded.name, opened_at = excluded.opened_at`,
		path, name, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording recent project: %w", err)
	}
	_, err = w.db.Exec(
		`DELETE FROM recent_projects WHERE path NOT IN (
		   SELECT path FROM recent_projects ORDER BY opened_at DESC LIMIT ?)`,
		maxRecent,
	)
	if err != nil {
		return fmt.Errorf("trimming recent projects: %w", err)
	}
	return nil
}

// Recent returns the most recently opened projects, newest first.
func (w *Workspace) Recent(limit int) ([]RecentProject, error) {
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}
	rows, err := w.db.Query(
		`SELECT path, name, opened_at FROM recent_projects ORDER BY opened_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent projects: %w", err)
	}
	defer rows.Close()

	var out []RecentProject
	for rows.Next() {
		var r RecentProject
		if err := rows.Scan(&r.Path, &r.Name, &r.OpenedAt); err != nil {
			return nil, fmt.Errorf("listing recent projects: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Forget drops a project from the recent list, e.g. when its file has
// been deleted.
func (w *Workspace) Forget(path string) error {
	_, err := w.db.Exec(`DELETE FROM recent_projects WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("removing recent project: %w", err)
	}
	return nil
}
