// Package store persists projects to .dinsp files and keeps the
// sqlite-backed workspace state (recent projects). The project file is
// the project's JSON form, indented, written atomically.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/datainspect/datainspect/internal/model"
)

// Extension is the canonical project file extension. Save normalizes
// user-supplied paths to it.
const Extension = ".dinsp"

// NotFoundError indicates a project file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("project file not found: %s", e.Path)
}

// LoadError indicates a project file that exists but cannot be
// reconstructed. Field carries the offending field when the structure is
// malformed.
type LoadError struct {
	Path  string
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("loading %s: field %q: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NormalizePath appends or replaces the file extension so every saved
// project ends in .dinsp.
func NormalizePath(path string) string {
	if filepath.Ext(path) != Extension {
		ext := filepath.Ext(path)
		return path[:len(path)-len(ext)] + Extension
	}
	return path
}

// Save writes the project to the given path, creating parent
// directories as needed. Only after the write has fully succeeded is the
// project marked saved; a failed save leaves the dirty state untouched.
// Returns the normalized path actually written.
func Save(p *model.Project, path string) (string, error) {
	path = NormalizePath(path)

	snapshot, err := p.Snapshot()
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	data, err := p.ToJSON()
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}

	// Write to a temp file and rename so a failure never leaves a
	// truncated project file behind.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dinsp-*")
	if err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("saving %s: %w", path, err)
	}

	p.FilePath = path
	p.MarkSaved(snapshot)
	slog.Debug("project saved", "path", path)
	return path, nil
}

// Load reads a project file and reconstructs the full object graph,
// ids and timestamps included. A freshly loaded project reports no
// unsaved changes.
func Load(path string) (*model.Project, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	p, err := model.ProjectFromJSON(data)
	if err != nil {
		var de *model.DecodeError
		if errors.As(err, &de) {
			return nil, &LoadError{Path: path, Field: de.Field, Err: err}
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	p.FilePath = path
	slog.Debug("project loaded", "path", path, "sources", p.DataSourceCount())
	return p, nil
}
