// Package lockfile persists the declared repository set as a TOML file at
// the workspace root. The file is the source of truth for every bulk command
// and is rewritten as a whole on each lock.
package lockfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dparbhakar/git-workspace/internal/model"
)

// FileName is the lockfile's name inside the workspace root.
const FileName = "workspace-lock.toml"

// FormatError reports a lockfile that exists but cannot be parsed.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed lockfile %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Lockfile reads and writes one lockfile path.
type Lockfile struct {
	path string
}

// New returns a Lockfile for the given path.
func New(path string) *Lockfile {
	return &Lockfile{path: path}
}

// Path returns the lockfile path.
func (l *Lockfile) Path() string { return l.path }

type document struct {
	Repos []model.Repository `toml:"repo"`
}

// Read parses the lockfile and returns its repositories in file order.
// A missing file is returned as a wrapped fs.ErrNotExist so callers can turn
// it into a "run lock first" message rather than a crash.
func (l *Lockfile) Read() ([]model.Repository, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Path: l.path, Err: err}
	}
	return doc.Repos, nil
}

// Write serializes the repositories and atomically replaces the lockfile.
// The caller must pass an already sorted and deduplicated list; Write does
// not re-sort, so repeated writes of the same set are byte-identical.
func (l *Lockfile) Write(repos []model.Repository) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(document{Repos: repos}); err != nil {
		return fmt.Errorf("failed to serialize lockfile: %w", err)
	}

	// Write to a temporary file in the same directory, then rename into
	// place. A crash mid-write leaves the previous lockfile intact.
	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, ".workspace-lock-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary lockfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temporary lockfile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temporary lockfile: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set lockfile permissions: %w", err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace lockfile: %w", err)
	}
	return nil
}
