package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Repository is one declared unit of work: a version-controlled project that
// should exist at Path (relative to the workspace root). Path is the identity
// key; two repositories are the same repository iff their paths are equal.
// Repositories are constructed by providers or by reading the lockfile and
// are never mutated afterwards.
type Repository struct {
	Name     string            `toml:"name"`
	Path     string            `toml:"path"`
	URL      string            `toml:"url"`
	Upstream string            `toml:"upstream,omitempty"`
	Branch   string            `toml:"branch,omitempty"`
	Metadata map[string]string `toml:"metadata,omitempty"`
}

// PathError reports a repository path that cannot be resolved inside the
// workspace.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid repository path %q: %s", e.Path, e.Reason)
}

// ShortName returns the short identifier for the repository: the declared
// name, or the last path segment when no name was declared.
func (r *Repository) ShortName() string {
	if r.Name != "" {
		return r.Name
	}
	parts := strings.Split(strings.TrimSuffix(r.Path, "/"), "/")
	return parts[len(parts)-1]
}

// ResolvePath joins the repository path onto the workspace root and validates
// that the result stays inside it.
func (r *Repository) ResolvePath(workspace string) (string, error) {
	if r.Path == "" {
		return "", &PathError{Path: r.Path, Reason: "path is empty"}
	}
	rel := filepath.FromSlash(r.Path)
	if filepath.IsAbs(rel) {
		return "", &PathError{Path: r.Path, Reason: "path is absolute"}
	}
	joined := filepath.Join(workspace, rel)
	// filepath.Join cleans ".." segments, so an escaping path resolves to
	// something outside the workspace root.
	if joined != workspace && !strings.HasPrefix(joined, workspace+string(filepath.Separator)) {
		return "", &PathError{Path: r.Path, Reason: "path escapes the workspace"}
	}
	if joined == workspace {
		return "", &PathError{Path: r.Path, Reason: "path resolves to the workspace root"}
	}
	return joined, nil
}

// Exists reports whether the repository is materialized on disk: its resolved
// path contains a .git directory.
func (r *Repository) Exists(workspace string) bool {
	path, err := r.ResolvePath(workspace)
	if err != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}

// Sort orders repositories by their path, ascending.
func Sort(repos []Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Path < repos[j].Path
	})
}

// Dedup removes adjacent repositories sharing a path. The input must already
// be sorted; the first occurrence wins.
func Dedup(repos []Repository) []Repository {
	out := repos[:0]
	for _, r := range repos {
		if len(out) > 0 && out[len(out)-1].Path == r.Path {
			continue
		}
		out = append(out, r)
	}
	return out
}
