// Package archive finds version-controlled directories that are no longer
// declared in the lockfile and relocates them under the workspace's archive
// root, preserving their relative paths.
package archive

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"

	"github.com/dparbhakar/git-workspace/internal/model"
)

// Move is one planned relocation of an orphaned directory.
type Move struct {
	Source string
	Dest   string
}

// Root returns the archive root for a workspace. Windows dislikes the
// leading-dot name, so an underscore form is used there.
func Root(workspace string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(workspace, "_archive")
	}
	return filepath.Join(workspace, ".archive")
}

// Plan walks the workspace and returns a relocation plan for every orphaned
// version-controlled directory: a directory containing .git whose path is
// not a declared, existing repository. Declared repositories and the archive
// root are never descended into, and neither is an orphan once found, so
// nested repositories inside an orphan are not separately reported. The
// workspace path must already be canonicalized. Any traversal error aborts
// the plan.
func Plan(workspace string, repos []model.Repository) ([]Move, error) {
	archiveRoot := Root(workspace)

	// Create the archive root up front so canonicalizing it cannot fail.
	if err := os.MkdirAll(archiveRoot, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", archiveRoot, err)
	}
	canonicalRoot, err := filepath.EvalSymlinks(archiveRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize archive directory: %w", err)
	}

	// Protected set: declared repositories that exist on disk, plus the
	// archive root itself.
	protected := map[string]bool{canonicalRoot: true}
	for _, r := range repos {
		if !r.Exists(workspace) {
			continue
		}
		path, err := r.ResolvePath(workspace)
		if err != nil {
			return nil, err
		}
		protected[path] = true
	}

	var plan []Move
	err = filepath.WalkDir(workspace, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if protected[path] {
			return fs.SkipDir
		}
		if path == workspace {
			return nil
		}
		if info, err := os.Stat(filepath.Join(path, ".git")); err == nil && info.IsDir() {
			rel, err := filepath.Rel(workspace, path)
			if err != nil {
				return fmt.Errorf("failed to relativize %s: %w", path, err)
			}
			plan = append(plan, Move{Source: path, Dest: filepath.Join(archiveRoot, rel)})
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Execute performs the planned moves. Each move is independent: a rename
// that fails (typically because the destination already exists) is reported
// on w and the remaining moves still run.
func Execute(w io.Writer, plan []Move) {
	fmt.Fprintf(w, "Archiving %d repositories\n", len(plan))
	for _, m := range plan {
		if err := os.MkdirAll(filepath.Dir(m.Dest), 0755); err != nil {
			fmt.Fprintf(w, "%s %v\n", color.RedString("Error creating directory!"), err)
			continue
		}
		if err := os.Rename(m.Source, m.Dest); err != nil {
			fmt.Fprintf(w, "%s %v\n  Source: %s\n  Dest:   %s\nPlease remove the existing directory before retrying\n",
				color.RedString("Error moving directory!"),
				err,
				color.YellowString(m.Source),
				color.GreenString(m.Dest))
			continue
		}
		fmt.Fprintf(w, "Moved %s to %s\n", color.YellowString(m.Source), color.GreenString(m.Dest))
	}
}
