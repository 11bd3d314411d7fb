package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dparbhakar/git-workspace/internal/config"
	"github.com/dparbhakar/git-workspace/internal/executor"
	"github.com/dparbhakar/git-workspace/internal/lockfile"
	"github.com/dparbhakar/git-workspace/internal/model"
	"github.com/dparbhakar/git-workspace/internal/providers"
)

// resolveWorkspace expands, creates if absent, and canonicalizes the
// workspace root passed via --workspace or GIT_WORKSPACE.
func resolveWorkspace(cmd *cobra.Command) (string, error) {
	raw := cmd.Flag("workspace").Value.String()
	if raw == "" {
		return "", fmt.Errorf("no workspace set: pass --workspace or set GIT_WORKSPACE")
	}

	expanded, err := expandTilde(raw)
	if err != nil {
		return "", fmt.Errorf("failed to expand workspace path: %w", err)
	}

	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		if err := os.MkdirAll(expanded, 0755); err != nil {
			return "", fmt.Errorf("failed to create workspace directory %s: %w", expanded, err)
		}
		fmt.Printf("Created %s as it did not exist\n", expanded)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace path %s: %w", expanded, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize workspace path %s: %w", abs, err)
	}
	return canonical, nil
}

func expandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// readLockfile reads the workspace lockfile, turning a missing file into a
// user-actionable message.
func readLockfile(workspace string) ([]model.Repository, error) {
	repos, err := lockfile.New(filepath.Join(workspace, lockfile.FileName)).Read()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no lockfile found in %s: run `git-workspace lock` first", workspace)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}
	return repos, nil
}

// existingRepos filters the declared set down to repositories present on
// disk.
func existingRepos(workspace string, repos []model.Repository) []model.Repository {
	var out []model.Repository
	for _, r := range repos {
		if r.Exists(workspace) {
			out = append(out, r)
		}
	}
	return out
}

// mapRepositories runs fn over the repositories through the execution
// engine, prints the failure report, and turns any failure into a non-zero
// exit for the command.
func mapRepositories(repos []model.Repository, threads int, fn func(model.Repository, executor.Progress) error) error {
	failures, err := executor.Map(repos, threads,
		func(r model.Repository) string { return r.ShortName() },
		fn)
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		executor.Report(os.Stderr, failures)
		return fmt.Errorf("%d of %d repositories failed", len(failures), len(repos))
	}
	return nil
}

// runLock fetches all provider sources through the execution engine and
// rewrites the lockfile with the sorted, deduplicated result.
func runLock(workspace string) error {
	files, err := config.Files(workspace)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no configuration files found in %s: are you in the right workspace?", workspace)
	}
	sources, err := config.Read(files)
	if err != nil {
		return err
	}

	fmt.Println("Fetching repositories...")

	var mu sync.Mutex
	var all []model.Repository
	failures, err := executor.Map(sources, executor.DefaultThreads,
		func(s config.Source) string { return s.String() },
		func(s config.Source, _ executor.Progress) error {
			repos, err := providers.Fetch(context.Background(), s)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, repos...)
			mu.Unlock()
			return nil
		})
	if err != nil {
		return err
	}
	if len(failures) > 0 {
		executor.Report(os.Stderr, failures)
		return fmt.Errorf("failed to fetch repositories from %d providers", len(failures))
	}

	model.Sort(all)
	all = model.Dedup(all)
	if err := lockfile.New(filepath.Join(workspace, lockfile.FileName)).Write(all); err != nil {
		return err
	}
	return nil
}

// confirm prompts on stdin and reports whether the user answered yes.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
