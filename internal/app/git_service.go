package app

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dparbhakar/git-workspace/internal/executor"
	"github.com/dparbhakar/git-workspace/internal/model"
)

// GitService materializes and operates on declared repositories by shelling
// out to the external git tool. It never mutates the Repository values it is
// handed.
type GitService struct{}

// NewGitService creates a new GitService.
func NewGitService() *GitService {
	return &GitService{}
}

// CloneError reports a failed clone, carrying the tool's captured output.
type CloneError struct {
	Repo   string
	Output string
	Err    error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone of %s failed: %v: %s", e.Repo, e.Err, strings.TrimSpace(e.Output))
}

func (e *CloneError) Unwrap() error { return e.Err }

// CommandError reports a command that exited non-zero inside a repository,
// carrying the command's captured output.
type CommandError struct {
	Repo    string
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s failed in %s: %v: %s", e.Command, e.Repo, e.Err, strings.TrimSpace(e.Output))
}

func (e *CommandError) Unwrap() error { return e.Err }

// Clone materializes the repository at its resolved path, streaming git's
// progress output into the progress sink.
func (s *GitService) Clone(workspace string, repo *model.Repository, progress executor.Progress) error {
	path, err := repo.ResolvePath(workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve clone path: %w", err)
	}

	var output bytes.Buffer
	cmd := exec.Command("git", "clone", "--recurse-submodules", "--progress", repo.URL, path)
	cmd.Dir = workspace
	sink := newProgressWriter(progress, &output)
	cmd.Stdout = sink
	cmd.Stderr = sink
	if err := cmd.Run(); err != nil {
		return &CloneError{Repo: repo.ShortName(), Output: output.String(), Err: err}
	}
	return nil
}

// SetUpstream registers the repository's upstream URL as an "upstream"
// remote. A repository without a declared upstream is a no-op. An existing
// upstream remote is replaced so a changed URL takes effect.
func (s *GitService) SetUpstream(workspace string, repo *model.Repository) error {
	if repo.Upstream == "" {
		return nil
	}
	path, err := repo.ResolvePath(workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve repository path: %w", err)
	}
	// Removal fails when the remote does not exist yet - that's expected.
	_ = runGit(path, "remote", "rm", "upstream")
	if err := runGit(path, "remote", "add", "upstream", repo.Upstream); err != nil {
		return fmt.Errorf("failed to add upstream remote: %w", err)
	}
	return nil
}

// SwitchToPrimaryBranch checks out the repository's declared branch. A
// repository without a declared branch is a no-op.
func (s *GitService) SwitchToPrimaryBranch(workspace string, repo *model.Repository) error {
	if repo.Branch == "" {
		return nil
	}
	path, err := repo.ResolvePath(workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve repository path: %w", err)
	}
	if err := runGit(path, "checkout", repo.Branch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", repo.Branch, err)
	}
	return nil
}

// Run executes an arbitrary command with the repository's resolved path as
// working directory, streaming output into the progress sink. A non-zero
// exit is returned as a CommandError carrying the captured output.
func (s *GitService) Run(workspace string, repo *model.Repository, progress executor.Progress, program string, args ...string) error {
	path, err := repo.ResolvePath(workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve repository path: %w", err)
	}

	var output bytes.Buffer
	cmd := exec.Command(program, args...)
	cmd.Dir = path
	sink := newProgressWriter(progress, &output)
	cmd.Stdout = sink
	cmd.Stderr = sink
	if err := cmd.Run(); err != nil {
		return &CommandError{
			Repo:    repo.ShortName(),
			Command: strings.Join(append([]string{program}, args...), " "),
			Output:  output.String(),
			Err:     err,
		}
	}
	return nil
}

// FetchArgs returns the git arguments used to refresh all remotes of a
// repository.
func FetchArgs() []string {
	return []string{"fetch", "--all", "--prune", "--recurse-submodules=on-demand", "--progress"}
}

// PullArgs returns the git arguments used by switch-and-pull: pulling the
// declared branch from the upstream remote when both are present, otherwise
// a plain pull.
func PullArgs(repo *model.Repository) []string {
	if repo.Upstream != "" && repo.Branch != "" {
		return []string{"pull", "upstream", repo.Branch}
	}
	return []string{"pull"}
}

// runGit executes a git command in dir, returning stderr in the error.
func runGit(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
