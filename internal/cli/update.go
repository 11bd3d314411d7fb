package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dparbhakar/git-workspace/internal/app"
	"github.com/dparbhakar/git-workspace/internal/archive"
	"github.com/dparbhakar/git-workspace/internal/executor"
	"github.com/dparbhakar/git-workspace/internal/model"
)

// UpdateCmd returns the update command.
func UpdateCmd() *cobra.Command {
	var threads int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the workspace, cloning any missing repositories",
		Long: `Update refreshes the lockfile from the configured providers, clones every
declared repository that does not exist on disk yet, and reports how many
on-disk repositories could be archived. Existing repositories are left
untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, err := resolveWorkspace(cmd)
			if err != nil {
				return err
			}
			if err := runLock(workspace); err != nil {
				return err
			}

			repos, err := readLockfile(workspace)
			if err != nil {
				return err
			}
			fmt.Printf("Updating %d repositories\n", len(repos))

			git := app.NewGitService()
			if err := mapRepositories(repos, threads, func(r model.Repository, p executor.Progress) error {
				if r.Exists(workspace) {
					return nil
				}
				if err := git.Clone(workspace, &r, p); err != nil {
					return err
				}
				return git.SetUpstream(workspace, &r)
			}); err != nil {
				return err
			}

			plan, err := archive.Plan(workspace, repos)
			if err != nil {
				return err
			}
			if len(plan) > 0 {
				fmt.Printf("There are %d repositories that can be archived\n", len(plan))
				fmt.Printf("Run %s to archive them\n", color.YellowString("`git-workspace archive`"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&threads, "threads", "t", executor.DefaultThreads, "number of repositories to process in parallel")
	return cmd
}
