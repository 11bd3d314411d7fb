package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dparbhakar/git-workspace/internal/app"
	"github.com/dparbhakar/git-workspace/internal/executor"
	"github.com/dparbhakar/git-workspace/internal/model"
)

// SwitchAndPullCmd returns the switch-and-pull command.
func SwitchAndPullCmd() *cobra.Command {
	var threads int

	cmd := &cobra.Command{
		Use:   "switch-and-pull",
		Short: "Switch to the primary branch and pull all repositories",
		Long: `For every repository in the workspace, switch to its primary branch and
pull new commits - from the declared upstream branch when an upstream remote
is configured, otherwise a plain pull.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, err := resolveWorkspace(cmd)
			if err != nil {
				return err
			}
			repos, err := readLockfile(workspace)
			if err != nil {
				return err
			}
			existing := existingRepos(workspace, repos)
			fmt.Printf("Switching to the primary branch and pulling %d repositories\n", len(existing))

			git := app.NewGitService()
			return mapRepositories(existing, threads, func(r model.Repository, p executor.Progress) error {
				if err := git.SwitchToPrimaryBranch(workspace, &r); err != nil {
					return err
				}
				return git.Run(workspace, &r, p, "git", app.PullArgs(&r)...)
			})
		},
	}

	cmd.Flags().IntVarP(&threads, "threads", "t", executor.DefaultThreads, "number of repositories to process in parallel")
	return cmd
}
