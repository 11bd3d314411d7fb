package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dparbhakar/git-workspace/internal/app"
	"github.com/dparbhakar/git-workspace/internal/executor"
	"github.com/dparbhakar/git-workspace/internal/model"
)

// FetchCmd returns the fetch command.
func FetchCmd() *cobra.Command {
	var threads int

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch new commits for all repositories in the workspace",
		Args:  cobra.NoArgs,
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
			fmt.Printf("Fetching new commits for %d repositories\n", len(existing))

			git := app.NewGitService()
			fetchArgs := app.FetchArgs()
			return mapRepositories(existing, threads, func(r model.Repository, p executor.Progress) error {
				return git.Run(workspace, &r, p, "git", fetchArgs...)
			})
		},
	}

	cmd.Flags().IntVarP(&threads, "threads", "t", executor.DefaultThreads, "number of repositories to process in parallel")
	return cmd
}
