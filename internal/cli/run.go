package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dparbhakar/git-workspace/internal/app"
	"github.com/dparbhakar/git-workspace/internal/executor"
	"github.com/dparbhakar/git-workspace/internal/model"
)

// RunCmd returns the run command.
func RunCmd() *cobra.Command {
	var threads int

	cmd := &cobra.Command{
		Use:   "run <command> [args...]",
		Short: "Run a command in every repository in the workspace",
		Long: `Run executes the given command in every repository in the workspace, with
the working directory set to the repository directory.`,
		Args: cobra.MinimumNArgs(1),
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

			program, programArgs := args[0], args[1:]
			fmt.Printf("Running %s on %d repositories\n", strings.Join(args, " "), len(existing))

			git := app.NewGitService()
			return mapRepositories(existing, threads, func(r model.Repository, p executor.Progress) error {
				return git.Run(workspace, &r, p, program, programArgs...)
			})
		},
	}

	// Stop flag parsing at the first positional so the target command's own
	// flags pass through untouched.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().IntVarP(&threads, "threads", "t", executor.DefaultThreads, "number of repositories to process in parallel")
	return cmd
}
