package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dparbhakar/git-workspace/internal/archive"
)

// ArchiveCmd returns the archive command.
func ArchiveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive repositories that are no longer declared",
		Long: `Archive finds version-controlled directories in the workspace that are no
longer present in the lockfile and moves them into the workspace's archive
directory, preserving their relative paths.`,
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
			plan, err := archive.Plan(workspace, repos)
			if err != nil {
				return err
			}

			if !force {
				for _, m := range plan {
					relFrom, _ := filepath.Rel(workspace, m.Source)
					relTo, _ := filepath.Rel(workspace, m.Dest)
					fmt.Printf("Move %s to %s\n", color.YellowString(relFrom), color.GreenString(relTo))
				}
				fmt.Printf("Will archive %s projects\n", color.RedString("%d", len(plan)))
				if len(plan) == 0 || !confirm("Proceed?") {
					return nil
				}
			}
			if len(plan) > 0 {
				archive.Execute(os.Stdout, plan)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "archive without a confirmation prompt")
	return cmd
}
