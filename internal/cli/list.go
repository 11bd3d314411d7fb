package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListCmd returns the list command.
func ListCmd() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all repositories in the workspace",
		Long: `List outputs the names of all known repositories in the workspace.
Passing --full outputs absolute paths instead.`,
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
			for _, r := range repos {
				if !r.Exists(workspace) {
					continue
				}
				if full {
					path, err := r.ResolvePath(workspace)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), path)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), r.ShortName())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "print absolute paths instead of names")
	return cmd
}
