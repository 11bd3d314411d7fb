package cli

import (
	"github.com/spf13/cobra"
)

// LockCmd returns the lock command.
func LockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Fetch all repositories from configured providers and write the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, err := resolveWorkspace(cmd)
			if err != nil {
				return err
			}
			return runLock(workspace)
		},
	}
}
