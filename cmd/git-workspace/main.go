package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dparbhakar/git-workspace/internal/cli"
	"github.com/dparbhakar/git-workspace/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "git-workspace",
		Short:   "Sync personal and work git repositories from multiple providers",
		Version: version.String(),
		Long: `git-workspace keeps a workspace directory in sync with the repositories
declared by your hosting providers: it locks the declared set to a lockfile,
clones what is missing, archives what is gone, and runs bulk git operations
across the whole set.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("workspace", "w", os.Getenv("GIT_WORKSPACE"),
		"workspace directory (defaults to $GIT_WORKSPACE)")

	// Add subcommands
	rootCmd.AddCommand(cli.UpdateCmd())
	rootCmd.AddCommand(cli.FetchCmd())
	rootCmd.AddCommand(cli.LockCmd())
	rootCmd.AddCommand(cli.SwitchAndPullCmd())
	rootCmd.AddCommand(cli.ListCmd())
	rootCmd.AddCommand(cli.ArchiveCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.AddCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
