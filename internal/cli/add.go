package cli

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dparbhakar/git-workspace/internal/config"
)

// AddCmd returns the add command with one subcommand per provider.
func AddCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a provider to the workspace configuration",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "workspace.toml", "configuration file to add the provider to")

	cmd.AddCommand(addGithubCmd(&file))
	cmd.AddCommand(addGitlabCmd(&file))
	return cmd
}

func addGithubCmd(file *string) *cobra.Command {
	var clonePath, url, tokenEnv string
	var skipForks bool

	cmd := &cobra.Command{
		Use:   "github <org-or-user>",
		Short: "Add a GitHub organization or user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return addSource(cmd, *file, config.Source{
				Provider:  config.ProviderGithub,
				Name:      args[0],
				Path:      clonePath,
				URL:       url,
				Token:     tokenEnv,
				SkipForks: skipForks,
			})
		},
	}

	cmd.Flags().StringVar(&clonePath, "path", "github.com", "clone path prefix for this provider's repositories")
	cmd.Flags().StringVar(&url, "url", "", "API base URL for GitHub Enterprise installations")
	cmd.Flags().StringVar(&tokenEnv, "token", "GITHUB_TOKEN", "environment variable holding the access token")
	cmd.Flags().BoolVar(&skipForks, "skip-forks", false, "leave forked repositories out of the workspace")
	return cmd
}

func addGitlabCmd(file *string) *cobra.Command {
	var clonePath, url, tokenEnv string
	var skipForks bool

	cmd := &cobra.Command{
		Use:   "gitlab <group>",
		Short: "Add a GitLab group, including its subgroups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return addSource(cmd, *file, config.Source{
				Provider:  config.ProviderGitlab,
				Name:      args[0],
				Path:      clonePath,
				URL:       url,
				Token:     tokenEnv,
				SkipForks: skipForks,
			})
		},
	}

	cmd.Flags().StringVar(&clonePath, "path", "gitlab.com", "clone path prefix for this provider's repositories")
	cmd.Flags().StringVar(&url, "url", "", "base URL for self-hosted GitLab installations")
	cmd.Flags().StringVar(&tokenEnv, "token", "GITLAB_TOKEN", "environment variable holding the access token")
	cmd.Flags().BoolVar(&skipForks, "skip-forks", false, "leave forked repositories out of the workspace")
	return cmd
}

// addSource appends the source to the configuration file unless an equal
// entry already exists.
func addSource(cmd *cobra.Command, file string, src config.Source) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("provider is not correctly configured: %w", err)
	}

	workspace, err := resolveWorkspace(cmd)
	if err != nil {
		return err
	}
	configPath := filepath.Join(workspace, file)
	sources, err := config.Read([]string{configPath})
	if err != nil {
		return err
	}

	for _, existing := range sources {
		if existing == src {
			fmt.Println("Entry already exists, skipping")
			return nil
		}
	}

	fmt.Printf("Adding %s to %s\n", src, color.GreenString(configPath))
	sources = append(sources, src)
	return config.Write(configPath, sources)
}
