package providers

import (
	"path"
	"strconv"

	gitlab "github.com/xanzy/go-gitlab"

	"github.com/dparbhakar/git-workspace/internal/config"
	"github.com/dparbhakar/git-workspace/internal/model"
)

// fetchGitlab lists every project of the source's group, including
// subgroups. Archived projects are always skipped; forks are skipped when
// configured.
func fetchGitlab(src config.Source) ([]model.Repository, error) {
	var opts []gitlab.ClientOptionFunc
	if src.URL != "" {
		opts = append(opts, gitlab.WithBaseURL(src.URL))
	}
	client, err := gitlab.NewClient(token(src), opts...)
	if err != nil {
		return nil, err
	}

	listOpts := &gitlab.ListGroupProjectsOptions{
		ListOptions:      gitlab.ListOptions{PerPage: 100},
		IncludeSubGroups: gitlab.Bool(true),
		Archived:         gitlab.Bool(false),
	}

	var repos []model.Repository
	for {
		projects, resp, err := client.Groups.ListGroupProjects(src.Name, listOpts)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			if src.SkipForks && p.ForkedFromProject != nil {
				continue
			}
			repos = append(repos, model.Repository{
				Name:   p.Path,
				Path:   path.Join(src.Path, p.PathWithNamespace),
				URL:    p.SSHURLToRepo,
				Branch: p.DefaultBranch,
				Metadata: map[string]string{
					"provider": config.ProviderGitlab,
					"private":  strconv.FormatBool(p.Visibility == gitlab.PrivateVisibility),
				},
			})
		}
		if resp.NextPage == 0 {
			return repos, nil
		}
		listOpts.Page = resp.NextPage
	}
}
