package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/google/go-github/v32/github"
	"golang.org/x/oauth2"

	"github.com/dparbhakar/git-workspace/internal/config"
	"github.com/dparbhakar/git-workspace/internal/model"
)

func newGithubClient(ctx context.Context, src config.Source) (*github.Client, error) {
	var httpClient *http.Client
	if tok := token(src); tok != "" {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: tok}))
	}
	client := github.NewClient(httpClient)
	if src.URL != "" {
		base, err := url.Parse(strings.TrimSuffix(src.URL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid API base URL %q: %w", src.URL, err)
		}
		client.BaseURL = base
	}
	return client, nil
}

// fetchGithub lists every repository of the source's organization, falling
// back to a user listing when the name is not an organization. Archived
// repositories are always skipped; forks are skipped when configured.
func fetchGithub(ctx context.Context, src config.Source) ([]model.Repository, error) {
	client, err := newGithubClient(ctx, src)
	if err != nil {
		return nil, err
	}

	ghRepos, err := listGithubOrg(ctx, client, src.Name)
	if err != nil && isGithubNotFound(err) {
		// Not an organization - list the name as a user instead.
		ghRepos, err = listGithubUser(ctx, client, src.Name)
	}
	if err != nil {
		return nil, err
	}

	var repos []model.Repository
	for _, r := range ghRepos {
		if r.GetArchived() {
			continue
		}
		if src.SkipForks && r.GetFork() {
			continue
		}
		repos = append(repos, model.Repository{
			Name:   r.GetName(),
			Path:   path.Join(src.Path, r.GetFullName()),
			URL:    r.GetSSHURL(),
			Branch: r.GetDefaultBranch(),
			Metadata: map[string]string{
				"provider": config.ProviderGithub,
				"private":  strconv.FormatBool(r.GetPrivate()),
			},
		})
	}
	return repos, nil
}

func listGithubOrg(ctx context.Context, client *github.Client, org string) ([]*github.Repository, error) {
	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []*github.Repository
	for {
		repos, resp, err := client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, repos...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func listGithubUser(ctx context.Context, client *github.Client, user string) ([]*github.Repository, error) {
	opts := &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []*github.Repository
	for {
		repos, resp, err := client.Repositories.List(ctx, user, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, repos...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func isGithubNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) {
		return false
	}
	return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
