package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparbhakar/git-workspace/internal/config"
)

const orgReposBody = `[
  {"name": "widgets", "full_name": "acme/widgets", "ssh_url": "git@github.com:acme/widgets.git", "default_branch": "main"},
  {"name": "old", "full_name": "acme/old", "ssh_url": "git@github.com:acme/old.git", "default_branch": "master", "archived": true},
  {"name": "forked", "full_name": "acme/forked", "ssh_url": "git@github.com:acme/forked.git", "default_branch": "main", "fork": true}
]`

func githubSource(url string) config.Source {
	return config.Source{
		Provider: config.ProviderGithub,
		Name:     "acme",
		Path:     "github.com",
		URL:      url,
	}
}

func TestFetch_GithubOrg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orgs/acme/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, orgReposBody)
	}))
	defer srv.Close()

	repos, err := Fetch(context.Background(), githubSource(srv.URL))
	require.NoError(t, err)

	// Archived repos are dropped, forks kept (skip_forks off).
	require.Len(t, repos, 2)
	assert.Equal(t, "github.com/acme/widgets", repos[0].Path)
	assert.Equal(t, "git@github.com:acme/widgets.git", repos[0].URL)
	assert.Equal(t, "main", repos[0].Branch)
	assert.Equal(t, config.ProviderGithub, repos[0].Metadata["provider"])
	assert.Equal(t, "github.com/acme/forked", repos[1].Path)
}

func TestFetch_GithubSkipForks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, orgReposBody)
	}))
	defer srv.Close()

	src := githubSource(srv.URL)
	src.SkipForks = true
	repos, err := Fetch(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "widgets", repos[0].ShortName())
}

func TestFetch_GithubUserFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/orgs/acme/repos":
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		case "/users/acme/repos":
			fmt.Fprint(w, `[{"name": "dotfiles", "full_name": "acme/dotfiles", "ssh_url": "git@github.com:acme/dotfiles.git", "default_branch": "main"}]`)
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	repos, err := Fetch(context.Background(), githubSource(srv.URL))
	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "github.com/acme/dotfiles", repos[0].Path)
}

func TestFetch_GithubError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), githubSource(srv.URL))
	require.Error(t, err)
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetch_InvalidSource(t *testing.T) {
	_, err := Fetch(context.Background(), config.Source{Provider: "sourcehut", Name: "x", Path: "p"})
	require.Error(t, err)
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
