// Package providers fetches declared repository lists from hosting
// providers. The provider set is closed: dispatch happens on the config
// source's provider tag, and the rest of the system depends only on Fetch.
package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/dparbhakar/git-workspace/internal/config"
	"github.com/dparbhakar/git-workspace/internal/model"
)

// FetchError wraps a provider-specific failure with the source it came from.
type FetchError struct {
	Source config.Source
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch repositories from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetch returns the repositories declared by one provider source.
func Fetch(ctx context.Context, src config.Source) ([]model.Repository, error) {
	if err := src.Validate(); err != nil {
		return nil, &FetchError{Source: src, Err: err}
	}

	var repos []model.Repository
	var err error
	switch src.Provider {
	case config.ProviderGithub:
		repos, err = fetchGithub(ctx, src)
	case config.ProviderGitlab:
		repos, err = fetchGitlab(src)
	default:
		err = fmt.Errorf("unknown provider %q", src.Provider)
	}
	if err != nil {
		return nil, &FetchError{Source: src, Err: err}
	}
	return repos, nil
}

// token resolves the source's access token from the environment variable
// named in its config. An empty result means unauthenticated access.
func token(src config.Source) string {
	if src.Token == "" {
		return ""
	}
	return os.Getenv(src.Token)
}
