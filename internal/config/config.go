// Package config reads and writes the workspace's provider configuration:
// TOML files declaring which hosting providers to fetch repository lists
// from. Every *.toml file directly under the workspace root is a config
// file, except the lockfile itself.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dparbhakar/git-workspace/internal/lockfile"
)

// Provider tags for Source. The set is closed: dispatch on the tag happens
// in one switch per capability.
const (
	ProviderGithub = "github"
	ProviderGitlab = "gitlab"
)

// Source is one provider configuration entry. The Provider field tags which
// backend the entry addresses; the remaining fields are shared across
// backends. Token names an environment variable holding the access token -
// the tool never stores credentials itself.
type Source struct {
	Provider  string `toml:"provider"`
	Name      string `toml:"name"`
	Path      string `toml:"path"`
	URL       string `toml:"url,omitempty"`
	Token     string `toml:"token,omitempty"`
	SkipForks bool   `toml:"skip_forks,omitempty"`
}

// String describes the source for progress and error messages.
func (s Source) String() string {
	return fmt.Sprintf("%s provider %q (path %s)", s.Provider, s.Name, s.Path)
}

// Validate checks that the source is usable.
func (s Source) Validate() error {
	switch s.Provider {
	case ProviderGithub, ProviderGitlab:
	default:
		return fmt.Errorf("unknown provider %q", s.Provider)
	}
	if s.Name == "" {
		return fmt.Errorf("%s provider requires a name", s.Provider)
	}
	if s.Path == "" {
		return fmt.Errorf("%s provider requires a clone path", s.Provider)
	}
	return nil
}

type document struct {
	Providers []Source `toml:"provider"`
}

// Files returns every provider configuration file in the workspace root:
// all *.toml files except the lockfile, sorted by name.
func Files(workspace string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(workspace, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list config files: %w", err)
	}
	var files []string
	for _, m := range matches {
		if filepath.Base(m) == lockfile.FileName {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// Read parses every given file and merges their provider entries in file
// order.
func Read(files []string) ([]Source, error) {
	var sources []Source
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", f, err)
		}
		var doc document
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", f, err)
		}
		sources = append(sources, doc.Providers...)
	}
	return sources, nil
}

// Write replaces one configuration file with the given sources.
func Write(file string, sources []Source) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(document{Providers: sources}); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", file, err)
	}
	return nil
}
