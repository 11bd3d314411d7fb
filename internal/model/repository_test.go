package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ShortName(t *testing.T) {
	r := Repository{Path: "github.com/acme/widgets"}
	assert.Equal(t, "widgets", r.ShortName())

	r = Repository{Name: "widgets-api", Path: "github.com/acme/widgets"}
	assert.Equal(t, "widgets-api", r.ShortName())
}

func TestRepository_ResolvePath(t *testing.T) {
	ws := t.TempDir()

	r := Repository{Path: "github.com/acme/widgets"}
	path, err := r.ResolvePath(ws)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws, "github.com", "acme", "widgets"), path)
}

func TestRepository_ResolvePath_Invalid(t *testing.T) {
	ws := t.TempDir()

	cases := []string{"", "..", "../sibling", "a/../../b", "/etc/passwd"}
	for _, p := range cases {
		r := Repository{Path: p}
		_, err := r.ResolvePath(ws)
		var pathErr *PathError
		require.Error(t, err, "path %q", p)
		assert.True(t, errors.As(err, &pathErr), "path %q should yield a PathError", p)
	}
}

func TestRepository_Exists(t *testing.T) {
	ws := t.TempDir()
	r := Repository{Path: "host/org/proj"}

	assert.False(t, r.Exists(ws))

	// A bare directory without .git does not count.
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "host", "org", "proj"), 0755))
	assert.False(t, r.Exists(ws))

	require.NoError(t, os.MkdirAll(filepath.Join(ws, "host", "org", "proj", ".git"), 0755))
	assert.True(t, r.Exists(ws))
}

func TestSortDedup(t *testing.T) {
	a := Repository{Path: "a/a", URL: "first"}
	aDup := Repository{Path: "a/a", URL: "second"}
	b := Repository{Path: "a/b"}
	c := Repository{Path: "c/c"}

	// Dedup must be order-independent modulo which duplicate wins sorting
	// stability, and every path must end up unique and ascending.
	inputs := [][]Repository{
		{c, aDup, b, a, b},
		{a, aDup, b, b, c},
		{b, c, a},
	}
	for _, in := range inputs {
		repos := append([]Repository(nil), in...)
		Sort(repos)
		repos = Dedup(repos)

		seen := map[string]bool{}
		for i, r := range repos {
			assert.False(t, seen[r.Path], "duplicate path %q", r.Path)
			seen[r.Path] = true
			if i > 0 {
				assert.Less(t, repos[i-1].Path, r.Path)
			}
		}
		assert.Len(t, repos, 3)
	}
}
