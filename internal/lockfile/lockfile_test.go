package lockfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparbhakar/git-workspace/internal/model"
)

func testRepos() []model.Repository {
	return []model.Repository{
		{
			Name:   "widgets",
			Path:   "github.com/acme/widgets",
			URL:    "git@github.com:acme/widgets.git",
			Branch: "main",
		},
		{
			Name:     "gadgets",
			Path:     "gitlab.com/acme/gadgets",
			URL:      "git@gitlab.com:acme/gadgets.git",
			Upstream: "git@gitlab.com:upstream/gadgets.git",
			Branch:   "master",
			Metadata: map[string]string{"visibility": "private"},
		},
	}
}

func TestLockfile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	lf := New(path)
	repos := testRepos()

	require.NoError(t, lf.Write(repos))
	got, err := lf.Read()
	require.NoError(t, err)
	assert.Equal(t, repos, got)

	// Writing the same logical set again must produce identical bytes.
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, lf.Write(got))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLockfile_ReadMissing(t *testing.T) {
	lf := New(filepath.Join(t.TempDir(), FileName))
	_, err := lf.Read()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLockfile_ReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[[repo]\npath = oops"), 0644))

	_, err := New(path).Read()
	var formatErr *FormatError
	require.Error(t, err)
	assert.True(t, errors.As(err, &formatErr))
}

func TestLockfile_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	lf := New(filepath.Join(dir, FileName))
	require.NoError(t, lf.Write(testRepos()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".workspace-lock-"), "leftover temp file %s", e.Name())
	}
}
