package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dparbhakar/git-workspace/internal/lockfile"
	"github.com/dparbhakar/git-workspace/internal/model"
)

// testRoot wires a command under a root carrying the workspace flag, the way
// main does.
func testRoot(workspace string, cmd *cobra.Command) (*cobra.Command, *bytes.Buffer) {
	root := &cobra.Command{Use: "git-workspace"}
	root.PersistentFlags().StringP("workspace", "w", workspace, "")
	root.AddCommand(cmd)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestListCmd_PrintsOnlyExistingRepos(t *testing.T) {
	ws, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	repos := []model.Repository{
		{Path: "a/b"},
		{Path: "a/c"},
	}
	require.NoError(t, lockfile.New(filepath.Join(ws, lockfile.FileName)).Write(repos))
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "a", "b", ".git"), 0755))

	root, out := testRoot(ws, ListCmd())
	root.SetArgs([]string{"list"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "b\n", out.String())
}

func TestListCmd_Full(t *testing.T) {
	ws, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	repos := []model.Repository{{Path: "a/b"}}
	require.NoError(t, lockfile.New(filepath.Join(ws, lockfile.FileName)).Write(repos))
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "a", "b", ".git"), 0755))

	root, out := testRoot(ws, ListCmd())
	root.SetArgs([]string{"list", "--full"})
	require.NoError(t, root.Execute())

	assert.Equal(t, filepath.Join(ws, "a", "b")+"\n", out.String())
}

func TestListCmd_MissingLockfile(t *testing.T) {
	ws := t.TempDir()
	root, _ := testRoot(ws, ListCmd())
	root.SetArgs([]string{"list"})
	root.SilenceErrors = true
	root.SilenceUsage = true

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run `git-workspace lock` first")
}
