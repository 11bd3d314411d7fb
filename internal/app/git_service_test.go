package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dparbhakar/git-workspace/internal/model"
)

// GitService's subprocess paths are covered by integration usage; the pure
// argument construction is tested directly.

func TestPullArgs(t *testing.T) {
	plain := &model.Repository{Path: "a/b"}
	assert.Equal(t, []string{"pull"}, PullArgs(plain))

	branchOnly := &model.Repository{Path: "a/b", Branch: "main"}
	assert.Equal(t, []string{"pull"}, PullArgs(branchOnly))

	upstreamOnly := &model.Repository{Path: "a/b", Upstream: "git@host:up/b.git"}
	assert.Equal(t, []string{"pull"}, PullArgs(upstreamOnly))

	both := &model.Repository{Path: "a/b", Upstream: "git@host:up/b.git", Branch: "main"}
	assert.Equal(t, []string{"pull", "upstream", "main"}, PullArgs(both))
}

func TestFetchArgs(t *testing.T) {
	args := FetchArgs()
	assert.Equal(t, "fetch", args[0])
	assert.Contains(t, args, "--prune")
	assert.Contains(t, args, "--recurse-submodules=on-demand")
}

type recordingSink struct {
	messages []string
}

func (r *recordingSink) SetMessage(msg string) { r.messages = append(r.messages, msg) }

func TestProgressWriter_StreamsLastLine(t *testing.T) {
	sink := &recordingSink{}
	var capture []byte
	w := newProgressWriter(sink, writerFunc(func(p []byte) (int, error) {
		capture = append(capture, p...)
		return len(p), nil
	}))

	_, err := w.Write([]byte("Cloning into 'widgets'...\nReceiving objects: 10%\rReceiving objects: 50%\r"))
	assert.NoError(t, err)
	_, err = w.Write([]byte("Receiving objects: 100%, done.\n"))
	assert.NoError(t, err)

	assert.Contains(t, string(capture), "Cloning into 'widgets'")
	assert.Equal(t, "Receiving objects: 50%", sink.messages[0])
	assert.Equal(t, "Receiving objects: 100%, done.", sink.messages[1])
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
