// Package executor fans a per-item operation out across a bounded worker
// pool while rendering progress and collecting failures. It is shared by the
// repository batch commands and by provider fetches during lock: both are
// "apply f to every item, keep going on failure, report at the end".
package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultThreads is the worker count used when the user does not override it.
const DefaultThreads = 8

// Failure records one item's error, tagged with the item's label for the
// end-of-batch report.
type Failure struct {
	Label string
	Err   error
}

// Map applies fn to every item with at most threads workers running at once.
// A failing item never aborts its siblings: all items are attempted and
// failures are returned for reporting. Map itself only fails when the pool
// cannot be constructed (threads < 1).
func Map[T any](items []T, threads int, label func(T) string, fn func(T, Progress) error) ([]Failure, error) {
	return mapWith(items, threads, label, fn, os.Stdout)
}

func mapWith[T any](items []T, threads int, label func(T) string, fn func(T, Progress) error, out io.Writer) ([]Failure, error) {
	if threads < 1 {
		return nil, fmt.Errorf("invalid thread count %d", threads)
	}
	// Nothing to do: don't build a renderer for it. A zero-total mpb bar
	// never completes, which would block the attended display's Wait.
	if len(items) == 0 {
		return nil, nil
	}

	rend := newRenderer(len(items), out)

	var mu sync.Mutex
	var failures []Failure

	var g errgroup.Group
	g.SetLimit(threads)
	for _, it := range items {
		it := it
		g.Go(func() error {
			handle := rend.start(label(it))
			if err := fn(it, handle); err != nil {
				mu.Lock()
				failures = append(failures, Failure{Label: label(it), Err: err})
				mu.Unlock()
			}
			rend.finish(handle)
			return nil
		})
	}
	// Workers never return errors to the group, so Wait only synchronizes.
	_ = g.Wait()
	rend.wait()

	return failures, nil
}

// Report prints every failure with its full cause chain, innermost cause
// last, to w.
func Report(w io.Writer, failures []Failure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "%d repositories failed:\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "%s:\n", f.Label)
		for err := f.Err; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(w, "because: %s\n", err)
		}
	}
}
