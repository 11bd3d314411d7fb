package executor

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Progress is the per-item progress handle passed to batch operations.
// Operations feed it short status lines (typically the last line of
// subprocess output); how those lines are rendered depends on whether the
// batch runs attended or unattended.
type Progress interface {
	SetMessage(msg string)
}

// renderer abstracts over the two output modes: a live multi-bar display
// when stdout is a terminal, and counter-tagged start/finish log lines when
// it is not.
type renderer interface {
	start(label string) *item
	finish(it *item)
	wait()
}

// item is one in-flight operation's rendering state.
type item struct {
	label string
	idx   int
	msg   atomic.Value
	bar   *mpb.Bar
}

func (it *item) SetMessage(msg string) {
	it.msg.Store(msg)
}

func (it *item) message() string {
	if v := it.msg.Load(); v != nil {
		return v.(string)
	}
	return "waiting..."
}

// stdoutIsTerminal reports whether the process is attended. Overridable in
// tests.
var stdoutIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func newRenderer(total int, out io.Writer) renderer {
	if stdoutIsTerminal() {
		return newAttendedRenderer(total, out)
	}
	return &unattendedRenderer{total: total, out: out}
}

// attendedRenderer draws one total bar plus a spinner per in-flight item.
type attendedRenderer struct {
	progress *mpb.Progress
	totalBar *mpb.Bar
}

func newAttendedRenderer(total int, out io.Writer) *attendedRenderer {
	p := mpb.New(mpb.WithOutput(out), mpb.WithWidth(64))
	totalBar := p.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("#").Tip(">").Padding("-").Rbound("]"),
		mpb.PrependDecorators(
			decor.Elapsed(decor.ET_STYLE_HHMMSS),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("%d/%d "),
			decor.Percentage(),
		),
	)
	return &attendedRenderer{progress: p, totalBar: totalBar}
}

func (r *attendedRenderer) start(label string) *item {
	it := &item{label: label}
	it.bar = r.progress.New(1,
		mpb.SpinnerStyle(),
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name(label+" "),
			decor.Any(func(decor.Statistics) string { return it.message() }),
		),
	)
	return it
}

func (r *attendedRenderer) finish(it *item) {
	it.bar.Abort(true)
	r.totalBar.Increment()
}

func (r *attendedRenderer) wait() {
	r.progress.Wait()
}

// unattendedRenderer emits discrete log lines tagged with a shared counter.
// The counter is incremented and printed under one lock so the emitted start
// indices are strictly increasing and gapless regardless of completion order.
type unattendedRenderer struct {
	mu      sync.Mutex
	counter int
	total   int
	out     io.Writer
}

func (r *unattendedRenderer) start(label string) *item {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counter++
	fmt.Fprintf(r.out, "[%d/%d] Starting %s\n", r.counter, r.total, label)
	return &item{label: label, idx: r.counter}
}

func (r *unattendedRenderer) finish(it *item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "[%d/%d] Finished %s\n", it.idx, r.total, it.label)
}

func (r *unattendedRenderer) wait() {}
