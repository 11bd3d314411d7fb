package app

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/dparbhakar/git-workspace/internal/executor"
)

// progressWriter tees subprocess output into a capture buffer while feeding
// the most recent line to the progress sink. Git emits progress updates
// terminated by carriage returns, so both \r and \n split lines.
type progressWriter struct {
	mu       sync.Mutex
	progress executor.Progress
	capture  io.Writer
	partial  bytes.Buffer
}

func newProgressWriter(progress executor.Progress, capture io.Writer) *progressWriter {
	return &progressWriter{progress: progress, capture: capture}
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.capture.Write(p); err != nil {
		return 0, err
	}
	w.partial.Write(p)

	data := w.partial.String()
	lines := strings.FieldsFunc(data, func(r rune) bool { return r == '\n' || r == '\r' })
	if len(lines) == 0 {
		return len(p), nil
	}
	last := lines[len(lines)-1]
	if strings.HasSuffix(data, "\n") || strings.HasSuffix(data, "\r") {
		w.partial.Reset()
	} else {
		// Keep the unterminated tail for the next write.
		w.partial.Reset()
		w.partial.WriteString(last)
	}
	if line := strings.TrimSpace(last); line != "" {
		w.progress.SetMessage(line)
	}
	return len(p), nil
}
