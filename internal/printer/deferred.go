package printer

import (
	"bytes"
	"io"
	"sync"
)

// Deferred holds output until Flush. Safe for concurrent use, so watcher
// callbacks can print while the main goroutine runs the TUI.
type Deferred struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewDeferred returns a Printer whose lines are kept until d is flushed.
func NewDeferred() (*Printer, *Deferred) {
	d := &Deferred{}
	return New(d), d
}

func (d *Deferred) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Flush writes everything held so far to w and empties the buffer.
func (d *Deferred) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(w)
	return err
}
