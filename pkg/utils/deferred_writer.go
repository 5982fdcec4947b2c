package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter passes writes through to its destination except while held;
// held writes are buffered in memory until Release. Safe for concurrent use.
type DeferredWriter struct {
	mu   sync.Mutex
	out  io.Writer
	held bool
	buf  bytes.Buffer
}

// NewDeferredWriter creates a writer forwarding to out.
func NewDeferredWriter(out io.Writer) *DeferredWriter {
	return &DeferredWriter{out: out}
}

// Hold starts buffering writes.
func (d *DeferredWriter) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

// Release writes everything buffered while held to the destination and
// resumes passing writes through.
func (d *DeferredWriter) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.held = false
	if d.buf.Len() == 0 {
		return nil
	}

	_, err := d.buf.WriteTo(d.out)
	return err
}

// Write forwards p, or buffers it while held.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.held {
		return d.buf.Write(p)
	}
	return d.out.Write(p)
}
