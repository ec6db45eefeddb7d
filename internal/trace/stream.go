package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer formats events into a buffered writer as they arrive.
// Write errors are kept and reported by Flush.
type StreamTracer struct {
	counters
	mu     sync.Mutex
	out    io.Writer
	buf    *bufio.Writer
	level  Level
	format Format
	err    error
	closed bool
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{out: w, buf: bufio.NewWriter(w), level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = t.nextSeq()
	line := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.err != nil {
		return
	}
	_, t.err = t.buf.Write(line)
	// сбои лучше видеть сразу
	if ev.Scope == ScopeFailure && t.err == nil {
		t.err = t.buf.Flush()
	}
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *StreamTracer) flushLocked() error {
	if t.err != nil || t.closed {
		return t.err
	}
	t.err = t.buf.Flush()
	return t.err
}

// Close flushes and closes the destination when it is an io.Closer.
// Later calls are no-ops.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	err := t.flushLocked()
	t.closed = true
	if c, ok := t.out.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
