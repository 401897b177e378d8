package trace

import (
	"io"
	"sync"
)

// StreamTracer formats each accepted event and writes it right away.
// Write errors are dropped: tracing never fails an expansion.
type StreamTracer struct {
	level  Level
	format Format

	mu sync.Mutex
	w  io.Writer
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{w: w, level: level, format: format}
	if t.format == FormatAuto {
		t.format = FormatText
	}
	return t
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	ev.Seq = NextSeq()
	line := FormatEvent(ev, t.format)

	t.mu.Lock()
	_, _ = t.w.Write(line) //nolint:errcheck
	t.mu.Unlock()
}

// Flush forwards to writers such as *bufio.Writer.
func (t *StreamTracer) Flush() error {
	f, ok := t.w.(interface{ Flush() error })
	if !ok {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return f.Flush()
}

// Close flushes and closes the writer; stdout and stderr stay open.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	c, ok := t.w.(io.Closer)
	if !ok || isStdStream(t.w) {
		return nil
	}
	return c.Close()
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
