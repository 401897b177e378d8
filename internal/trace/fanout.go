package trace

import "errors"

type discard struct{}

func (discard) Emit(*Event)   {}
func (discard) Flush() error  { return nil }
func (discard) Close() error  { return nil }
func (discard) Level() Level  { return LevelOff }
func (discard) Enabled() bool { return false }

// Nop drops everything. FromContext returns it when no tracer is attached.
var Nop Tracer = discard{}

// MultiTracer forwards every event to a set of sinks, e.g. a stream file
// and the in-memory ring kept for crash dumps.
type MultiTracer struct {
	sinks []Tracer
	level Level
}

// NewMultiTracer skips nil and disabled sinks.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, tr := range tracers {
		if tr == nil || !tr.Enabled() {
			continue
		}
		m.sinks = append(m.sinks, tr)
	}
	return m
}

func (m *MultiTracer) Emit(ev *Event) {
	for _, s := range m.sinks {
		// Seq проставляет каждый приёмник сам
		cp := *ev
		s.Emit(&cp)
	}
}

func (m *MultiTracer) Flush() error {
	return m.each(Tracer.Flush)
}

func (m *MultiTracer) Close() error {
	return m.each(Tracer.Close)
}

func (m *MultiTracer) each(op func(Tracer) error) error {
	errs := make([]error, 0, len(m.sinks))
	for _, s := range m.sinks {
		errs = append(errs, op(s))
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level { return m.level }

func (m *MultiTracer) Enabled() bool { return m.level > LevelOff && len(m.sinks) > 0 }
