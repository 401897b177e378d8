package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq hands out process-wide sequence numbers, starting at 1.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID hands out span ids; 0 means "no span".
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is a begin/end pair. End must be called exactly once; a span from a
// disabled tracer is inert.
type Span struct {
	tracer  Tracer
	head    Event // shared by the begin and end events
	started time.Time
	extra   map[string]string
}

// Begin starts a root or child span on t.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, Event{Scope: scope, Name: name, ParentID: parent})
}

// BeginCtx takes the tracer, parent and request id from ctx and returns a
// context whose current span is the new one.
func BeginCtx(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	span := begin(FromContext(ctx), Event{
		Scope:    scope,
		Name:     name,
		ParentID: CurrentSpan(ctx),
		Request:  RequestID(ctx),
	})
	return span, WithSpan(ctx, span)
}

func begin(t Tracer, head Event) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(head.Scope) {
		return &Span{tracer: Nop}
	}
	head.SpanID = NextSpanID()
	s := &Span{tracer: t, head: head, started: time.Now()}

	ev := head
	ev.Kind = KindSpanBegin
	ev.Time = s.started
	t.Emit(&ev)
	return s
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits the closing event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.head
	ev.Kind = KindSpanEnd
	ev.Time = time.Now()
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return ev.Time.Sub(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.head.SpanID
}

// Point records an instant event under the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	if t := FromContext(ctx); t.Enabled() && t.Level().ShouldEmit(scope) {
		instant(ctx, t, scope, name, detail, nil)
	}
}

// Fail records err. It passes from LevelError up, whatever the scope.
func Fail(ctx context.Context, name string, err error) {
	if t := FromContext(ctx); err != nil && t.Enabled() {
		instant(ctx, t, ScopeDriver, name, err.Error(), map[string]string{"error": "true"})
	}
}

func instant(ctx context.Context, t Tracer, scope Scope, name, detail string, extra map[string]string) {
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: CurrentSpan(ctx),
		Request:  RequestID(ctx),
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	})
}
