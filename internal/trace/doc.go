// Package trace records what the expander is doing while it works.
//
// Enable tracing via command-line flags:
//
//	glslx expand --trace=- --trace-level=detail shaders/main.frag
//
// # Tracers
//
//   - Nop: no-op tracer used when tracing is disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on failure
//   - MultiTracer: fan-out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopeResolve spans (one per top-level
// request), LevelDetail adds ScopeFile spans for every file loaded,
// LevelDebug adds ScopeMark point events for include splices and deleted
// duplicates.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx = trace.WithRequest(ctx, "")
//
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeResolve, "resolve", 0)
//	defer span.End("")
package trace
