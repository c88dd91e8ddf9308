// Package trace records what the benchmark harness is doing: which suite and
// case are running and how long each took.
//
// # Usage
//
//	symbench bench --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A level selects which scopes are emitted:
//
//   - LevelPhase: ScopeRun and ScopeSuite
//   - LevelDetail: adds ScopeCase
//   - LevelDebug: adds ScopeOp
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeCase, "intern_short_8", parentID)
//	defer span.End("")
package trace
