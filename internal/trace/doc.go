// Package trace provides structured tracing for vareach runs.
//
// Tracing follows a run through its phases (collect, lex, parse, split,
// render, write) and through individual files, which helps find slow inputs
// and hangs in large batches.
//
// # Usage
//
//	vareach fmt --trace=- --trace-level=detail src/
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only failures
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including per-declaration events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
