// Package trace records structured begin/end events for candidc runs.
//
// Enable tracing from the command line:
//
//	candidc check --trace=- --trace-level=phase service.did
//
// The driver opens a span per phase (lex, parse, import, resolve, assemble)
// and, at LevelDetail, a span per imported file or per file of a directory
// check. Events are written as text or NDJSON by a StreamTracer, or kept in
// memory by a Recorder. Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
