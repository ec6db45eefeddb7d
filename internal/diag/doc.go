// Package diag defines the diagnostic model shared by every candidc phase.
//
// The front-end itself is fail-fast: the lexer, parser, resolver and assembler
// each return a typed error and stop. Those errors implement Diagnosable, which
// lets the driver turn them into Diagnostic records that carry a stable Code, a
// Severity, a primary source.Span and optional Notes. Bag collects diagnostics
// across files (directory checks, imports) and gives them a deterministic order.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
