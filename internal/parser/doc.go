// Package parser builds an ast.Program from a token slice.
//
// The parser is a recursive descent over the tokens with one token of
// lookahead and no backtracking. The first mismatch stops parsing and is
// returned as a *ParseError; no partial tree is produced. Nesting of type
// expressions is bounded by Options.MaxDepth.
package parser
