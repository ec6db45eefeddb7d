// Package lexer turns interface-description text into significant tokens.
//
// Whitespace and comments are dropped. Identifiers are scanned with maximal
// munch and then looked up in the static keyword table, so "nat8" is a
// primitive while "nat8x" stays an identifier. The lexer stops at the first
// malformed input and returns a *LexError.
package lexer
