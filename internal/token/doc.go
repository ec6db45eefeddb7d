// Package token defines lexical token kinds for the candid interface description language.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Keywords, call-mode annotations and primitive type names are recognized by exact,
//     case-sensitive lookup after an identifier has been scanned to its maximal length;
//     "nat8" is PrimNat8, "nat8x" and "Nat" are identifiers.
//   - Comments and whitespace never appear in the token stream.
package token
