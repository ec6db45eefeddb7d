// Package resolve links parsed programs into a types.Interner graph.
//
// Resolution runs in two passes. The first pass collects every type
// declaration of the unit and gives it a named node. The second pass
// resolves declaration bodies. Pure alias chains (A = B, B = C) are tracked
// so that a chain that loops back on itself is reported as a
// *CyclicAliasError, while a reference that reaches a declaration through
// opt, vec, record, variant, func or service becomes an edge back to the
// named node, which is how recursive data types are represented.
package resolve
