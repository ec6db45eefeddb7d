// Package format prints a resolved unit back to interface-description text.
//
// The output is canonical rather than layout-preserving: named types are
// emitted in declaration order, followed by the service. Named nodes always
// print as their names, so recursive types stay symbolic and re-parsing the
// output yields an equivalent graph.
package format
