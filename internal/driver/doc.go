// Package driver wires the pipeline together: it loads an entry file and its
// imports, resolves and assembles them into a descriptor, and checks whole
// directories in parallel.
package driver
