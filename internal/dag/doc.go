// Package dag holds the dependency graph between node instances. It detects
// cycles and yields a deterministic evaluation order, upstream first.
package dag
