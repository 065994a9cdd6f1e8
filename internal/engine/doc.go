// Package engine evaluates a loaded graph model. Nodes run one at a time,
// each after every node it references, and a node's outputs become visible
// to later nodes as node.<class>.<name>.<output>.
package engine
