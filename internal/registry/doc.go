// Package registry provides the central "glue" for the node system.
//
// The Registry maps node class names (e.g., "WanVideoPowerLoraLoader") to
// their definitions: the declared input surface, the output sockets and the
// compiled Go function that evaluates an instance. Definitions are validated
// when registered, and arguments are validated against a definition before a
// node runs, preventing a wide class of runtime errors.
//
// Input typing is deliberately loose. A definition may declare a flexible
// optional input surface that accepts any key, and the AnyType tag is
// compatible with every other tag; real validation of such inputs is left to
// the node function itself.
package registry
