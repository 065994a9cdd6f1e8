// Package app contains the core application logic. It wires settings, the
// logger, the file catalog and the node registry together and exposes the
// operations offered by the command line, decoupled from any specific
// entrypoint.
package app
