// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It builds
// the cobra command tree, loads settings from flags, environment and config
// files, and renders results as a table, JSON or YAML.
package cli
