// Package config defines the format-agnostic graph model consumed by the
// engine, the Loader interface implemented by format-specific readers, and
// the process Settings.
//
// The `config.Model` is the single source of truth for the `dag` and
// `engine` packages. Concrete loaders, such as the HCL one, live in separate
// packages.
package config
