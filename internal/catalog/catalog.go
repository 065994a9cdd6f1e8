// Package catalog provides the file catalog collaborators used by loader
// nodes: enumerating the identifiers known for a category (e.g. "loras") and
// turning one of those identifiers into a validated filesystem path.
//
// Identifiers are slash-separated paths relative to a category root, such as
// "style/anime.safetensors". Listings are ordered and stable for an unchanged
// catalog, but callers must not assume they are sorted across roots.
package catalog

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by FullPath when an identifier does not name a
	// retrievable file.
	ErrNotFound = errors.New("catalog: file not found")
	// ErrUnknownCategory is returned when a category has no configured source.
	ErrUnknownCategory = errors.New("catalog: unknown category")
)

// DefaultExtensions are the model file extensions enumerated when none are
// configured.
var DefaultExtensions = []string{".ckpt", ".pt", ".pt2", ".bin", ".pth", ".safetensors", ".pkl", ".sft"}

// Lister enumerates the identifiers known for a category.
type Lister interface {
	List(ctx context.Context, category string) ([]string, error)
}

// PathResolver turns a catalog identifier into an absolute filesystem path.
type PathResolver interface {
	FullPath(ctx context.Context, category, name string) (string, error)
}

// Service is the full catalog contract consumed by nodes.
type Service interface {
	Lister
	PathResolver
}
