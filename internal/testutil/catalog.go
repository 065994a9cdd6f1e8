package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/powerlora/internal/catalog"
)

// Catalog is an in-memory catalog.Service for a single category that counts
// calls. Entries without a path make FullPath fail with catalog.ErrNotFound.
type Catalog struct {
	Category string
	Entries  []string
	Paths    map[string]string
	// ListErr, when set, is returned by every List call.
	ListErr error

	mu        sync.Mutex
	listCalls int
	pathCalls int
}

// NewCatalog creates a "loras" catalog whose entries resolve to "/models/<entry>".
func NewCatalog(entries ...string) *Catalog {
	c := &Catalog{Category: "loras", Entries: entries, Paths: map[string]string{}}
	for _, e := range entries {
		c.Paths[e] = "/models/" + e
	}
	return c
}

// List implements catalog.Lister.
func (c *Catalog) List(ctx context.Context, category string) ([]string, error) {
	c.mu.Lock()
	c.listCalls++
	c.mu.Unlock()
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	if category != c.Category {
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownCategory, category)
	}
	return append([]string(nil), c.Entries...), nil
}

// FullPath implements catalog.PathResolver.
func (c *Catalog) FullPath(ctx context.Context, category, name string) (string, error) {
	c.mu.Lock()
	c.pathCalls++
	c.mu.Unlock()
	if p, ok := c.Paths[name]; ok && category == c.Category {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s %q", catalog.ErrNotFound, category, name)
}

// ListCalls reports how many times List was called.
func (c *Catalog) ListCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listCalls
}

// PathCalls reports how many times FullPath was called.
func (c *Catalog) PathCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pathCalls
}
