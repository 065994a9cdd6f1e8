package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Chain merges several services. Listings are concatenated in service order
// with duplicates dropped; FullPath asks each service in turn.
type Chain []Service

// List implements Lister. A category is unknown only if every service
// reports it unknown.
func (c Chain) List(ctx context.Context, category string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	known := false
	for _, svc := range c {
		names, err := svc.List(ctx, category)
		if errors.Is(err, ErrUnknownCategory) {
			continue
		}
		if err != nil {
			return nil, err
		}
		known = true
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return out, nil
}

// FullPath implements PathResolver.
func (c Chain) FullPath(ctx context.Context, category, name string) (string, error) {
	for _, svc := range c {
		p, err := svc.FullPath(ctx, category, name)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrUnknownCategory) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s %q", ErrNotFound, category, name)
}
