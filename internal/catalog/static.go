package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Entry maps a catalog identifier to the file it names.
type Entry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Manifest is the on-disk form of a Static catalog.
//
//	categories:
//	  loras:
//	    - name: style/anime.safetensors
//	      path: /models/loras/anime-v3.safetensors
type Manifest struct {
	Categories map[string][]Entry `yaml:"categories"`
}

// Static is an in-memory Service. Listing order is manifest order.
type Static struct {
	entries map[string][]Entry
}

// NewStatic builds a Static catalog from a manifest.
func NewStatic(m Manifest) *Static {
	s := &Static{entries: make(map[string][]Entry, len(m.Categories))}
	for category, entries := range m.Categories {
		s.entries[category] = append([]Entry(nil), entries...)
	}
	return s
}

// LoadManifest reads a YAML manifest. Relative entry paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("catalog: parsing manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for category, entries := range m.Categories {
		for i, e := range entries {
			if e.Name == "" {
				return nil, fmt.Errorf("catalog: manifest %s: %s entry %d has no name", path, category, i)
			}
			if e.Path != "" && !filepath.IsAbs(e.Path) {
				entries[i].Path = filepath.Join(base, e.Path)
			}
		}
	}
	return NewStatic(m), nil
}

// List returns the category's identifiers in manifest order.
func (s *Static) List(ctx context.Context, category string) ([]string, error) {
	entries, ok := s.entries[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// FullPath returns the path recorded for name.
func (s *Static) FullPath(ctx context.Context, category, name string) (string, error) {
	entries, ok := s.entries[category]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	for _, e := range entries {
		if e.Name == name && e.Path != "" {
			return e.Path, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q", ErrNotFound, category, name)
}
