package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/powerlora/internal/ctxlog"
	"github.com/specialistvlad/powerlora/internal/fsutil"
)

// Folders is a Service backed by one or more directories per category.
type Folders struct {
	roots      map[string][]string
	extensions []string
	exclude    []string
}

// FoldersOption customizes a Folders catalog.
type FoldersOption func(*Folders)

// WithExtensions restricts enumeration to the given file extensions.
func WithExtensions(exts ...string) FoldersOption {
	return func(f *Folders) {
		if len(exts) > 0 {
			f.extensions = exts
		}
	}
}

// WithExclude skips files whose relative path matches any of the globs.
func WithExclude(patterns ...string) FoldersOption {
	return func(f *Folders) {
		f.exclude = append(f.exclude, patterns...)
	}
}

// NewFolders creates a catalog over roots, keyed by category. Roots are
// searched in the given order.
func NewFolders(roots map[string][]string, opts ...FoldersOption) *Folders {
	f := &Folders{
		roots:      make(map[string][]string, len(roots)),
		extensions: DefaultExtensions,
	}
	for category, dirs := range roots {
		f.roots[category] = append([]string(nil), dirs...)
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// List returns the identifiers of every matching file under the category's
// roots. Each root contributes its files in sorted order; an identifier
// present under several roots is reported once, for the first root.
func (f *Folders) List(ctx context.Context, category string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	roots, ok := f.roots[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	logger := ctxlog.FromContext(ctx)

	var out []string
	seen := make(map[string]struct{})
	for _, root := range roots {
		files, err := fsutil.FindFiles(root, f.extensions, f.exclude)
		if err != nil {
			return nil, fmt.Errorf("catalog: listing %s root %s: %w", category, root, err)
		}
		logger.Debug("Listed catalog root.", "category", category, "root", root, "files", len(files))
		for _, name := range files {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out, nil
}

// FullPath returns the absolute path of name under the first root that holds
// it. Identifiers that would escape a root are rejected with ErrNotFound.
func (f *Folders) FullPath(ctx context.Context, category, name string) (string, error) {
	roots, ok := f.roots[category]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	rel := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || !fs.ValidPath(rel) {
		return "", fmt.Errorf("%w: %s %q", ErrNotFound, category, name)
	}

	for _, root := range roots {
		full := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(full)
		if err != nil {
			return "", err
		}
		ctxlog.FromContext(ctx).Debug("Resolved catalog path.", "category", category, "name", name, "path", abs)
		return abs, nil
	}
	return "", fmt.Errorf("%w: %s %q", ErrNotFound, category, name)
}
