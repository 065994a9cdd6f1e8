package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
}

func TestFolders_List(t *testing.T) {
	ctx := context.Background()
	first, second := t.TempDir(), t.TempDir()
	touch(t, first, "z.safetensors", "style/anime.safetensors", "readme.md")
	touch(t, second, "a.ckpt", "z.safetensors")

	f := NewFolders(map[string][]string{"loras": {first, second}})

	names, err := f.List(ctx, "loras")
	require.NoError(t, err)
	// Per-root sorted, roots in order, duplicates reported once.
	assert.Equal(t, []string{"style/anime.safetensors", "z.safetensors", "a.ckpt"}, names)

	_, err = f.List(ctx, "vae")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestFolders_ListOptions(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.safetensors", "b.ckpt", "old/c.safetensors")

	f := NewFolders(map[string][]string{"loras": {root}},
		WithExtensions(".safetensors"),
		WithExclude("old/**"),
	)
	names, err := f.List(context.Background(), "loras")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.safetensors"}, names)
}

func TestFolders_ListCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFolders(map[string][]string{"loras": {t.TempDir()}}).List(ctx, "loras")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFolders_FullPath(t *testing.T) {
	ctx := context.Background()
	first, second := t.TempDir(), t.TempDir()
	touch(t, second, "style/anime.safetensors")
	require.NoError(t, os.MkdirAll(filepath.Join(first, "dir.safetensors"), 0o755))

	f := NewFolders(map[string][]string{"loras": {first, second}})

	p, err := f.FullPath(ctx, "loras", "style/anime.safetensors")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "style", "anime.safetensors"), p)

	p, err = f.FullPath(ctx, "loras", `style\anime.safetensors`)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "style", "anime.safetensors"), p)

	for _, bad := range []string{"", "missing.safetensors", "../escape.safetensors", "/etc/passwd", "dir.safetensors"} {
		_, err = f.FullPath(ctx, "loras", bad)
		assert.ErrorIs(t, err, ErrNotFound, bad)
	}

	_, err = f.FullPath(ctx, "vae", "x")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLoadManifest(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	manifest := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
categories:
  loras:
    - name: style/b.safetensors
      path: files/b.safetensors
    - name: a.safetensors
      path: /abs/a.safetensors
    - name: unbacked.safetensors
`), 0o644))

	s, err := LoadManifest(manifest)
	require.NoError(t, err)

	names, err := s.List(ctx, "loras")
	require.NoError(t, err)
	assert.Equal(t, []string{"style/b.safetensors", "a.safetensors", "unbacked.safetensors"}, names)

	p, err := s.FullPath(ctx, "loras", "style/b.safetensors")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "files", "b.safetensors"), p)

	p, err = s.FullPath(ctx, "loras", "a.safetensors")
	require.NoError(t, err)
	assert.Equal(t, "/abs/a.safetensors", p)

	_, err = s.FullPath(ctx, "loras", "unbacked.safetensors")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.List(ctx, "checkpoints")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestLoadManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "reading manifest")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("categories: [unclosed"), 0o644))
	_, err = LoadManifest(bad)
	assert.ErrorContains(t, err, "parsing manifest")

	noName := filepath.Join(dir, "noname.yaml")
	require.NoError(t, os.WriteFile(noName, []byte("categories:\n  loras:\n    - path: x\n"), 0o644))
	_, err = LoadManifest(noName)
	assert.ErrorContains(t, err, "has no name")
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	a := NewStatic(Manifest{Categories: map[string][]Entry{
		"loras": {{Name: "x.safetensors", Path: "/a/x"}, {Name: "y.safetensors"}},
	}})
	b := NewStatic(Manifest{Categories: map[string][]Entry{
		"loras": {{Name: "y.safetensors", Path: "/b/y"}, {Name: "z.safetensors", Path: "/b/z"}},
		"vae":   {{Name: "v.pt", Path: "/b/v"}},
	}})
	c := Chain{a, b}

	names, err := c.List(ctx, "loras")
	require.NoError(t, err)
	assert.Equal(t, []string{"x.safetensors", "y.safetensors", "z.safetensors"}, names)

	names, err = c.List(ctx, "vae")
	require.NoError(t, err)
	assert.Equal(t, []string{"v.pt"}, names)

	_, err = c.List(ctx, "clip")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	p, err := c.FullPath(ctx, "loras", "y.safetensors")
	require.NoError(t, err)
	assert.Equal(t, "/b/y", p)

	_, err = c.FullPath(ctx, "loras", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
