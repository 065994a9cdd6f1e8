package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b.safetensors",
		"style/a.SAFETENSORS",
		"style/notes.txt",
		"deep/er/c.ckpt",
		".cache/d.safetensors",
	)

	files, err := FindFiles(root, []string{".safetensors", ".ckpt"}, []string{".cache/**"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.safetensors", "deep/er/c.ckpt", "style/a.SAFETENSORS"}, files)
}

func TestFindFiles_MissingRoot(t *testing.T) {
	files, err := FindFiles(filepath.Join(t.TempDir(), "nope"), []string{".pt"}, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFiles_Errors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "file.pt")

	_, err := FindFiles(filepath.Join(root, "file.pt"), []string{".pt"}, nil)
	assert.ErrorContains(t, err, "is not a directory")

	_, err = FindFiles(root, []string{".pt"}, []string{"[unterminated"})
	assert.ErrorContains(t, err, "invalid exclude pattern")

	assert.Panics(t, func() { _, _ = FindFiles(root, nil, nil) })
}
