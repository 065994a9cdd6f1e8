package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitExt(t *testing.T) {
	tests := []struct {
		in, root, ext string
	}{
		{"a/b.c", "a/b", ".c"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{".hidden", ".hidden", ""},
		{"dir/..hidden.pt", "dir/..hidden", ".pt"},
		{"a.b/c", "a.b/c", ""},
		{"file.", "file", "."},
		{`win\dir\lora.safetensors`, `win\dir\lora`, ".safetensors"},
		{"", "", ""},
	}
	for _, tt := range tests {
		root, ext := SplitExt(tt.in)
		assert.Equal(t, tt.root, root, tt.in)
		assert.Equal(t, tt.ext, ext, tt.in)
		assert.Equal(t, tt.in, root+ext)
	}
}

func TestBaseAndName(t *testing.T) {
	assert.Equal(t, "c.safetensors", Base("a/b/c.safetensors"))
	assert.Equal(t, "c.safetensors", Base(`a\b\c.safetensors`))
	assert.Equal(t, "plain", Base("plain"))
	assert.Equal(t, "", Base("dir/"))

	assert.Equal(t, "Alice v2", Name("people/Alice v2.safetensors"))
	assert.Equal(t, "x", Name("x"))
}
