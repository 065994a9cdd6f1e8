package resolver

import "strings"

func lastSep(p string) int {
	return strings.LastIndexAny(p, `/\`)
}

// Base returns the last element of a catalog identifier. Both '/' and '\'
// separate elements.
func Base(p string) string {
	return p[lastSep(p)+1:]
}

// SplitExt splits p into a root and an extension such that root+ext == p.
// The extension is the final dot-suffix of the last element; leading dots of
// that element never start an extension, so ".hidden" has none.
func SplitExt(p string) (root, ext string) {
	sep := lastSep(p)
	dot := strings.LastIndexByte(p, '.')
	if dot <= sep {
		return p, ""
	}
	for i := sep + 1; i < dot; i++ {
		if p[i] != '.' {
			return p[:dot], p[dot:]
		}
	}
	return p, ""
}

// Stem returns p without its extension.
func Stem(p string) string {
	root, _ := SplitExt(p)
	return root
}

// Name returns the display name of a catalog identifier: its last element
// without extension.
func Name(p string) string {
	return baseStem(p)
}
