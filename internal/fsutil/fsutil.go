// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles recursively searches rootPath for files whose extension is one of
// extensions (compared case-insensitively, leading dot included) and whose
// slash-separated relative path matches none of the exclude globs. Results are
// relative to rootPath, slash-separated and sorted. A missing rootPath yields
// no files and no error.
func FindFiles(rootPath string, extensions []string, exclude []string) ([]string, error) {
	if len(extensions) == 0 {
		panic("extensions must not be empty")
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	info, err := os.Stat(rootPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootPath)
	}

	wanted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = struct{}{}
	}

	var files []string
	err = doublestar.GlobWalk(os.DirFS(rootPath), "**", func(p string, d fs.DirEntry) error {
		if _, ok := wanted[strings.ToLower(path.Ext(p))]; !ok {
			return nil
		}
		for _, pattern := range exclude {
			if match, _ := doublestar.Match(pattern, p); match {
				return nil
			}
		}
		files = append(files, p)
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
