// Package fsutil provides file system discovery helpers.
package fsutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// FindFiles recursively searches rootPath for files ending with any of the
// given extensions and returns their paths in walk order.
func FindFiles(rootPath string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		return nil, fmt.Errorf("no extensions given for search under %s", rootPath)
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
