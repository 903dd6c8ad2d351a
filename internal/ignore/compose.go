package ignore

import (
	"os"
	"path/filepath"
)

// Compose extends parent with the first ignore file from names that exists
// as a regular file in dir. It returns the Spec to use for dir's entries
// and the names to look for in dir's subdirectories: once a file is
// adopted, only that name is searched for further down.
//
// When no file is found, parent and names are returned unchanged. A file
// that exists but cannot be read is still adopted, contributes no rules,
// and its error is returned alongside the result.
func Compose(dir string, parent *Spec, names []string, opts ...Option) (*Spec, []string, error) {
	for i, name := range names {
		path := filepath.Join(dir, name)
		fi, err := os.Lstat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		adopted := names[i : i+1]
		local, err := FromIgnoreFile(path, opts...)
		if err != nil {
			return parent, adopted, err
		}
		if local.Len() == 0 {
			return parent, adopted, nil
		}
		return Concat(parent, local), adopted, nil
	}
	return parent, names, nil
}
