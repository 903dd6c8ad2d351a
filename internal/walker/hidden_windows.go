//go:build windows

package walker

import "golang.org/x/sys/windows"

// hiddenAttribute reports whether the entry carries FILE_ATTRIBUTE_HIDDEN.
// GetFileAttributes reads the attributes of a symlink itself, not its
// target.
func hiddenAttribute(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
