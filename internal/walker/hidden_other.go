//go:build !windows

package walker

func hiddenAttribute(string) bool { return false }
