package walker

import (
	"runtime"
	"strings"
)

// isHidden applies the host's hidden-entry policy to the entry at path.
func isHidden(path, name string) bool {
	return hiddenName(name, runtime.GOOS == "windows") || hiddenAttribute(path)
}

// hiddenName reports whether name alone marks an entry hidden. Windows
// additionally hides "$"-prefixed system entries such as $Recycle.Bin.
func hiddenName(name string, windows bool) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return windows && strings.HasPrefix(name, "$")
}
