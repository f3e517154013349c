package resources

import (
	"os"
	"path/filepath"
)

const portableMarker = "portable.txt"

// the portable path is set by checkPortable() when the marker file exists
var portablePath string

func checkPortable() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	dir := filepath.Dir(exe)
	if _, err := os.Stat(filepath.Join(dir, portableMarker)); err != nil {
		return false
	}
	portablePath = filepath.Join(dir, "riva128_UserData")
	return true
}
