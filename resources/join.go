package resources

import (
	"os"
	"path/filepath"
	"strings"
)

// basePath is the directory that all resources are relative to
func basePath() (string, error) {
	if checkPortable() {
		return portablePath, nil
	}
	return resourcePath()
}

// JoinPath returns the path of the named resource. Missing directories
// leading to the resource are created.
func JoinPath(path ...string) (string, error) {
	base, err := basePath()
	if err != nil {
		return "", err
	}

	p := filepath.Join(path...)
	if !strings.HasPrefix(p, base) {
		p = filepath.Join(base, p)
	}

	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}
