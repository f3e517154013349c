//go:build release

package resources

import (
	"os"
	"path/filepath"
)

const configDir = "riva128"

// release builds keep resources in the user's configuration directory
func resourcePath() (string, error) {
	p, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(p, configDir), nil
}
