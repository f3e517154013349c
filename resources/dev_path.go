//go:build !release

package resources

const configDir = ".riva128"

func resourcePath() (string, error) {
	return configDir, nil
}
