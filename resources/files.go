package resources

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadBinary returns the contents of the named resource. A resource that
// does not exist is not an error and the returned data will be nil.
func ReadBinary(name string) ([]byte, error) {
	pth, err := JoinPath(name)
	if err != nil {
		return nil, err
	}

	d, err := os.ReadFile(pth)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("resources: %w", err)
	}

	return d, nil
}

// ReadLines returns the non-empty lines of the named resource. A resource
// that does not exist is not an error and the returned slice will be empty.
func ReadLines(name string) ([]string, error) {
	pth, err := JoinPath(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(pth)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("resources: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			lines = append(lines, s)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}

	return lines, nil
}

// AppendLine adds a single line to the end of the named resource. The
// resource is created if it does not exist.
func AppendLine(name string, line string) error {
	pth, err := JoinPath(name)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(pth, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}

	_, err = fmt.Fprintln(f, strings.TrimSpace(line))
	if err != nil {
		f.Close()
		return fmt.Errorf("resources: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("resources: %w", err)
	}

	return nil
}
