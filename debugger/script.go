package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// scripts can run other scripts but not indefinitely
const maxScriptDepth = 8

// runScript runs every command in the named file. blank lines and lines
// starting with # are ignored. returns true if the script issued a QUIT
// command
func (m *debugger) runScript(filename string) bool {
	if m.scriptDepth >= maxScriptDepth {
		m.printErr(fmt.Errorf("script: too many nested scripts: %s", filename))
		return false
	}

	f, err := os.Open(filename)
	if err != nil {
		m.printErr(fmt.Errorf("script: %w", err))
		return false
	}
	defer f.Close()

	m.scriptDepth++
	defer func() {
		m.scriptDepth--
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		if m.command(strings.Fields(s)) {
			return true
		}
	}

	if err := scanner.Err(); err != nil {
		m.printErr(fmt.Errorf("script: %w", err))
	}

	return false
}
