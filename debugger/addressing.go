package debugger

import (
	"fmt"
	"strconv"
	"strings"
)

// parseNumber accepts decimal numbers, numbers with a 0x prefix and numbers
// with a $ prefix. the last two are hexadecimal
func parseNumber(s string, bits int) (uint64, error) {
	if strings.HasPrefix(s, "$") {
		s = fmt.Sprintf("0x%s", s[1:])
	}
	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("number is not valid: %s", s)
	}
	return v, nil
}

// parsePort returns a port number. the legacy VGA ports are conventionally
// written in hex and so a bare number is treated as hexadecimal
func parsePort(s string) (uint16, error) {
	if !strings.HasPrefix(s, "$") && !strings.HasPrefix(strings.ToLower(s), "0x") {
		s = fmt.Sprintf("0x%s", s)
	}
	v, err := parseNumber(s, 16)
	if err != nil {
		return 0, fmt.Errorf("port is not valid: %s", s)
	}
	return uint16(v), nil
}

// parseWidth returns the width in bytes of the access suffix. B, W and L in
// the manner of an assembler. an empty suffix is a byte access
func parseWidth(s string) (int, error) {
	switch strings.ToUpper(s) {
	case "", "B":
		return 1, nil
	case "W":
		return 2, nil
	case "L":
		return 4, nil
	}
	return 0, fmt.Errorf("width is not valid: %s", s)
}

// mask the value to the width of the access
func mask(value uint64, width int) uint64 {
	if width >= 8 {
		return value
	}
	return value & (1<<(width*8) - 1)
}

// format a value with as many digits as the width requires
func formatValue(value uint64, width int) string {
	return fmt.Sprintf("%0*x", width*2, value)
}
