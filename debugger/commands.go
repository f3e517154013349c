package debugger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/riva128/hardware/bus"
	"github.com/jetsetilly/riva128/hardware/pci"
	"github.com/jetsetilly/riva128/hardware/riva128"
	"github.com/jetsetilly/riva128/hardware/vga"
	"github.com/jetsetilly/riva128/logger"
	"github.com/jetsetilly/riva128/resources"
	"github.com/jetsetilly/riva128/version"
)

// setLines drives the I2C lines through the CRTC registers in the same way
// as a device driver would. if the legacy ports are not mapped then the
// registers are reached through the MMIO BAR
func (m *debugger) setLines(scl, sda bool) error {
	v := uint64(riva128.I2CWriteIndex)
	if scl {
		v |= 0x20 << 8
	}
	if sda {
		v |= 0x10 << 8
	}

	err := m.adapter.Out(vga.CRIndex, 2, v)
	if errors.Is(err, bus.ErrUnmapped) {
		return m.adapter.Poke(pci.IOPortOffset+vga.CRIndex-riva128.LegacyBase, 2, v)
	}
	return err
}

func parseLine(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("line value must be 0 or 1: %s", s)
}

// watchArgs returns the list of lines named by the arguments to a WATCH or
// UNWATCH command
func watchArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{watchSCL, watchSDA}, nil
	}
	var lines []string
	for _, a := range args {
		switch strings.ToUpper(a) {
		case watchSCL:
			lines = append(lines, watchSCL)
		case watchSDA:
			lines = append(lines, watchSDA)
		case "ALL":
			lines = append(lines, watchSCL, watchSDA)
		default:
			return nil, fmt.Errorf("unrecognised line: %s", a)
		}
	}
	return lines, nil
}

// returns true if debugger is to quit
func (m *debugger) commands(cmd []string) bool {
	if len(cmd) == 0 {
		return false
	}

	switch strings.ToUpper(cmd[0]) {
	case "IN":
		if len(cmd) < 2 {
			m.println(m.styles.err, "IN requires a port")
			break // switch
		}
		port, err := parsePort(cmd[1])
		if err != nil {
			m.printErr(fmt.Errorf("in: %w", err))
			break // switch
		}
		var width int
		if len(cmd) > 2 {
			width, err = parseWidth(cmd[2])
		} else {
			width, err = parseWidth("")
		}
		if err != nil {
			m.printErr(fmt.Errorf("in: %w", err))
			break // switch
		}
		v, err := m.adapter.In(port, width)
		if err != nil {
			m.printErr(fmt.Errorf("in: %w", err))
			break // switch
		}
		m.println(m.styles.io, fmt.Sprintf("%03x = %s", port, formatValue(v, width)))

	case "OUT":
		if len(cmd) < 3 {
			m.println(m.styles.err, "OUT requires a port and a value")
			break // switch
		}
		port, err := parsePort(cmd[1])
		if err != nil {
			m.printErr(fmt.Errorf("out: %w", err))
			break // switch
		}
		v, err := parseNumber(cmd[2], 64)
		if err != nil {
			m.printErr(fmt.Errorf("out: %w", err))
			break // switch
		}
		var width int
		if len(cmd) > 3 {
			width, err = parseWidth(cmd[3])
		} else {
			width, err = parseWidth("")
		}
		if err != nil {
			m.printErr(fmt.Errorf("out: %w", err))
			break // switch
		}
		v = mask(v, width)
		err = m.adapter.Out(port, width, v)
		if err != nil {
			m.printErr(fmt.Errorf("out: %w", err))
			break // switch
		}
		m.println(m.styles.io, fmt.Sprintf("%03x <- %s", port, formatValue(v, width)))

	case "PEEK":
		if len(cmd) < 2 {
			m.println(m.styles.err, "PEEK requires an offset")
			break // switch
		}
		offset, err := parseNumber(cmd[1], 32)
		if err != nil {
			m.printErr(fmt.Errorf("peek: %w", err))
			break // switch
		}
		var width int
		if len(cmd) > 2 {
			width, err = parseWidth(cmd[2])
		} else {
			width, err = parseWidth("")
		}
		if err != nil {
			m.printErr(fmt.Errorf("peek: %w", err))
			break // switch
		}
		v, err := m.adapter.Peek(offset, width)
		if err != nil {
			m.printErr(fmt.Errorf("peek: %w", err))
			break // switch
		}
		m.println(m.styles.mmio, fmt.Sprintf("$%06x = %s", offset, formatValue(v, width)))

	case "POKE":
		if len(cmd) < 3 {
			m.println(m.styles.err, "POKE requires an offset and a value")
			break // switch
		}
		offset, err := parseNumber(cmd[1], 32)
		if err != nil {
			m.printErr(fmt.Errorf("poke: %w", err))
			break // switch
		}
		v, err := parseNumber(cmd[2], 64)
		if err != nil {
			m.printErr(fmt.Errorf("poke: %w", err))
			break // switch
		}
		var width int
		if len(cmd) > 3 {
			width, err = parseWidth(cmd[3])
		} else {
			width, err = parseWidth("")
		}
		if err != nil {
			m.printErr(fmt.Errorf("poke: %w", err))
			break // switch
		}
		v = mask(v, width)
		err = m.adapter.Poke(offset, width, v)
		if err != nil {
			m.printErr(fmt.Errorf("poke: %w", err))
			break // switch
		}
		m.println(m.styles.mmio, fmt.Sprintf("$%06x <- %s", offset, formatValue(v, width)))

	case "RESET":
		m.reset()

	case "I2C":
		if len(cmd) == 1 {
			m.println(m.styles.i2c, m.adapter.RIVA.I2C.String())
			break // switch
		}
		if strings.ToUpper(cmd[1]) != "SET" {
			m.printErr(fmt.Errorf("unrecognised argument for I2C command: %s", cmd[1]))
			break // switch
		}
		if len(cmd) != 4 {
			m.println(m.styles.err, "I2C SET requires a value for SCL and a value for SDA")
			break // switch
		}
		scl, err := parseLine(cmd[2])
		if err != nil {
			m.printErr(fmt.Errorf("i2c: %w", err))
			break // switch
		}
		sda, err := parseLine(cmd[3])
		if err != nil {
			m.printErr(fmt.Errorf("i2c: %w", err))
			break // switch
		}
		err = m.setLines(scl, sda)
		if err != nil {
			m.printErr(fmt.Errorf("i2c: %w", err))
			break // switch
		}
		m.println(m.styles.i2c, m.adapter.RIVA.I2C.String())

	case "DDC":
		if len(cmd) > 1 {
			if strings.ToUpper(cmd[1]) == "CLEAR" {
				m.adapter.DDC.Clear()
				m.println(m.styles.debugger, "ddc transactions cleared")
			} else {
				m.printErr(fmt.Errorf("unrecognised argument for DDC command: %s", cmd[1]))
			}
			break // switch
		}
		m.println(m.styles.ddc, m.adapter.DDC.String())

	case "VGA":
		m.println(m.styles.vga, m.adapter.VGA.Status())

	case "CONFIG":
		m.println(m.styles.debugger, m.adapter.Config.String())

	case "REGIONS":
		m.println(m.styles.io, m.adapter.IO.String())
		m.println(m.styles.mmio, m.adapter.MMIO.String())

	case "SNAPSHOT":
		s := m.adapter.Snapshot()
		m.snapshot = &s
		m.println(m.styles.debugger, "snapshot taken")

	case "RESTORE":
		if m.snapshot == nil {
			m.println(m.styles.err, "no snapshot to restore")
			break // switch
		}
		m.adapter.Restore(*m.snapshot)
		m.println(m.styles.debugger, "snapshot restored")
		m.println(m.styles.i2c, m.adapter.RIVA.Status())

	case "WATCH":
		lines, err := watchArgs(cmd[1:])
		if err != nil {
			m.printErr(fmt.Errorf("watch: %w", err))
			break // switch
		}
		for _, l := range lines {
			if _, ok := m.watches[l]; ok {
				m.println(m.styles.err, fmt.Sprintf("watch for %s already present", l))
				continue
			}
			m.watches[l] = watch{data: lineValue(m.adapter.RIVA.I2C, l)}
			m.println(m.styles.debugger, fmt.Sprintf("watching %s", l))
		}

	case "UNWATCH":
		lines, err := watchArgs(cmd[1:])
		if err != nil {
			m.printErr(fmt.Errorf("unwatch: %w", err))
			break // switch
		}
		for _, l := range lines {
			if _, ok := m.watches[l]; !ok {
				m.println(m.styles.debugger, fmt.Sprintf("watch for %s not present", l))
				continue
			}
			delete(m.watches, l)
			m.println(m.styles.debugger, fmt.Sprintf("watch for %s has been removed", l))
		}

	case "LUA":
		if len(cmd) < 2 {
			m.println(m.styles.err, "LUA requires a filename")
			break // switch
		}
		err := m.runLua(cmd[1])
		if err != nil {
			m.printErr(fmt.Errorf("lua: %w", err))
		}

	case "SCRIPT":
		if len(cmd) < 2 {
			m.println(m.styles.err, "SCRIPT requires a filename")
			break // switch
		}
		return m.runScript(cmd[1])

	case "LOG":
		if len(cmd) > 1 {
			if strings.ToUpper(cmd[1]) == "CLEAR" {
				logger.Clear()
				break // switch
			}
			n, err := strconv.Atoi(cmd[1])
			if err != nil {
				m.printErr(fmt.Errorf("cannot use LOG %s", cmd[1]))
				break // switch
			}
			logger.Tail(m.out, n)
			break // switch
		}
		logger.Tail(m.out, -1)

	case "HISTORY":
		if m.history == "" {
			m.println(m.styles.err, "command history is not being recorded")
			break // switch
		}
		n := 10
		if len(cmd) > 1 {
			var err error
			n, err = strconv.Atoi(cmd[1])
			if err != nil {
				m.printErr(fmt.Errorf("cannot use HISTORY %s", cmd[1]))
				break // switch
			}
			if n < 0 {
				m.printErr(fmt.Errorf("cannot use HISTORY %s", cmd[1]))
				break // switch
			}
		}
		h, err := resources.ReadLines(m.history)
		if err != nil {
			m.printErr(fmt.Errorf("history: %w", err))
			break // switch
		}
		n = max(len(h)-n, 0)
		for _, s := range h[n:] {
			fmt.Fprintln(m.out, s)
		}

	case "VERSION":
		m.println(m.styles.debugger, version.String())

	case "QUIT":
		return true

	default:
		m.printErr(fmt.Errorf("unrecognised command: %s", strings.Join(cmd, " ")))
	}

	return false
}
