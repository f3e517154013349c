package debugger

import (
	"fmt"

	"github.com/jetsetilly/riva128/hardware/riva128"
)

// lines that can be watched
const (
	watchSCL = "SCL"
	watchSDA = "SDA"
)

type watch struct {
	data bool
	prev bool
}

func (w watch) String() string {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("%d -> %d", b(w.prev), b(w.data))
}

func lineValue(l riva128.Lines, line string) bool {
	if line == watchSCL {
		return l.SCL
	}
	return l.SDA
}

// checkWatches compares the current state of the lines with the state when
// the watches were last checked. the returned slice is empty if no watched
// line has changed
func (m *debugger) checkWatches() []string {
	var changed []string
	for _, line := range []string{watchSCL, watchSDA} {
		w, ok := m.watches[line]
		if !ok {
			continue
		}
		d := lineValue(m.adapter.RIVA.I2C, line)
		if d != w.data {
			w.prev = w.data
			w.data = d
			m.watches[line] = w
			changed = append(changed, fmt.Sprintf("%s %s", line, w))
		}
	}
	return changed
}
