// Package i2c contains helpers for observing the lines of a bit-banged I2C
// bus.
package i2c

import (
	"fmt"
	"strings"
)

// the number of samples kept by a trace for the purposes of String()
const historyLen = 32

// Trace records the state of a single I2C line (SDA or SCL). The line is
// sampled with the Tick() function and the change between the most recent
// sample and the one before it can be queried with Rising() and Falling().
type Trace struct {
	name string

	prev bool
	curr bool

	// recent samples in a ring. used only to describe the line
	history [historyLen]bool
	head    int
	count   int
}

// NewTrace is the preferred method of initialisation for the Trace type. The
// line starts in the low state.
func NewTrace(name string) Trace {
	return Trace{name: name}
}

// Tick records the current state of the line.
func (tr *Trace) Tick(v bool) {
	tr.prev = tr.curr
	tr.curr = v

	tr.history[tr.head] = v
	tr.head = (tr.head + 1) % historyLen
	if tr.count < historyLen {
		tr.count++
	}
}

// Reset returns the line to the low state and forgets the history.
func (tr *Trace) Reset() {
	*tr = NewTrace(tr.name)
}

// Hi returns true if the line is high.
func (tr Trace) Hi() bool {
	return tr.curr
}

// Lo returns true if the line is low.
func (tr Trace) Lo() bool {
	return !tr.curr
}

// Rising returns true if the line has changed from low to high with the most
// recent sample.
func (tr Trace) Rising() bool {
	return !tr.prev && tr.curr
}

// Falling returns true if the line has changed from high to low with the most
// recent sample.
func (tr Trace) Falling() bool {
	return tr.prev && !tr.curr
}

// String returns the recent history of the line, oldest sample first. A high
// sample is drawn as '‾' and a low sample as '_'.
func (tr Trace) String() string {
	var s strings.Builder
	start := (tr.head - tr.count + historyLen) % historyLen
	for i := range tr.count {
		if tr.history[(start+i)%historyLen] {
			s.WriteRune('‾')
		} else {
			s.WriteRune('_')
		}
	}
	return fmt.Sprintf("%s %s", tr.name, s.String())
}
