// Package riva128 implements the legacy register window of the RIVA 128
// display adapter.
//
// The RIVA 128 is VGA compatible and almost every access to the legacy
// window is passed on to the standard VGA registers. The exception is the
// CRTC data port when the CRTC index selects one of the two vendor I2C
// registers. The I2C registers expose the clock and data lines of the DDC bus
// used to talk to the monitor. Software drives the lines by writing to one
// index and samples them by reading from the other.
//
// There is no I2C controller. The lines are the register bits and nothing
// more.
package riva128

import (
	"fmt"

	"github.com/jetsetilly/riva128/logger"
)

// VGA is the standard register set that the RIVA 128 defers to. The port
// address passed to Read() and Write() is the absolute legacy address.
type VGA interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
	CRTCIndex() uint8
}

// Observer is notified after every write to the I2C lines. The lines passed
// to the observer are the new state of the lines.
type Observer interface {
	ObserveLines(l Lines)
}

// Context is required by the RIVA128 for logging.
type Context interface {
	logger.Permission
}

// Lines is the state of the DDC bus.
type Lines struct {
	SCL bool
	SDA bool
}

func (l Lines) String() string {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("SCL=%d SDA=%d", b(l.SCL), b(l.SDA))
}

// RIVA128 is the legacy register window of the adapter.
type RIVA128 struct {
	ctx Context
	vga VGA

	// the I2C lines are only changed by a write to the I2C write register
	I2C Lines

	observer Observer
}

// Create is the preferred method of initialisation for the RIVA128 type.
func Create(ctx Context, vga VGA) *RIVA128 {
	return &RIVA128{
		ctx: ctx,
		vga: vga,
	}
}

// Reset clears both I2C lines. It does not reset the VGA registers, which are
// reset separately by the owner of the VGA.
func (r *RIVA128) Reset() {
	r.I2C = Lines{}
	logger.Log(r.ctx, "riva128", "i2c lines reset")
}

// Attach an observer to the I2C lines. A nil observer detaches the current
// observer.
func (r *RIVA128) Attach(o Observer) {
	r.observer = o
}

func (r *RIVA128) Label() string {
	return "RIVA128"
}

func (r *RIVA128) Status() string {
	return fmt.Sprintf("%s: CR%02x i2c %s", r.Label(), r.vga.CRTCIndex(), r.I2C)
}
