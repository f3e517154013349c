package debugger

import (
	"github.com/jetsetilly/riva128/hardware/pci"
)

// context satisfies the hardware.Context interface. there's no reason for the
// debugger to ever deny logging but the quiet field is useful for testing
type context struct {
	variant pci.Variant
	props   string
	quiet   bool
}

func (ctx *context) AllowLogging() bool {
	return !ctx.quiet
}
