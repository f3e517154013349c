// Package hardware assembles the RIVA 128 adapter from its parts and maps
// the register windows into the I/O and memory address spaces.
package hardware

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/riva128/hardware/bus"
	"github.com/jetsetilly/riva128/hardware/ddc"
	"github.com/jetsetilly/riva128/hardware/pci"
	"github.com/jetsetilly/riva128/hardware/riva128"
	"github.com/jetsetilly/riva128/hardware/vga"
	"github.com/jetsetilly/riva128/logger"
	"github.com/jetsetilly/riva128/resources"
)

// Context is required by the Adapter and is passed on to the components.
type Context interface {
	vga.Context
	riva128.Context
	ddc.Context
}

// the declared access contract of the register window
var (
	validSizes = bus.Sizes{Min: 1, Max: 4}
	implSizes  = bus.Sizes{Min: 1, Max: 2}
)

// Adapter is a RIVA 128 display adapter.
type Adapter struct {
	ctx    Context
	Config pci.Config

	VGA  *vga.VGA
	RIVA *riva128.RIVA128
	DDC  *ddc.Sniffer

	// port I/O space. empty for the secondary variant
	IO *bus.Bus

	// memory space containing the MMIO BAR. empty if MMIO is disabled
	MMIO     *bus.Bus
	MMIOBase uint64

	rom []uint8
}

// State is the part of the adapter that must be preserved when the virtual
// machine is saved or migrated.
type State struct {
	VGA   vga.State
	Lines riva128.Lines
}

// Create is the preferred method of initialisation for the Adapter type.
func Create(ctx Context, cfg pci.Config) (*Adapter, error) {
	adp := &Adapter{
		ctx:      ctx,
		Config:   cfg,
		VGA:      vga.Create(ctx),
		DDC:      ddc.Create(ctx),
		IO:       bus.Create("io"),
		MMIO:     bus.Create("mmio"),
		MMIOBase: pci.MMIOBase,
	}
	adp.RIVA = riva128.Create(ctx, adp.VGA)
	adp.RIVA.Attach(adp.DDC)

	if cfg.LegacyPorts() {
		err := adp.IO.Map(bus.Region{
			Label:   "riva128 vga ioports",
			Origin:  pci.LegacyPortBase,
			Size:    pci.IOPortSize,
			Valid:   validSizes,
			Impl:    implSizes,
			Handler: adp.RIVA,
		})
		if err != nil {
			return nil, fmt.Errorf("adapter: %w", err)
		}
	}

	if cfg.MMIO || cfg.Variant == pci.Secondary {
		err := adp.MMIO.Map(bus.Region{
			Label:   "riva128 ioports remapped",
			Origin:  adp.MMIOBase + pci.IOPortOffset,
			Size:    pci.IOPortSize,
			Valid:   validSizes,
			Impl:    implSizes,
			Handler: adp.RIVA,
		})
		if err != nil {
			return nil, fmt.Errorf("adapter: %w", err)
		}
	}

	if cfg.ROMFile != "" {
		adp.loadROM()
	}

	adp.Reset()
	logger.Logf(ctx, "adapter", "created %s", cfg)

	return adp, nil
}

func (adp *Adapter) loadROM() {
	d, err := resources.ReadBinary(adp.Config.ROMFile)
	if err != nil {
		logger.Logf(adp.ctx, "adapter", "could not load option rom: %v", err)
		return
	}
	if d == nil {
		logger.Logf(adp.ctx, "adapter", "no option rom (%s)", adp.Config.ROMFile)
		return
	}
	adp.rom = d
	logger.Logf(adp.ctx, "adapter", "option rom loaded (%d bytes)", len(d))
}

// ROM returns the option ROM. Returns nil if there is no option ROM.
func (adp *Adapter) ROM() []uint8 {
	return adp.rom
}

// Reset the VGA registers and the I2C lines. The DDC sniffer is reset too,
// although its record of transactions is kept.
func (adp *Adapter) Reset() {
	adp.VGA.Reset()
	adp.RIVA.Reset()
	adp.DDC.Reset()
}

// Snapshot returns the state of the adapter.
func (adp *Adapter) Snapshot() State {
	return State{
		VGA:   adp.VGA.Snapshot(),
		Lines: adp.RIVA.I2C,
	}
}

// Restore the adapter to a previous state. The DDC sniffer is reset because
// any transaction it was following no longer applies. Its view of the lines
// is then brought into line with the restored state.
func (adp *Adapter) Restore(s State) {
	adp.VGA.Restore(s.VGA)
	adp.RIVA.I2C = s.Lines
	adp.DDC.Reset()
	adp.DDC.Sync(s.Lines)
}

// In reads from the port I/O space.
func (adp *Adapter) In(port uint16, width int) (uint64, error) {
	return adp.IO.Read(uint64(port), width)
}

// Out writes to the port I/O space.
func (adp *Adapter) Out(port uint16, width int, value uint64) error {
	return adp.IO.Write(uint64(port), width, value)
}

// Peek reads from the MMIO BAR. The offset is relative to the start of the
// BAR.
func (adp *Adapter) Peek(offset uint64, width int) (uint64, error) {
	return adp.MMIO.Read(adp.MMIOBase+offset, width)
}

// Poke writes to the MMIO BAR. The offset is relative to the start of the
// BAR.
func (adp *Adapter) Poke(offset uint64, width int, value uint64) error {
	return adp.MMIO.Write(adp.MMIOBase+offset, width, value)
}

func (adp *Adapter) Label() string {
	return "Adapter"
}

func (adp *Adapter) Status() string {
	var s strings.Builder
	s.WriteString(adp.Config.String())
	s.WriteString("\n")
	s.WriteString(adp.RIVA.Status())
	return s.String()
}
