// Package vga implements the register file of a standard VGA. Only the
// register semantics are emulated. There is no video memory and no rendering.
//
// Ports are addressed by their absolute legacy address (0x3c0 to 0x3df). The
// monochrome aliases of the CRTC and status ports (0x3bx) are not decoded.
package vga

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/riva128/logger"
)

// Context is required by the VGA for logging.
type Context interface {
	logger.Permission
}

// State is the complete register state of the VGA. It is returned by
// Snapshot() and accepted by Restore().
type State struct {
	MSR         uint8
	FCR         uint8
	ST00        uint8
	ST01        uint8
	VideoEnable uint8

	SRIndex uint8
	SR      [numSR]uint8

	GRIndex uint8
	GR      [numGR]uint8

	// the full byte of the CRTC index is kept and every index has storage.
	// vendor extended registers live above the standard 0x18
	CRIndex uint8
	CR      [numCR]uint8

	ARIndex    uint8
	AR         [numAR]uint8
	ARFlipFlop bool

	DACMask       uint8
	DACReadIndex  uint8
	DACWriteIndex uint8
	DACSubIndex   uint8
	DACState      uint8
	DACCache      [3]uint8
	Palette       [numPalette]uint8
}

// VGA is the standard register set of the adapter.
type VGA struct {
	ctx  Context
	regs State
}

// Create is the preferred method of initialisation for the VGA type.
func Create(ctx Context) *VGA {
	v := &VGA{ctx: ctx}
	v.Reset()
	return v
}

// Reset returns every register to its power-on value.
func (v *VGA) Reset() {
	v.regs = State{
		DACMask: 0xff,
	}
}

func (v *VGA) Label() string {
	return "VGA"
}

func (v *VGA) Status() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s: misc=%02x st01=%02x\n", v.Label(), v.regs.MSR, v.regs.ST01)
	fmt.Fprintf(&s, "SR[%02x] % 02x\n", v.regs.SRIndex, v.regs.SR[:])
	fmt.Fprintf(&s, "GR[%02x] % 02x\n", v.regs.GRIndex, v.regs.GR[:])
	fmt.Fprintf(&s, "CR[%02x] % 02x\n", v.regs.CRIndex, v.regs.CR[:0x19])
	fmt.Fprintf(&s, "AR[%02x] % 02x flipflop=%v\n", v.regs.ARIndex, v.regs.AR[:], v.regs.ARFlipFlop)
	fmt.Fprintf(&s, "DAC mask=%02x read=%02x write=%02x sub=%d", v.regs.DACMask,
		v.regs.DACReadIndex, v.regs.DACWriteIndex, v.regs.DACSubIndex)
	return s.String()
}

// CRTCIndex returns the currently selected CRT controller index.
func (v *VGA) CRTCIndex() uint8 {
	return v.regs.CRIndex
}

// Snapshot returns a copy of the register state.
func (v *VGA) Snapshot() State {
	return v.regs
}

// Restore replaces the register state with a previous snapshot. Index
// fields are limited to the range that Write() would allow.
func (v *VGA) Restore(s State) {
	s.SRIndex &= numSR - 1
	s.GRIndex &= numGR - 1
	s.DACSubIndex %= 3
	v.regs = s
}

// Palette returns the 6-bit RGB components of a palette entry.
func (v *VGA) Palette(idx uint8) (uint8, uint8, uint8) {
	i := int(idx) * 3
	return v.regs.Palette[i], v.regs.Palette[i+1], v.regs.Palette[i+2]
}

// Read returns the value of the register at the port address. Ports that
// are not part of the VGA read as 0xff, like an undriven ISA bus.
func (v *VGA) Read(addr uint16) uint8 {
	switch addr {
	case ARIndex:
		return v.regs.ARIndex
	case ARData:
		idx := v.regs.ARIndex & 0x1f
		if idx < numAR {
			return v.regs.AR[idx]
		}
		return 0
	case InputStatus0:
		return v.regs.ST00
	case VideoEnable:
		return v.regs.VideoEnable
	case SRIndex:
		return v.regs.SRIndex
	case SRData:
		return v.regs.SR[v.regs.SRIndex]
	case DACMask:
		return v.regs.DACMask
	case DACState:
		return v.regs.DACState
	case DACWriteIndex:
		return v.regs.DACWriteIndex
	case DACData:
		d := v.regs.Palette[int(v.regs.DACReadIndex)*3+int(v.regs.DACSubIndex)]
		v.regs.DACSubIndex++
		if v.regs.DACSubIndex == 3 {
			v.regs.DACSubIndex = 0
			v.regs.DACReadIndex++
		}
		return d
	case FeatureRead:
		return v.regs.FCR
	case MiscRead:
		return v.regs.MSR
	case GRIndex:
		return v.regs.GRIndex
	case GRData:
		return v.regs.GR[v.regs.GRIndex]
	case CRIndex:
		return v.regs.CRIndex
	case CRData:
		return v.regs.CR[v.regs.CRIndex]
	case InputStatus1:
		// reading the status register toggles the retrace bits so that
		// software polling for retrace always makes progress. it also resets
		// the attribute controller to expect an index
		v.regs.ST01 ^= st01VRetrace | st01DisplayEnable
		v.regs.ARFlipFlop = false
		return v.regs.ST01
	}

	logger.Logf(v.ctx, "vga", "read of unsupported port %#03x", addr)
	return 0xff
}

// Write sets the value of the register at the port address. Writes to ports
// that are not part of the VGA are ignored.
func (v *VGA) Write(addr uint16, data uint8) {
	switch addr {
	case ARIndex:
		if !v.regs.ARFlipFlop {
			v.regs.ARIndex = data & arIndexMask
		} else {
			idx := v.regs.ARIndex & 0x1f
			if idx < numAR {
				v.regs.AR[idx] = data
			}
		}
		v.regs.ARFlipFlop = !v.regs.ARFlipFlop
	case MiscWrite:
		v.regs.MSR = data &^ 0x10
	case VideoEnable:
		v.regs.VideoEnable = data
	case SRIndex:
		v.regs.SRIndex = data & (numSR - 1)
	case SRData:
		v.regs.SR[v.regs.SRIndex] = data
	case DACMask:
		v.regs.DACMask = data
	case DACReadIndex:
		v.regs.DACReadIndex = data
		v.regs.DACSubIndex = 0
		v.regs.DACState = dacStateRead
	case DACWriteIndex:
		v.regs.DACWriteIndex = data
		v.regs.DACSubIndex = 0
		v.regs.DACState = dacStateWrite
	case DACData:
		v.regs.DACCache[v.regs.DACSubIndex] = data & 0x3f
		v.regs.DACSubIndex++
		if v.regs.DACSubIndex == 3 {
			copy(v.regs.Palette[int(v.regs.DACWriteIndex)*3:], v.regs.DACCache[:])
			v.regs.DACSubIndex = 0
			v.regs.DACWriteIndex++
		}
	case GRIndex:
		v.regs.GRIndex = data & (numGR - 1)
	case GRData:
		v.regs.GR[v.regs.GRIndex] = data
	case CRIndex:
		v.regs.CRIndex = data
	case CRData:
		v.writeCR(data)
	case FeatureWrite:
		v.regs.FCR = data & 0x10
	default:
		logger.Logf(v.ctx, "vga", "write of unsupported port %#03x (%#02x)", addr, data)
	}
}

func (v *VGA) writeCR(data uint8) {
	// CR00 to CR07 are write protected by bit 7 of CR11, except for the
	// line compare bit of the overflow register
	if v.regs.CRIndex <= crProtectLimit && v.regs.CR[crVRetraceEnd]&crProtectBit == crProtectBit {
		if v.regs.CRIndex == crOverflow {
			v.regs.CR[crOverflow] = (v.regs.CR[crOverflow] &^ crOverflowLC8) | (data & crOverflowLC8)
		}
		return
	}
	v.regs.CR[v.regs.CRIndex] = data
}
