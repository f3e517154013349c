package hardware_test

import (
	"testing"

	"github.com/jetsetilly/riva128/hardware"
	"github.com/jetsetilly/riva128/hardware/bus"
	"github.com/jetsetilly/riva128/hardware/pci"
	"github.com/jetsetilly/riva128/hardware/riva128"
	"github.com/jetsetilly/riva128/test"
)

type context struct{}

func (context) AllowLogging() bool {
	return false
}

func create(t *testing.T, v pci.Variant, props string) *hardware.Adapter {
	t.Helper()
	cfg, err := pci.Parse(v, props)
	test.DemandEquality(t, err, nil)
	adp, err := hardware.Create(context{}, cfg)
	test.DemandEquality(t, err, nil)
	return adp
}

// out is a helper for port writes that are expected to succeed
func out(t *testing.T, adp *hardware.Adapter, port uint16, width int, value uint64) {
	t.Helper()
	test.DemandEquality(t, adp.Out(port, width, value), nil)
}

// in is a helper for port reads that are expected to succeed
func in(t *testing.T, adp *hardware.Adapter, port uint16, width int) uint64 {
	t.Helper()
	v, err := adp.In(port, width)
	test.DemandEquality(t, err, nil)
	return v
}

func TestI2CThroughPorts(t *testing.T) {
	adp := create(t, pci.Primary, "")

	out(t, adp, 0x3d4, 1, 0x3f)
	out(t, adp, 0x3d5, 1, 0x30)
	test.ExpectEquality(t, adp.RIVA.I2C, riva128.Lines{SCL: true, SDA: true})

	// the VGA never saw the write to the extended index
	test.ExpectEquality(t, adp.VGA.Snapshot().CR[0x3f], 0x00)

	out(t, adp, 0x3d4, 1, 0x3e)
	test.ExpectEquality(t, in(t, adp, 0x3d5, 1), 0x0c)

	adp.Reset()
	test.ExpectEquality(t, adp.RIVA.I2C, riva128.Lines{})

	// the VGA reset also cleared the CRTC index
	out(t, adp, 0x3d4, 1, 0x3e)
	test.ExpectEquality(t, in(t, adp, 0x3d5, 1), 0x00)
}

func TestGenericIndexThroughPorts(t *testing.T) {
	adp := create(t, pci.Primary, "")

	out(t, adp, 0x3d4, 1, 0x00)
	out(t, adp, 0x3d5, 1, 0x30)
	test.ExpectEquality(t, adp.RIVA.I2C, riva128.Lines{})
	test.ExpectEquality(t, in(t, adp, 0x3d5, 1), 0x30)
	test.ExpectEquality(t, adp.VGA.Snapshot().CR[0x00], 0x30)
}

func TestWideAccesses(t *testing.T) {
	adp := create(t, pci.Primary, "")

	// a word write sets the index and then the data
	out(t, adp, 0x3d4, 2, 0x203f)
	test.ExpectEquality(t, adp.RIVA.I2C, riva128.Lines{SCL: true})

	// a long write is split into two word writes. the upper word is
	// outside of any register
	out(t, adp, 0x3d4, 4, 0xffff103f)
	test.ExpectEquality(t, adp.RIVA.I2C, riva128.Lines{SDA: true})

	out(t, adp, 0x3d4, 1, 0x3e)
	test.ExpectEquality(t, in(t, adp, 0x3d4, 4), 0x0000083e)

	// legacy window ends at 0x3df
	_, err := adp.In(0x3e0, 1)
	test.ExpectError(t, err, bus.ErrUnmapped)
	_, err = adp.In(0x3de, 4)
	test.ExpectError(t, err, bus.ErrBounds)
}

func TestUnmappedRegisters(t *testing.T) {
	adp := create(t, pci.Primary, "")
	before := adp.Snapshot()

	for _, p := range []uint16{0x3cb, 0x3cd, 0x3d0, 0x3d1, 0x3d2, 0x3d3, 0x3d6, 0x3d7, 0x3d8, 0x3d9, 0x3db, 0x3df} {
		test.ExpectEquality(t, in(t, adp, p, 1), 0x00)
		out(t, adp, p, 1, 0xff)
	}

	test.ExpectEquality(t, adp.Snapshot() == before, true)
}

func TestMMIO(t *testing.T) {
	adp := create(t, pci.Primary, "")

	test.ExpectSuccess(t, adp.Poke(pci.IOPortOffset+0x14, 2, 0x303f))
	test.ExpectEquality(t, adp.RIVA.I2C, riva128.Lines{SCL: true, SDA: true})

	// the data port is delegated to the VGA when the write index is selected
	v, err := adp.Peek(pci.IOPortOffset+0x14, 2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x003f)

	_, err = adp.Peek(0, 1)
	test.ExpectError(t, err, bus.ErrUnmapped)

	adp = create(t, pci.Primary, "mmio=off")
	_, err = adp.Peek(pci.IOPortOffset+0x14, 1)
	test.ExpectError(t, err, bus.ErrUnmapped)
}

func TestSecondary(t *testing.T) {
	adp := create(t, pci.Secondary, "")
	test.ExpectEquality(t, adp.ROM() == nil, true)

	_, err := adp.In(0x3d4, 1)
	test.ExpectError(t, err, bus.ErrUnmapped)

	test.ExpectSuccess(t, adp.Poke(pci.IOPortOffset+0x14, 2, 0x103f))
	test.ExpectSuccess(t, adp.Poke(pci.IOPortOffset+0x14, 1, 0x3e))
	v, err := adp.Peek(pci.IOPortOffset+0x15, 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x08)
}

func TestSnapshot(t *testing.T) {
	adp := create(t, pci.Primary, "")

	out(t, adp, 0x3d4, 2, 0x203f)
	s := adp.Snapshot()
	test.ExpectEquality(t, s.Lines, riva128.Lines{SCL: true})
	test.ExpectEquality(t, s.VGA.CRIndex, 0x3f)

	adp.Reset()
	test.ExpectEquality(t, adp.Snapshot() == s, false)

	adp.Restore(s)
	test.ExpectEquality(t, adp.Snapshot() == s, true)
	out(t, adp, 0x3d4, 1, 0x3e)
	test.ExpectEquality(t, in(t, adp, 0x3d5, 1), 0x04)
}

// setLines drives the I2C lines through the CRTC registers with a word write
func setLines(t *testing.T, adp *hardware.Adapter, scl, sda bool) {
	t.Helper()
	var v uint64 = riva128.I2CWriteIndex
	if scl {
		v |= 0x2000
	}
	if sda {
		v |= 0x1000
	}
	out(t, adp, 0x3d4, 2, v)
}

// edidRead sends the address byte of an EDID read and its acknowledgement,
// followed by a stop condition. the start condition is the responsibility of
// the caller
func edidRead(t *testing.T, adp *hardware.Adapter) {
	t.Helper()
	setLines(t, adp, false, false)
	for _, b := range []bool{true, false, true, false, false, false, false, true, false} {
		setLines(t, adp, false, b)
		setLines(t, adp, true, b)
		setLines(t, adp, false, b)
	}
	setLines(t, adp, true, false)
	setLines(t, adp, true, true)
}

func TestDDCAttached(t *testing.T) {
	adp := create(t, pci.Primary, "")

	setLines(t, adp, true, true)
	setLines(t, adp, true, false)
	edidRead(t, adp)

	tr := adp.DDC.Transactions()
	test.DemandEquality(t, len(tr), 1)
	test.ExpectEquality(t, tr[0].String(), "50 R (EDID)")
}

func TestRestoreSyncsDDC(t *testing.T) {
	adp := create(t, pci.Primary, "")

	setLines(t, adp, true, true)
	s := adp.Snapshot()
	adp.Reset()
	adp.Restore(s)

	// lowering SDA while SCL is held high is a start condition because the
	// lines were already high when restored
	setLines(t, adp, true, false)
	edidRead(t, adp)

	tr := adp.DDC.Transactions()
	test.DemandEquality(t, len(tr), 1)
	test.ExpectEquality(t, tr[0].String(), "50 R (EDID)")
}
