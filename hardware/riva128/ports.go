package riva128

// WindowSize is the number of ports in the legacy register window.
const WindowSize = 0x20

// Read the window at offset. The offset is relative to the start of the
// window (LegacyBase) and offsets outside of the window read as zero. Only widths of one and two bytes are implemented and
// the bus is expected to split wider accesses.
//
// A two byte read is little-endian: the low byte is the register at offset
// and the high byte is the register at offset+1.
func (r *RIVA128) Read(offset uint64, width int) uint64 {
	if offset >= WindowSize {
		return 0
	}
	addr := uint16(LegacyBase + offset)
	switch width {
	case 1:
		return uint64(r.read(addr))
	case 2:
		v := uint64(r.read(addr))
		v |= uint64(r.read(addr+1)) << 8
		return v
	}
	return 0
}

// Write the window at offset. The offset is relative to the start of the
// window (LegacyBase) and writes outside of the window are ignored.
//
// A two byte write updates the low byte before the high byte. This allows an
// index register and its data register to be set with a single word write.
func (r *RIVA128) Write(offset uint64, width int, value uint64) {
	if offset >= WindowSize {
		return
	}
	addr := uint16(LegacyBase + offset)
	switch width {
	case 1:
		r.write(addr, uint8(value))
	case 2:
		r.write(addr, uint8(value))
		r.write(addr+1, uint8(value>>8))
	}
}
