package riva128

// LegacyBase is the first port of the legacy register window.
const LegacyBase = 0x3c0

// the CRTC data port. the I2C registers are accessed through this port
const crData = 0x3d5

// CRTC index values of the vendor I2C registers.
const (
	I2CReadIndex  = 0x3e
	I2CWriteIndex = 0x3f
)

// bit positions of the lines in the I2C read register
const (
	i2cReadSDA = 0x08
	i2cReadSCL = 0x04
)

// bit positions of the lines in the I2C write register
const (
	i2cWriteSCL = 0x20
	i2cWriteSDA = 0x10
)

// target is the destination of a register access.
type target int

const (
	targetNone target = iota
	targetVGA
	targetI2CRead
	targetI2CWrite
)

// target decides where an access to the port address goes. the CRTC index
// is only consulted once the address is known to be the CRTC data port.
func (r *RIVA128) target(addr uint16, write bool) target {
	switch addr {
	case 0x3c0, 0x3c1, 0x3c2, 0x3c3, 0x3c4, 0x3c5, 0x3c6, 0x3c7,
		0x3c8, 0x3c9, 0x3ca, 0x3cc, 0x3ce, 0x3cf, 0x3d4, 0x3da:
		return targetVGA
	case crData:
		idx := r.vga.CRTCIndex()
		if write {
			if idx == I2CWriteIndex {
				return targetI2CWrite
			}
		} else if idx == I2CReadIndex {
			return targetI2CRead
		}
		return targetVGA
	}
	return targetNone
}

// read a single register. unmapped ports read as zero.
func (r *RIVA128) read(addr uint16) uint8 {
	switch r.target(addr, false) {
	case targetVGA:
		return r.vga.Read(addr)
	case targetI2CRead:
		var v uint8
		if r.I2C.SDA {
			v |= i2cReadSDA
		}
		if r.I2C.SCL {
			v |= i2cReadSCL
		}
		return v
	}
	return 0
}

// write a single register. writes to unmapped ports are dropped.
func (r *RIVA128) write(addr uint16, data uint8) {
	switch r.target(addr, true) {
	case targetVGA:
		r.vga.Write(addr, data)
	case targetI2CWrite:
		r.I2C.SCL = data&i2cWriteSCL == i2cWriteSCL
		r.I2C.SDA = data&i2cWriteSDA == i2cWriteSDA
		if r.observer != nil {
			r.observer.ObserveLines(r.I2C)
		}
	}
}
