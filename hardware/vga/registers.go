package vga

// Legacy VGA ports. Some ports have a different meaning depending on whether
// they are read or written.
const (
	ARIndex       = 0x3c0 // attribute controller index/data flip-flop
	ARData        = 0x3c1 // attribute controller data (read)
	MiscWrite     = 0x3c2 // miscellaneous output (write)
	InputStatus0  = 0x3c2 // input status #0 (read)
	VideoEnable   = 0x3c3
	SRIndex       = 0x3c4
	SRData        = 0x3c5
	DACMask       = 0x3c6
	DACReadIndex  = 0x3c7 // (write)
	DACState      = 0x3c7 // (read)
	DACWriteIndex = 0x3c8
	DACData       = 0x3c9
	FeatureRead   = 0x3ca
	MiscRead      = 0x3cc
	GRIndex       = 0x3ce
	GRData        = 0x3cf
	CRIndex       = 0x3d4
	CRData        = 0x3d5
	InputStatus1  = 0x3da // input status #1 (read)
	FeatureWrite  = 0x3da // feature control (write)
)

// register file sizes
const (
	numSR      = 8
	numGR      = 16
	numCR      = 256
	numAR      = 21
	numPalette = 256 * 3
)

// CRTC indexes with special treatment
const (
	crOverflow     = 0x07
	crVRetraceEnd  = 0x11
	crProtectBit   = 0x80
	crOverflowLC8  = 0x10
	crProtectLimit = 0x07
	arIndexMask    = 0x3f
)

// input status #1 bits
const (
	st01DisplayEnable = 0x01
	st01VRetrace      = 0x08
)

// dac state values as returned by a read of the DACState port
const (
	dacStateWrite = 0x00
	dacStateRead  = 0x03
)
