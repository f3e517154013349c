// Package pci describes the identity of the RIVA 128 as it is presented to
// the host. The Config type is a static record consumed when the adapter is
// created. Nothing in this package implements PCI configuration space.
package pci

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrProperty is wrapped by errors returned from Parse().
var ErrProperty = errors.New("property")

// Variant of the adapter.
type Variant int

// List of valid Variant values.
const (
	// the primary adapter decodes the legacy VGA ports and carries the VGA
	// BIOS. the MMIO BAR can be disabled
	Primary Variant = iota

	// a secondary adapter does not decode the legacy VGA ports. the
	// registers are reached through the MMIO BAR only
	Secondary
)

func (v Variant) String() string {
	switch v {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return "unknown"
}

// ParseVariant converts the name of a variant into a Variant value.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "primary", "riva128":
		return Primary, nil
	case "secondary", "secondary-riva128":
		return Secondary, nil
	}
	return Primary, fmt.Errorf("%w: unknown variant: %s", ErrProperty, s)
}

// Identity of the adapter.
const (
	VendorID = 0x12d2 // NVIDIA/SGS Thomson
	DeviceID = 0x0018 // RIVA 128

	ClassDisplayVGA   = 0x0300
	ClassDisplayOther = 0x0380

	ROMFile = "riva128bios.bin"
)

// Layout of the register windows.
const (
	LegacyPortBase = 0x3c0
	IOPortSize     = 0x3e0 - 0x3c0

	// offset of the legacy ports inside the MMIO BAR
	IOPortOffset = 0x400
	MMIOSize     = 0x1000000

	// default base address of the MMIO BAR
	MMIOBase = 0xfd000000
)

// the default amount of video memory in megabytes
const defaultVRAM = 4

// Config is the static description of an adapter.
type Config struct {
	Variant  Variant
	VendorID uint16
	DeviceID uint16
	ClassID  uint16

	// ROM file is empty for the secondary adapter
	ROMFile string

	VRAMSizeMB uint32

	// MMIO is always true for the secondary adapter
	MMIO bool

	BigEndianFramebuffer bool
	Hotpluggable         bool
}

// Default returns the default configuration of the variant.
func Default(v Variant) Config {
	cfg := Config{
		Variant:    v,
		VendorID:   VendorID,
		DeviceID:   DeviceID,
		VRAMSizeMB: defaultVRAM,
		MMIO:       true,
	}

	switch v {
	case Primary:
		cfg.ClassID = ClassDisplayVGA
		cfg.ROMFile = ROMFile
	case Secondary:
		cfg.ClassID = ClassDisplayOther
		cfg.Hotpluggable = true
	}

	return cfg
}

// Parse the properties string and return the configuration. Properties are a
// comma separated list of key=value pairs:
//
//	riva128mem_mb=8,mmio=off,big-endian-framebuffer=on
//
// The mmio property is not available for the secondary variant.
func Parse(v Variant, props string) (Config, error) {
	cfg := Default(v)

	for _, p := range strings.Split(props, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue // for loop
		}

		key, val, ok := strings.Cut(p, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: missing value: %s", ErrProperty, p)
		}

		switch key {
		case "riva128mem_mb":
			n, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return cfg, fmt.Errorf("%w: %s: %w", ErrProperty, key, err)
			}
			if n == 0 || n&(n-1) != 0 {
				return cfg, fmt.Errorf("%w: %s: must be a power of two: %d", ErrProperty, key, n)
			}
			cfg.VRAMSizeMB = uint32(n)

		case "mmio":
			if v == Secondary {
				return cfg, fmt.Errorf("%w: %s: not available for %s variant", ErrProperty, key, v)
			}
			b, err := parseBool(val)
			if err != nil {
				return cfg, fmt.Errorf("%w: %s: %w", ErrProperty, key, err)
			}
			cfg.MMIO = b

		case "big-endian-framebuffer":
			b, err := parseBool(val)
			if err != nil {
				return cfg, fmt.Errorf("%w: %s: %w", ErrProperty, key, err)
			}
			cfg.BigEndianFramebuffer = b

		default:
			return cfg, fmt.Errorf("%w: unknown property: %s", ErrProperty, key)
		}
	}

	return cfg, nil
}

// parseBool accepts the property spellings of a boolean as well as the
// spellings accepted by strconv.ParseBool()
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func (cfg Config) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s %04x:%04x class=%04x vram=%dMB mmio=%v", cfg.Variant,
		cfg.VendorID, cfg.DeviceID, cfg.ClassID, cfg.VRAMSizeMB, cfg.MMIO)
	if cfg.ROMFile != "" {
		fmt.Fprintf(&s, " rom=%s", cfg.ROMFile)
	}
	if cfg.BigEndianFramebuffer {
		s.WriteString(" big-endian-fb")
	}
	if cfg.Hotpluggable {
		s.WriteString(" hotpluggable")
	}
	return s.String()
}

// LegacyPorts returns true if the adapter decodes the legacy VGA ports.
func (cfg Config) LegacyPorts() bool {
	return cfg.Variant == Primary
}
