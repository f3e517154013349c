package pci_test

import (
	"testing"

	"github.com/jetsetilly/riva128/hardware/pci"
	"github.com/jetsetilly/riva128/test"
)

func TestDefault(t *testing.T) {
	cfg := pci.Default(pci.Primary)
	test.ExpectEquality(t, cfg.VendorID, 0x12d2)
	test.ExpectEquality(t, cfg.DeviceID, 0x0018)
	test.ExpectEquality(t, cfg.ClassID, pci.ClassDisplayVGA)
	test.ExpectEquality(t, cfg.ROMFile, "riva128bios.bin")
	test.ExpectEquality(t, cfg.VRAMSizeMB, 4)
	test.ExpectEquality(t, cfg.MMIO, true)
	test.ExpectEquality(t, cfg.Hotpluggable, false)
	test.ExpectEquality(t, cfg.LegacyPorts(), true)
	test.ExpectEquality(t, cfg.String(), "primary 12d2:0018 class=0300 vram=4MB mmio=true rom=riva128bios.bin")

	cfg = pci.Default(pci.Secondary)
	test.ExpectEquality(t, cfg.ClassID, pci.ClassDisplayOther)
	test.ExpectEquality(t, cfg.ROMFile, "")
	test.ExpectEquality(t, cfg.MMIO, true)
	test.ExpectEquality(t, cfg.LegacyPorts(), false)
}

func TestParse(t *testing.T) {
	cfg, err := pci.Parse(pci.Primary, "riva128mem_mb=8, mmio=off,big-endian-framebuffer=on")
	test.DemandEquality(t, err, nil)
	test.ExpectEquality(t, cfg.VRAMSizeMB, 8)
	test.ExpectEquality(t, cfg.MMIO, false)
	test.ExpectEquality(t, cfg.BigEndianFramebuffer, true)

	cfg, err = pci.Parse(pci.Secondary, "")
	test.DemandEquality(t, err, nil)
	test.ExpectEquality(t, cfg, pci.Default(pci.Secondary))
}

func TestParseErrors(t *testing.T) {
	for _, p := range []string{
		"riva128mem_mb=3",
		"riva128mem_mb=0",
		"riva128mem_mb=lots",
		"mmio=maybe",
		"mmio",
		"vgamem_mb=16",
	} {
		_, err := pci.Parse(pci.Primary, p)
		test.ExpectError(t, err, pci.ErrProperty)
	}

	_, err := pci.Parse(pci.Secondary, "mmio=on")
	test.ExpectError(t, err, pci.ErrProperty)
}

func TestParseVariant(t *testing.T) {
	v, err := pci.ParseVariant("SECONDARY")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, pci.Secondary)

	v, err = pci.ParseVariant("riva128")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, pci.Primary)

	_, err = pci.ParseVariant("tertiary")
	test.ExpectError(t, err, pci.ErrProperty)
}
