// Package bus maps device register windows into an address space. It is the
// part of the emulation that sits between the CPU (or the debugger) and the
// devices.
//
// A device declares the access widths that are valid on its window and the
// widths that it implements. Accesses wider than the implemented maximum are
// split into several accesses, in ascending address order, with the value
// treated as little-endian. Accesses outside the valid widths are refused.
package bus

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors returned by Read() and Write(). The returned errors wrap
// these values so errors.Is() should be used to test for them.
var (
	ErrUnmapped = errors.New("unmapped address")
	ErrWidth    = errors.New("invalid access width")
	ErrBounds   = errors.New("access crosses end of region")
	ErrOverlap  = errors.New("region overlaps existing region")
	ErrRegion   = errors.New("invalid region")
)

// Handler is the device side of a region. The offset is relative to the
// origin of the region. Width will always be within the implemented sizes of
// the region.
type Handler interface {
	Read(offset uint64, width int) uint64
	Write(offset uint64, width int, value uint64)
}

// Sizes is a range of access widths in bytes.
type Sizes struct {
	Min int
	Max int
}

func (sz Sizes) contains(width int) bool {
	return width >= sz.Min && width <= sz.Max
}

// Region is a window of the address space served by a Handler.
type Region struct {
	Label  string
	Origin uint64
	Size   uint64

	// accesses outside of Valid are refused. accesses inside of Valid but
	// wider than Impl.Max are split
	Valid Sizes
	Impl  Sizes

	Handler Handler
}

func (r Region) String() string {
	return fmt.Sprintf("%#06x-%#06x %s (valid %d-%d, impl %d-%d)", r.Origin, r.Origin+r.Size-1,
		r.Label, r.Valid.Min, r.Valid.Max, r.Impl.Min, r.Impl.Max)
}

func (r Region) contains(address uint64) bool {
	return address >= r.Origin && address-r.Origin < r.Size
}

// Bus is an address space.
type Bus struct {
	label   string
	regions []Region
}

// Create is the preferred method of initialisation for the Bus type.
func Create(label string) *Bus {
	return &Bus{label: label}
}

func (b *Bus) Label() string {
	return b.label
}

// Map a region into the address space.
func (b *Bus) Map(r Region) error {
	if r.Size == 0 || r.Handler == nil {
		return fmt.Errorf("%s: %s: %w", b.label, r.Label, ErrRegion)
	}
	if r.Impl.Min < 1 || r.Impl.Max < r.Impl.Min || r.Impl.Max&(r.Impl.Max-1) != 0 ||
		r.Valid.Min < r.Impl.Min || r.Valid.Max < r.Valid.Min {
		return fmt.Errorf("%s: %s: %w", b.label, r.Label, ErrRegion)
	}
	for _, e := range b.regions {
		if r.Origin < e.Origin+e.Size && e.Origin < r.Origin+r.Size {
			return fmt.Errorf("%s: %s: %w: %s", b.label, r.Label, ErrOverlap, e.Label)
		}
	}
	b.regions = append(b.regions, r)
	sort.Slice(b.regions, func(i, j int) bool {
		return b.regions[i].Origin < b.regions[j].Origin
	})
	return nil
}

// Regions returns a copy of the mapped regions in address order.
func (b *Bus) Regions() []Region {
	r := make([]Region, len(b.regions))
	copy(r, b.regions)
	return r
}

func (b *Bus) String() string {
	var s strings.Builder
	s.WriteString(b.label)
	for _, r := range b.regions {
		s.WriteString("\n")
		s.WriteString(r.String())
	}
	return s.String()
}

// MapAddress returns the region containing the address. The boolean is false
// if no region contains the address.
func (b *Bus) MapAddress(address uint64) (Region, bool) {
	for _, r := range b.regions {
		if r.contains(address) {
			return r, true
		}
	}
	return Region{}, false
}

// access checks the address and width and returns the region and the width
// of each of the individual accesses to the handler
func (b *Bus) access(address uint64, width int) (Region, int, error) {
	r, ok := b.MapAddress(address)
	if !ok {
		return r, 0, fmt.Errorf("%s: %#06x: %w", b.label, address, ErrUnmapped)
	}
	// widths are powers of two and no wider than the value type
	if !r.Valid.contains(width) || width > 8 || width&(width-1) != 0 {
		return r, 0, fmt.Errorf("%s: %#06x: %w: %d", b.label, address, ErrWidth, width)
	}
	if address-r.Origin+uint64(width) > r.Size {
		return r, 0, fmt.Errorf("%s: %#06x: %w: %s", b.label, address, ErrBounds, r.Label)
	}

	return r, min(width, r.Impl.Max), nil
}

// Read width bytes from the address.
func (b *Bus) Read(address uint64, width int) (uint64, error) {
	r, step, err := b.access(address, width)
	if err != nil {
		return 0, err
	}

	offset := address - r.Origin
	var v uint64
	for i := 0; i < width; i += step {
		v |= r.Handler.Read(offset+uint64(i), step) << (i * 8)
	}
	return v, nil
}

// Write width bytes of value to the address.
func (b *Bus) Write(address uint64, width int, value uint64) error {
	r, step, err := b.access(address, width)
	if err != nil {
		return err
	}

	offset := address - r.Origin
	mask := uint64(1)<<(step*8) - 1
	if step == 8 {
		mask = ^uint64(0)
	}
	for i := 0; i < width; i += step {
		r.Handler.Write(offset+uint64(i), step, (value>>(i*8))&mask)
	}
	return nil
}
