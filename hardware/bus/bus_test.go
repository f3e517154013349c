package bus_test

import (
	"testing"

	"github.com/jetsetilly/riva128/hardware/bus"
	"github.com/jetsetilly/riva128/test"
)

type access struct {
	write  bool
	offset uint64
	width  int
	value  uint64
}

// bytes is a handler backed by a byte array that records accesses
type bytes struct {
	data     [0x20]uint8
	accesses []access
}

func (b *bytes) Read(offset uint64, width int) uint64 {
	b.accesses = append(b.accesses, access{offset: offset, width: width})
	var v uint64
	for i := range width {
		v |= uint64(b.data[offset+uint64(i)]) << (i * 8)
	}
	return v
}

func (b *bytes) Write(offset uint64, width int, value uint64) {
	b.accesses = append(b.accesses, access{write: true, offset: offset, width: width, value: value})
	for i := range width {
		b.data[offset+uint64(i)] = uint8(value >> (i * 8))
	}
}

func create(t *testing.T) (*bus.Bus, *bytes) {
	t.Helper()
	b := bus.Create("test")
	h := &bytes{}
	err := b.Map(bus.Region{
		Label:   "device",
		Origin:  0x400,
		Size:    0x20,
		Valid:   bus.Sizes{Min: 1, Max: 4},
		Impl:    bus.Sizes{Min: 1, Max: 2},
		Handler: h,
	})
	test.DemandEquality(t, err, nil)
	return b, h
}

func TestSplitWrite(t *testing.T) {
	b, h := create(t)

	err := b.Write(0x414, 4, 0x11223344)
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(h.accesses), 2)
	test.ExpectEquality(t, h.accesses[0], access{write: true, offset: 0x14, width: 2, value: 0x3344})
	test.ExpectEquality(t, h.accesses[1], access{write: true, offset: 0x16, width: 2, value: 0x1122})

	h.accesses = h.accesses[:0]
	v, err := b.Read(0x414, 4)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x11223344)
	test.DemandEquality(t, len(h.accesses), 2)
	test.ExpectEquality(t, h.accesses[0], access{offset: 0x14, width: 2})
	test.ExpectEquality(t, h.accesses[1], access{offset: 0x16, width: 2})
}

func TestImplementedWidths(t *testing.T) {
	b, h := create(t)

	test.ExpectSuccess(t, b.Write(0x400, 1, 0x1ff))
	test.ExpectSuccess(t, b.Write(0x401, 2, 0xabcd))
	test.DemandEquality(t, len(h.accesses), 2)
	test.ExpectEquality(t, h.accesses[0], access{write: true, offset: 0x00, width: 1, value: 0xff})
	test.ExpectEquality(t, h.accesses[1], access{write: true, offset: 0x01, width: 2, value: 0xabcd})

	v, err := b.Read(0x400, 1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xff)
}

func TestErrors(t *testing.T) {
	b, h := create(t)

	_, err := b.Read(0x3ff, 1)
	test.ExpectError(t, err, bus.ErrUnmapped)
	err = b.Write(0x420, 1, 0)
	test.ExpectError(t, err, bus.ErrUnmapped)

	_, err = b.Read(0x400, 8)
	test.ExpectError(t, err, bus.ErrWidth)
	err = b.Write(0x400, 3, 0)
	test.ExpectError(t, err, bus.ErrWidth)
	err = b.Write(0x400, 0, 0)
	test.ExpectError(t, err, bus.ErrWidth)

	_, err = b.Read(0x41e, 4)
	test.ExpectError(t, err, bus.ErrBounds)

	test.ExpectEquality(t, len(h.accesses), 0)
}

func TestMap(t *testing.T) {
	b, _ := create(t)

	err := b.Map(bus.Region{
		Label:   "overlap",
		Origin:  0x410,
		Size:    0x20,
		Valid:   bus.Sizes{Min: 1, Max: 1},
		Impl:    bus.Sizes{Min: 1, Max: 1},
		Handler: &bytes{},
	})
	test.ExpectError(t, err, bus.ErrOverlap)

	err = b.Map(bus.Region{
		Label:  "no handler",
		Origin: 0x000,
		Size:   0x20,
		Valid:  bus.Sizes{Min: 1, Max: 1},
		Impl:   bus.Sizes{Min: 1, Max: 1},
	})
	test.ExpectError(t, err, bus.ErrRegion)

	err = b.Map(bus.Region{
		Label:   "bad widths",
		Origin:  0x000,
		Size:    0x20,
		Valid:   bus.Sizes{Min: 1, Max: 4},
		Impl:    bus.Sizes{Min: 1, Max: 3},
		Handler: &bytes{},
	})
	test.ExpectError(t, err, bus.ErrRegion)

	err = b.Map(bus.Region{
		Label:   "below",
		Origin:  0x000,
		Size:    0x20,
		Valid:   bus.Sizes{Min: 1, Max: 1},
		Impl:    bus.Sizes{Min: 1, Max: 1},
		Handler: &bytes{},
	})
	test.ExpectSuccess(t, err)

	r := b.Regions()
	test.DemandEquality(t, len(r), 2)
	test.ExpectEquality(t, r[0].Label, "below")
	test.ExpectEquality(t, r[1].Label, "device")

	m, ok := b.MapAddress(0x41f)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, m.Label, "device")
	_, ok = b.MapAddress(0x020)
	test.ExpectFailure(t, ok)
}
