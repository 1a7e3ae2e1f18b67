package bus

import (
	"errors"
	"fmt"
	"sort"
)

// bus errors
var (
	ErrUnmapped = errors.New("not a mapped bus address")
	ErrOverlap  = errors.New("region overlaps an existing mapping")
	ErrEmpty    = errors.New("region has zero length")
)

// Device is anything that decodes offsets inside its own MMIO window.
// Offsets handed to the device are relative to the region base.
type Device interface {
	Read(offset uint64, size int) uint32
	Write(offset uint64, value uint32, size int)
}

// Region is one device mapping
type Region struct {
	Name string
	Base uint64
	Size uint64

	dev Device
}

// End returns the first address past the region
func (r Region) End() uint64 { return r.Base + r.Size }

func (r Region) contains(addr uint64) bool {
	return addr >= r.Base && addr < r.End()
}

// Bus routes physical addresses to the attached devices.
// Regions are kept sorted by base address.
type Bus struct {
	regions []Region
}

// New returns an empty bus
func New() *Bus {
	return &Bus{}
}

// Map attaches dev at [base, base+size)
func (b *Bus) Map(name string, base, size uint64, dev Device) error {
	if size == 0 {
		return fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	r := Region{Name: name, Base: base, Size: size, dev: dev}
	for _, m := range b.regions {
		if r.Base < m.End() && m.Base < r.End() {
			return fmt.Errorf("%s at %#x: %w (%s)", name, base, ErrOverlap, m.Name)
		}
	}

	b.regions = append(b.regions, r)
	sort.Slice(b.regions, func(i, j int) bool { return b.regions[i].Base < b.regions[j].Base })
	return nil
}

// Regions returns a copy of the mappings, sorted by base address
func (b *Bus) Regions() []Region {
	out := make([]Region, len(b.regions))
	copy(out, b.regions)
	return out
}

// Resolve finds the region holding addr and the offset inside it
func (b *Bus) Resolve(addr uint64) (Region, uint64, error) {
	i := sort.Search(len(b.regions), func(i int) bool { return b.regions[i].End() > addr })
	if i < len(b.regions) && b.regions[i].contains(addr) {
		r := b.regions[i]
		return r, addr - r.Base, nil
	}
	return Region{}, 0, fmt.Errorf("%#x: %w", addr, ErrUnmapped)
}

// Read reads size bytes at addr
func (b *Bus) Read(addr uint64, size int) (uint32, error) {
	r, off, err := b.Resolve(addr)
	if err != nil {
		return 0, err
	}
	return r.dev.Read(off, size), nil
}

// Write writes value at addr
func (b *Bus) Write(addr uint64, value uint32, size int) error {
	r, off, err := b.Resolve(addr)
	if err != nil {
		return err
	}
	r.dev.Write(off, value, size)
	return nil
}
