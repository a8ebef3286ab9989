// Package bus implements the 65C02 system bus: three range-mapped memory
// regions (RAM, memory-mapped registers, ROM) and the trace sink that
// records every access in program order.
package bus

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an address falls outside a region's window.
var ErrOutOfRange = errors.New("bus: address out of range")

// ErrReadOnly is returned when a program-path write targets a ROM region.
var ErrReadOnly = errors.New("bus: write to read-only region")

// ErrLoadTooLarge is returned when an object file is larger than its ROM window.
var ErrLoadTooLarge = errors.New("bus: program larger than ROM region")

// Disabled is the sentinel bound pair marking an absent region, matching
// the -1/-1 convention of the original System constructor.
const Disabled = -1

// Region is a fixed-size byte array covering an inclusive [lo, hi] address
// window. A Region with lo == hi == Disabled is absent: Contains always
// reports false and every access faults.
type Region struct {
	lo, hi int32 // signed so Disabled (-1) is representable; valid bounds fit in uint16
	data   []byte
}

// NewRegion constructs a Region spanning [lo, hi]. Passing Disabled for either
// bound yields an absent region. Any other negative bound, or lo > hi, is
// rejected.
func NewRegion(lo, hi int32) (*Region, error) {
	if lo == Disabled || hi == Disabled {
		return &Region{lo: Disabled, hi: Disabled}, nil
	}
	if lo < 0 || hi < 0 {
		return nil, fmt.Errorf("bus: negative region bound lo=%d hi=%d", lo, hi)
	}
	if lo > hi {
		return nil, fmt.Errorf("bus: inverted region bound lo=%d hi=%d", lo, hi)
	}
	if hi > 0xFFFF {
		return nil, fmt.Errorf("bus: region bound hi=%#x exceeds 16-bit address space", hi)
	}
	return &Region{lo: lo, hi: hi, data: make([]byte, hi-lo+1)}, nil
}

// Enabled reports whether the region is mapped at all.
func (r *Region) Enabled() bool { return r != nil && r.lo != Disabled }

// Lo returns the region's low bound, or Disabled if absent.
func (r *Region) Lo() int32 { return r.lo }

// Hi returns the region's high bound, or Disabled if absent.
func (r *Region) Hi() int32 { return r.hi }

// Contains reports whether addr falls within this region's window.
func (r *Region) Contains(addr uint16) bool {
	if !r.Enabled() {
		return false
	}
	a := int32(addr)
	return a >= r.lo && a <= r.hi
}

// Overlaps reports whether this region's window intersects other's.
func (r *Region) Overlaps(other *Region) bool {
	if !r.Enabled() || !other.Enabled() {
		return false
	}
	return r.lo <= other.hi && other.lo <= r.hi
}

// Read returns the byte at addr, or ErrOutOfRange if addr is not contained.
func (r *Region) Read(addr uint16) (byte, error) {
	if !r.Contains(addr) {
		return 0, fmt.Errorf("%w: %#04x", ErrOutOfRange, addr)
	}
	return r.data[int32(addr)-r.lo], nil
}

// Write stores value at addr, or ErrOutOfRange if addr is not contained.
func (r *Region) Write(addr uint16, value byte) error {
	if !r.Contains(addr) {
		return fmt.Errorf("%w: %#04x", ErrOutOfRange, addr)
	}
	r.data[int32(addr)-r.lo] = value
	return nil
}

// Peek reads addr without a bounds error, returning 0 for an address this
// region does not cover. It never goes through the Bus and is never traced;
// it exists solely for the reset-vector fetch the loader performs directly
// against the ROM image, matching original_source/SystemLib/System.cpp.
func (r *Region) Peek(addr uint16) byte {
	if !r.Contains(addr) {
		return 0
	}
	return r.data[int32(addr)-r.lo]
}

// ROM is a Region that rejects program-path writes once constructed. The
// only way to populate it is LoadProgram, which bypasses Write entirely.
type ROM struct {
	*Region
	loaded bool
}

// NewROM constructs a read-only Region spanning [lo, hi].
func NewROM(lo, hi int32) (*ROM, error) {
	region, err := NewRegion(lo, hi)
	if err != nil {
		return nil, err
	}
	return &ROM{Region: region}, nil
}

// LoadProgram copies data verbatim into the ROM starting at offset 0. It
// fails with ErrLoadTooLarge if data exceeds the region's length.
func (r *ROM) LoadProgram(data []byte) error {
	if !r.Enabled() {
		return fmt.Errorf("bus: cannot load program into disabled ROM region")
	}
	if len(data) > len(r.data) {
		return fmt.Errorf("%w: %d bytes into %d-byte window", ErrLoadTooLarge, len(data), len(r.data))
	}
	copy(r.data, data)
	r.loaded = true
	return nil
}

// Loaded reports whether LoadProgram has populated this ROM.
func (r *ROM) Loaded() bool { return r.loaded }

// Write always fails: ROM only accepts data through LoadProgram.
func (r *ROM) Write(addr uint16, value byte) error {
	if !r.Contains(addr) {
		return fmt.Errorf("%w: %#04x", ErrOutOfRange, addr)
	}
	return fmt.Errorf("%w: %#04x", ErrReadOnly, addr)
}
