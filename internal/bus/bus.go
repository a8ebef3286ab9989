package bus

import (
	"errors"
	"fmt"
)

// ErrUnmappedAddress is returned when an address falls outside every
// enabled region.
var ErrUnmappedAddress = errors.New("bus: unmapped address")

// ErrOverlap is returned at construction when two enabled regions' windows
// intersect.
var ErrOverlap = errors.New("bus: overlapping regions")

// CycleSource supplies the current cycle count for trace records. Bus
// depends on this interface rather than *cpu.CPU directly so the bus and
// cpu packages never import each other; cpu.CPU satisfies it structurally.
type CycleSource interface {
	Cycle() uint64
}

// freeRunningClock is the zero-value CycleSource: it always reports cycle
// 0, used before a CPU is attached (e.g. while poking ROM during load).
type freeRunningClock struct{}

func (freeRunningClock) Cycle() uint64 { return 0 }

// Bus routes 16-bit addresses to exactly one of three non-overlapping
// regions (RAM, Registers, ROM) and, when logging is enabled, emits a
// trace record for every access in strict program order.
type Bus struct {
	ram       *Region
	registers *Region
	rom       *ROM

	logging bool
	sink    Sink
	clock   CycleSource
}

// New constructs a Bus over the three regions. Overlapping enabled regions
// are rejected with ErrOverlap.
func New(ram, registers *Region, rom *ROM) (*Bus, error) {
	regions := []*Region{ram, registers}
	if rom != nil {
		regions = append(regions, rom.Region)
	}
	for i := 0; i < len(regions); i++ {
		for j := i + 1; j < len(regions); j++ {
			if regions[i].Overlaps(regions[j]) {
				return nil, fmt.Errorf("%w: [%#x,%#x] and [%#x,%#x]",
					ErrOverlap, regions[i].lo, regions[i].hi, regions[j].lo, regions[j].hi)
			}
		}
	}
	return &Bus{ram: ram, registers: registers, rom: rom, clock: freeRunningClock{}}, nil
}

// SetCycleSource attaches the CPU whose cycle count stamps future trace
// records. Must be called before logging is enabled, or records carry a
// stale (likely zero) cycle value.
func (b *Bus) SetCycleSource(c CycleSource) { b.clock = c }

// SetLogging enables or disables trace emission. Passing a nil sink while
// enabling disables logging instead, matching the reference's graceful
// degradation for a TraceSinkFailure.
func (b *Bus) SetLogging(enabled bool, sink Sink) {
	if enabled && sink == nil {
		enabled = false
	}
	b.logging = enabled
	b.sink = sink
}

// DisableLogging silently turns off tracing. Used when opening the trace
// sink fails, per spec.md §7's TraceSinkFailure policy: recovered locally,
// execution continues untraced.
func (b *Bus) DisableLogging() {
	b.logging = false
	b.sink = nil
}

func (b *Bus) regionFor(addr uint16) interface {
	Contains(uint16) bool
	Read(uint16) (byte, error)
} {
	switch {
	case b.ram.Contains(addr):
		return b.ram
	case b.registers.Contains(addr):
		return b.registers
	case b.rom != nil && b.rom.Contains(addr):
		return b.rom
	default:
		return nil
	}
}

// Read returns the byte at addr and, if logging is enabled, records a READ
// access stamped with the attached CycleSource's current cycle.
func (b *Bus) Read(addr uint16) (byte, error) {
	r := b.regionFor(addr)
	if r == nil {
		return 0, fmt.Errorf("%w: %#04x", ErrUnmappedAddress, addr)
	}
	v, err := r.Read(addr)
	if err != nil {
		return 0, err
	}
	b.trace(Read, addr, v)
	return v, nil
}

// Write stores value at addr and, if logging is enabled, records a WRITE
// access. Writing into the ROM region (outside the program-load path)
// fails with ErrReadOnly.
func (b *Bus) Write(addr uint16, value byte) error {
	switch {
	case b.ram.Contains(addr):
		if err := b.ram.Write(addr, value); err != nil {
			return err
		}
	case b.registers.Contains(addr):
		if err := b.registers.Write(addr, value); err != nil {
			return err
		}
	case b.rom != nil && b.rom.Contains(addr):
		if err := b.rom.Write(addr, value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %#04x", ErrUnmappedAddress, addr)
	}
	b.trace(Write, addr, value)
	return nil
}

func (b *Bus) trace(kind AccessKind, addr uint16, value byte) {
	if !b.logging || b.sink == nil {
		return
	}
	if err := b.sink.WriteAccess(Access{Kind: kind, Address: addr, Value: value, Cycle: b.clock.Cycle()}); err != nil {
		// TraceSinkFailure degrades gracefully: tracing is silently
		// disabled for the remainder of the run rather than aborting it.
		b.DisableLogging()
	}
}

// ROMRegion exposes the underlying ROM region; the monitor's info command
// reads its bounds and load state through it.
func (b *Bus) ROMRegion() *ROM { return b.rom }
