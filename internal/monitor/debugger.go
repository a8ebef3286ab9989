// Package monitor implements an interactive line-mode debugger over a
// running system.System: single-step, breakpoints, register and memory
// inspection, entered through a raw-mode terminal session.
package monitor

import (
	"fmt"

	"github.com/intuitionamiga/w65c02sys/internal/cpu"
	"github.com/intuitionamiga/w65c02sys/internal/system"
)

// Breakpoint stops Continue when the CPU is about to fetch from Addr.
type Breakpoint struct {
	Addr uint16
}

// Debugger wraps a system.System with the breakpoint bookkeeping and
// register/memory accessors a monitor session needs.
type Debugger struct {
	Sys         *system.System
	Breakpoints []Breakpoint
}

// New returns a Debugger over sys.
func New(sys *system.System) *Debugger {
	return &Debugger{Sys: sys}
}

// HasBreakpoint reports whether addr has a breakpoint set.
func (d *Debugger) HasBreakpoint(addr uint16) bool {
	for _, bp := range d.Breakpoints {
		if bp.Addr == addr {
			return true
		}
	}
	return false
}

// SetBreakpoint adds a breakpoint at addr if one is not already set.
func (d *Debugger) SetBreakpoint(addr uint16) {
	if !d.HasBreakpoint(addr) {
		d.Breakpoints = append(d.Breakpoints, Breakpoint{Addr: addr})
	}
}

// ClearBreakpoint removes any breakpoint at addr.
func (d *Debugger) ClearBreakpoint(addr uint16) {
	out := d.Breakpoints[:0]
	for _, bp := range d.Breakpoints {
		if bp.Addr != addr {
			out = append(out, bp)
		}
	}
	d.Breakpoints = out
}

// ClearAllBreakpoints removes every breakpoint.
func (d *Debugger) ClearAllBreakpoints() { d.Breakpoints = nil }

// Step executes exactly one instruction.
func (d *Debugger) Step() (uint64, error) { return d.Sys.CPU.Step() }

// Continue steps until a breakpoint is hit, the CPU stops running, or the
// step budget is exhausted (a safety bound against a runaway program with
// no breakpoints at all).
func (d *Debugger) Continue(maxSteps uint64) (uint64, error) {
	var n uint64
	for ; n < maxSteps; n++ {
		if d.Sys.CPU.State != cpu.Running {
			return n, nil
		}
		if n > 0 && d.HasBreakpoint(d.Sys.CPU.PC) {
			return n, nil
		}
		if _, err := d.Sys.CPU.Step(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Registers renders the register file for display.
func (d *Debugger) Registers() string {
	c := d.Sys.CPU
	return fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X SP=%02X PS=%02X [%s] cycles=%d state=%s",
		c.PC, c.A, c.X, c.Y, c.SP, c.PS, flagString(c.PS), c.Cycles, c.State)
}

func flagString(ps byte) string {
	bits := []struct {
		mask byte
		c    byte
	}{
		{cpu.FlagN, 'N'}, {cpu.FlagV, 'V'}, {cpu.FlagUnused, '-'}, {cpu.FlagB, 'B'},
		{cpu.FlagD, 'D'}, {cpu.FlagI, 'I'}, {cpu.FlagZ, 'Z'}, {cpu.FlagC, 'C'},
	}
	buf := make([]byte, len(bits))
	for i, b := range bits {
		if ps&b.mask != 0 {
			buf[i] = b.c
		} else {
			buf[i] = '.'
		}
	}
	return string(buf)
}

// ReadMemory reads length bytes starting at addr via the bus, exactly as
// the CPU would observe it — this goes through Bus.Read and therefore
// participates in tracing if logging happens to be enabled.
func (d *Debugger) ReadMemory(addr uint16, length int) ([]byte, error) {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		v, err := d.Sys.Bus.Read(addr + uint16(i))
		if err != nil {
			return out[:i], err
		}
		out[i] = v
	}
	return out, nil
}

// WriteMemory writes data starting at addr via the bus.
func (d *Debugger) WriteMemory(addr uint16, data []byte) error {
	for i, v := range data {
		if err := d.Sys.Bus.Write(addr+uint16(i), v); err != nil {
			return err
		}
	}
	return nil
}

// ROMInfo renders the ROM region's bounds and load state for the monitor's
// info command.
func (d *Debugger) ROMInfo() string {
	rom := d.Sys.Bus.ROMRegion()
	if rom == nil || !rom.Enabled() {
		return "ROM: disabled"
	}
	return fmt.Sprintf("ROM: [%04X,%04X] loaded=%v", rom.Lo(), rom.Hi(), rom.Loaded())
}

// Disassemble returns the mnemonic at addr without executing it. It does
// not decode operand bytes or addressing-mode width: a full disassembler
// is a spec.md Non-goal, this is solely an aid for the monitor's step
// display.
func (d *Debugger) Disassemble(addr uint16) (string, error) {
	opcode, err := d.Sys.Bus.Read(addr)
	if err != nil {
		return "", err
	}
	return d.Sys.CPU.Name(opcode), nil
}
