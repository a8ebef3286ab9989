// Package system wires a Bus and a CPU into the thin façade a caller
// actually drives: construct from six address bounds and a nominal clock
// rate, load a program image, and run it for an instruction budget with
// optional trace logging.
package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/intuitionamiga/w65c02sys/internal/bus"
	"github.com/intuitionamiga/w65c02sys/internal/cpu"
)

// ErrConfiguration wraps a construction-time failure: overlapping or
// inverted region bounds.
var ErrConfiguration = errors.New("system: invalid configuration")

// ErrLoad wraps a program-load failure: missing file or oversize image.
var ErrLoad = errors.New("system: failed to load program")

const resetVectorAddr = 0xFFFC

// Config holds the six address bounds and nominal clock rate a System is
// constructed from, matching the original reference's System constructor
// signature (ram lo/hi, registers lo/hi, rom lo/hi, MHz).
type Config struct {
	RAMLo, RAMHi             int32
	RegistersLo, RegistersHi int32
	ROMLo, ROMHi             int32
	MHz                      float64
}

// System owns one Bus and one CPU and is the unit of lifetime for both,
// per spec.md §5: neither is shared across System instances.
type System struct {
	Bus *bus.Bus
	CPU *cpu.CPU
	rom *bus.ROM
}

// New constructs a System from cfg. Overlapping or inverted region bounds
// fail with ErrConfiguration.
func New(cfg Config) (*System, error) {
	ram, err := bus.NewRegion(cfg.RAMLo, cfg.RAMHi)
	if err != nil {
		return nil, fmt.Errorf("%w: ram: %v", ErrConfiguration, err)
	}
	registers, err := bus.NewRegion(cfg.RegistersLo, cfg.RegistersHi)
	if err != nil {
		return nil, fmt.Errorf("%w: registers: %v", ErrConfiguration, err)
	}
	rom, err := bus.NewROM(cfg.ROMLo, cfg.ROMHi)
	if err != nil {
		return nil, fmt.Errorf("%w: rom: %v", ErrConfiguration, err)
	}
	b, err := bus.New(ram, registers, rom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	c := cpu.New(b)
	b.SetCycleSource(c)
	c.SetClockHz(cfg.MHz * 1e6)
	return &System{Bus: b, CPU: c, rom: rom}, nil
}

// ExecuteProgram loads objPath into ROM, resets the CPU with the reset
// vector read directly from the ROM image (untraced — see DESIGN.md Open
// Question (a)), optionally opens outPath as a trace sink, and runs up to
// instructionBudget instructions. It returns the number of instructions
// actually executed.
func (s *System) ExecuteProgram(objPath string, instructionBudget uint64, logging bool, outPath string) (uint64, error) {
	data, err := os.ReadFile(objPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if err := s.rom.LoadProgram(data); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	lo := s.rom.Peek(resetVectorAddr)
	hi := s.rom.Peek(resetVectorAddr + 1)
	if err := s.CPU.Reset(uint16(hi)<<8 | uint16(lo)); err != nil {
		return 0, err
	}

	var formatter *bus.Formatter
	var sinkFile *os.File
	if logging {
		f, openErr := os.Create(outPath)
		if openErr != nil {
			// TraceSinkFailure degrades gracefully: tracing is disabled,
			// execution proceeds untraced rather than failing the run.
			fmt.Fprintf(os.Stderr, "system: trace sink unavailable, logging disabled: %v\n", openErr)
			s.Bus.DisableLogging()
		} else {
			sinkFile = f
			formatter = bus.NewFormatter(f)
			s.Bus.SetLogging(true, formatter)
		}
	} else {
		s.Bus.SetLogging(false, nil)
	}
	defer func() {
		if formatter != nil {
			formatter.Flush()
		}
		if sinkFile != nil {
			sinkFile.Close()
		}
	}()

	return s.CPU.Execute(instructionBudget)
}
