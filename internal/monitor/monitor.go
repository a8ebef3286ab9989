package monitor

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Monitor drives a Debugger from an interactive terminal. Raw-mode entry
// and exit mirror the teacher's terminal host: MakeRaw on start, Restore
// on stop. The host terminal's mode is restored only when Stop runs.
type Monitor struct {
	dbg      *Debugger
	fd       int
	oldState *term.State
	out      io.Writer
}

// NewMonitor returns a Monitor over dbg, writing prompts and output to out.
func NewMonitor(dbg *Debugger, fd int, out io.Writer) *Monitor {
	return &Monitor{dbg: dbg, fd: fd, out: out}
}

// Start puts the terminal into raw mode. Callers must pair it with Stop.
func (m *Monitor) Start() error {
	state, err := term.MakeRaw(m.fd)
	if err != nil {
		return fmt.Errorf("monitor: failed to enter raw mode: %w", err)
	}
	m.oldState = state
	return nil
}

// Stop restores the terminal's prior mode.
func (m *Monitor) Stop() error {
	if m.oldState == nil {
		return nil
	}
	err := term.Restore(m.fd, m.oldState)
	m.oldState = nil
	return err
}

// Run reads commands from r (typically raw-mode stdin) until "quit" or r is
// exhausted, writing responses to m.out. Commands are read a line at a
// time, ended by CR or LF, rather than through the character-level loop of
// terminal_host.go; there is no line editing and no echo of typed input.
func (m *Monitor) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	// Raw mode turns off CR-to-LF translation, so Enter arrives as CR.
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	})
	fmt.Fprint(m.out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(m.out, "> ")
			continue
		}
		if m.dispatch(line) {
			return nil
		}
		fmt.Fprint(m.out, "> ")
	}
	return scanner.Err()
}

// dispatch executes one command line and reports whether the session
// should end.
func (m *Monitor) dispatch(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "quit", "q", "exit":
		return true
	case "step", "s":
		n, err := m.dbg.Step()
		m.report(n, err)
	case "continue", "c":
		n, err := m.dbg.Continue(1 << 32)
		fmt.Fprintf(m.out, "ran %d instructions\r\n", n)
		if err != nil {
			fmt.Fprintf(m.out, "fault: %v\r\n", err)
		}
	case "break", "b":
		if addr, ok := parseAddr(args); ok {
			m.dbg.SetBreakpoint(addr)
			fmt.Fprintf(m.out, "breakpoint set at %04X\r\n", addr)
		}
	case "clear":
		if addr, ok := parseAddr(args); ok {
			m.dbg.ClearBreakpoint(addr)
			fmt.Fprintf(m.out, "breakpoint cleared at %04X\r\n", addr)
		}
	case "clearall":
		m.dbg.ClearAllBreakpoints()
		fmt.Fprint(m.out, "all breakpoints cleared\r\n")
	case "regs", "r":
		fmt.Fprintf(m.out, "%s\r\n", m.dbg.Registers())
	case "mem", "m":
		m.cmdMem(args)
	case "write", "w":
		m.cmdWrite(args)
	case "disasm", "d":
		if addr, ok := parseAddr(args); ok {
			name, err := m.dbg.Disassemble(addr)
			if err != nil {
				fmt.Fprintf(m.out, "fault: %v\r\n", err)
			} else {
				fmt.Fprintf(m.out, "%04X: %s\r\n", addr, name)
			}
		}
	case "info", "i":
		fmt.Fprintf(m.out, "%s\r\n", m.dbg.ROMInfo())
	case "reset":
		if err := m.dbg.Sys.CPU.Reset(); err != nil {
			fmt.Fprintf(m.out, "reset fault: %v\r\n", err)
		}
	default:
		fmt.Fprintf(m.out, "unknown command: %s\r\n", cmd)
	}
	return false
}

func (m *Monitor) report(cycles uint64, err error) {
	fmt.Fprintf(m.out, "%s  (+%d cycles)\r\n", m.dbg.Registers(), cycles)
	if err != nil {
		fmt.Fprintf(m.out, "fault: %v\r\n", err)
	}
}

func (m *Monitor) cmdMem(args []string) {
	if len(args) < 1 {
		fmt.Fprint(m.out, "usage: mem <addr> [length]\r\n")
		return
	}
	addr, ok := parseAddr(args[:1])
	if !ok {
		return
	}
	length := 16
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			length = n
		}
	}
	data, err := m.dbg.ReadMemory(addr, length)
	for i, b := range data {
		fmt.Fprintf(m.out, "%04X: %02X\r\n", int(addr)+i, b)
	}
	if err != nil {
		fmt.Fprintf(m.out, "fault: %v\r\n", err)
	}
}

func (m *Monitor) cmdWrite(args []string) {
	if len(args) < 2 {
		fmt.Fprint(m.out, "usage: write <addr> <byte> [byte...]\r\n")
		return
	}
	addr, ok := parseAddr(args[:1])
	if !ok {
		fmt.Fprint(m.out, "bad address\r\n")
		return
	}
	data := make([]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		s := strings.TrimPrefix(strings.TrimPrefix(a, "0x"), "$")
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			fmt.Fprintf(m.out, "bad byte %q\r\n", a)
			return
		}
		data = append(data, byte(v))
	}
	if err := m.dbg.WriteMemory(addr, data); err != nil {
		fmt.Fprintf(m.out, "fault: %v\r\n", err)
	}
}

func parseAddr(args []string) (uint16, bool) {
	if len(args) == 0 {
		return 0, false
	}
	s := strings.TrimPrefix(strings.TrimPrefix(args[0], "0x"), "$")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}
