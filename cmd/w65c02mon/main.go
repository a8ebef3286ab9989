// Command w65c02mon is the interactive counterpart to w65c02sys: it loads
// a program image, resets the CPU, and hands control to a line-mode
// debugger monitor reading commands from the controlling terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/intuitionamiga/w65c02sys/internal/monitor"
	"github.com/intuitionamiga/w65c02sys/internal/system"
)

func main() {
	var (
		ramLo   = flag.Int64("ram-lo", 0x0000, "RAM region low bound")
		ramHi   = flag.Int64("ram-hi", 0x3FFF, "RAM region high bound")
		regLo   = flag.Int64("reg-lo", -1, "registers region low bound (-1 disables)")
		regHi   = flag.Int64("reg-hi", -1, "registers region high bound (-1 disables)")
		romLo   = flag.Int64("rom-lo", 0x8000, "ROM region low bound")
		romHi   = flag.Int64("rom-hi", 0xFFFF, "ROM region high bound")
		mhz     = flag.Float64("mhz", 0, "nominal clock rate in MHz, 0 disables cosmetic pacing")
		objPath = flag.String("program", "", "path to the raw binary object file (required)")
	)
	flag.Parse()

	if *objPath == "" {
		fmt.Fprintln(os.Stderr, "w65c02mon: -program is required")
		flag.Usage()
		os.Exit(2)
	}

	sys, err := system.New(system.Config{
		RAMLo: int32(*ramLo), RAMHi: int32(*ramHi),
		RegistersLo: int32(*regLo), RegistersHi: int32(*regHi),
		ROMLo: int32(*romLo), ROMHi: int32(*romHi),
		MHz: *mhz,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "w65c02mon: %v\n", err)
		os.Exit(1)
	}

	if _, err := sys.ExecuteProgram(*objPath, 0, false, ""); err != nil {
		// instructionBudget of 0 loads and resets without stepping, so any
		// error here is a load/reset failure, not an execution fault.
		fmt.Fprintf(os.Stderr, "w65c02mon: %v\n", err)
		os.Exit(1)
	}

	dbg := monitor.New(sys)
	mon := monitor.NewMonitor(dbg, int(os.Stdin.Fd()), os.Stdout)
	if err := mon.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "w65c02mon: %v\n", err)
		os.Exit(1)
	}
	defer mon.Stop()

	fmt.Fprintln(os.Stdout, "w65c02mon ready — step, continue, break <addr>, clear <addr>, clearall, regs, mem <addr> [len], write <addr> <byte...>, disasm <addr>, info, reset, quit")
	if err := mon.Run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "w65c02mon: %v\n", err)
		os.Exit(1)
	}
}
