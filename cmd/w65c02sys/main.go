// Command w65c02sys runs a 65C02 object-code image for a fixed
// instruction budget, optionally emitting a trace log.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/intuitionamiga/w65c02sys/internal/system"
)

func main() {
	var (
		ramLo       = flag.Int64("ram-lo", 0x0000, "RAM region low bound")
		ramHi       = flag.Int64("ram-hi", 0x3FFF, "RAM region high bound")
		regLo       = flag.Int64("reg-lo", -1, "registers region low bound (-1 disables)")
		regHi       = flag.Int64("reg-hi", -1, "registers region high bound (-1 disables)")
		romLo       = flag.Int64("rom-lo", 0x8000, "ROM region low bound")
		romHi       = flag.Int64("rom-hi", 0xFFFF, "ROM region high bound")
		mhz         = flag.Float64("mhz", 1.0, "nominal clock rate in MHz, 0 disables cosmetic pacing")
		instrBudget = flag.Uint64("instructions", 1000, "maximum instructions to execute")
		trace       = flag.Bool("trace", false, "enable trace logging")
		traceOut    = flag.String("trace-out", "trace.log", "trace output path")
		objPath     = flag.String("program", "", "path to the raw binary object file (required)")
	)
	flag.Parse()

	if *objPath == "" {
		fmt.Fprintln(os.Stderr, "w65c02sys: -program is required")
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
		fmt.Fprintf(os.Stderr, "w65c02sys: %v\n", err)
		os.Exit(1)
	}

	executed, err := sys.ExecuteProgram(*objPath, *instrBudget, *trace, *traceOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "w65c02sys: executed %d instructions before error: %v\n", executed, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "w65c02sys: executed %d instructions, %d cycles, final state %s\n",
		executed, sys.CPU.Cycles, sys.CPU.State)
}
