package cpu

// opcodeEntry pairs a mnemonic (for disassembly and the monitor) with its
// fully self-contained execution closure.
type opcodeEntry struct {
	name string
	exec execFunc
}

// initOpcodeTable builds the 256-entry dispatch table. Every slot is
// default-filled as a NOP and then overridden family by family, mirroring
// the flat generated-table idiom rather than a conditional chain — the table is the executable
// specification of the instruction set (spec.md §9). Undocumented NMOS
// opcode slots carry real WDC 65C02 semantics (STZ/TRB/TSB/PHX/PHY/PLX/
// PLY/BRA/BIT#imm/(zp) indirect/INC A/DEC A/JMP(abs,X)); every opcode not
// defined by the documented set is filled in as the specific NOP
// width/cycle variant the 65C02 defines for that slot.
func (c *CPU) initOpcodeTable() {
	t := &c.opcodeTable

	// Default-fill every slot as the baseline 1-byte/2-cycle NOP, then
	// override the documented instructions and the wider NOP variants.
	for i := range t {
		t[i] = opcodeEntry{"NOP", nopExec(0, 1)}
	}

	set := func(op byte, name string, exec execFunc) { t[op] = opcodeEntry{name, exec} }

	// Wider undocumented-slot NOPs, per the 65C02's reserved-opcode map.
	for _, op := range []byte{0x02, 0x22, 0x42, 0x62, 0x82, 0xC2, 0xE2} {
		set(op, "NOP", nopExec(1, 0))
	}
	set(0x44, "NOP", nopExec(1, 1))
	for _, op := range []byte{0x54, 0xD4, 0xF4} {
		set(op, "NOP", nopExec(1, 2))
	}
	set(0x5C, "NOP", nopExec(2, 5))
	for _, op := range []byte{0xDC, 0xFC} {
		set(op, "NOP", nopExec(2, 1))
	}

	absX := amAbsoluteIndexed(X, false)
	absXStore := amAbsoluteIndexed(X, true)
	absY := amAbsoluteIndexed(Y, false)
	absYStore := amAbsoluteIndexed(Y, true)
	indY := amIndirectIndexedY(false)
	indYStore := amIndirectIndexedY(true)

	// --- BRK / control flow ---
	set(0x00, "BRK", brkExec())
	set(0x20, "JSR", jsrExec())
	set(0x40, "RTI", rtiExec())
	set(0x60, "RTS", rtsExec())
	set(0x4C, "JMP", jmpExec(amAbsolute))
	set(0x6C, "JMP", jmpExec(amAbsoluteIndirect))
	set(0x7C, "JMP", jmpExec(amAbsoluteIndirectX))

	// --- Branches ---
	set(0x10, "BPL", branchExec(func(c *CPU) bool { return !c.GetFlag(FlagN) }))
	set(0x30, "BMI", branchExec(func(c *CPU) bool { return c.GetFlag(FlagN) }))
	set(0x50, "BVC", branchExec(func(c *CPU) bool { return !c.GetFlag(FlagV) }))
	set(0x70, "BVS", branchExec(func(c *CPU) bool { return c.GetFlag(FlagV) }))
	set(0x90, "BCC", branchExec(func(c *CPU) bool { return !c.GetFlag(FlagC) }))
	set(0xB0, "BCS", branchExec(func(c *CPU) bool { return c.GetFlag(FlagC) }))
	set(0xD0, "BNE", branchExec(func(c *CPU) bool { return !c.GetFlag(FlagZ) }))
	set(0xF0, "BEQ", branchExec(func(c *CPU) bool { return c.GetFlag(FlagZ) }))
	set(0x80, "BRA", branchExec(func(c *CPU) bool { return true }))

	// --- Status flags ---
	set(0x18, "CLC", setFlagExec(FlagC, false))
	set(0x38, "SEC", setFlagExec(FlagC, true))
	set(0x58, "CLI", setFlagExec(FlagI, false))
	set(0x78, "SEI", setFlagExec(FlagI, true))
	set(0xD8, "CLD", setFlagExec(FlagD, false))
	set(0xF8, "SED", setFlagExec(FlagD, true))
	set(0xB8, "CLV", setFlagExec(FlagV, false))

	// --- Register transfers ---
	set(0xAA, "TAX", transferExec(X, A, true))
	set(0xA8, "TAY", transferExec(Y, A, true))
	set(0x8A, "TXA", transferExec(A, X, true))
	set(0x98, "TYA", transferExec(A, Y, true))
	set(0x9A, "TXS", txsExec())
	set(0xBA, "TSX", tsxExec())

	// --- Stack ---
	set(0x48, "PHA", phaExec(A))
	set(0x68, "PLA", plaExec(A))
	set(0xDA, "PHX", phaExec(X))
	set(0xFA, "PLX", plaExec(X))
	set(0x5A, "PHY", phaExec(Y))
	set(0x7A, "PLY", plaExec(Y))
	set(0x08, "PHP", phpExec())
	set(0x28, "PLP", plpExec())

	// --- Loads ---
	set(0xA9, "LDA", loadExec(A, amImmediate))
	set(0xA5, "LDA", loadExec(A, readVal(amZeroPage)))
	set(0xB5, "LDA", loadExec(A, readVal(amZeroPageX)))
	set(0xAD, "LDA", loadExec(A, readVal(amAbsolute)))
	set(0xBD, "LDA", loadExec(A, readVal(absX)))
	set(0xB9, "LDA", loadExec(A, readVal(absY)))
	set(0xA1, "LDA", loadExec(A, readVal(amIndirectX)))
	set(0xB1, "LDA", loadExec(A, readVal(indY)))
	set(0xB2, "LDA", loadExec(A, readVal(amZPIndirect)))

	set(0xA2, "LDX", loadExec(X, amImmediate))
	set(0xA6, "LDX", loadExec(X, readVal(amZeroPage)))
	set(0xB6, "LDX", loadExec(X, readVal(amZeroPageY)))
	set(0xAE, "LDX", loadExec(X, readVal(amAbsolute)))
	set(0xBE, "LDX", loadExec(X, readVal(absY)))

	set(0xA0, "LDY", loadExec(Y, amImmediate))
	set(0xA4, "LDY", loadExec(Y, readVal(amZeroPage)))
	set(0xB4, "LDY", loadExec(Y, readVal(amZeroPageX)))
	set(0xAC, "LDY", loadExec(Y, readVal(amAbsolute)))
	set(0xBC, "LDY", loadExec(Y, readVal(absX)))

	// --- Stores ---
	set(0x85, "STA", storeExec(amZeroPage, A))
	set(0x95, "STA", storeExec(amZeroPageX, A))
	set(0x8D, "STA", storeExec(amAbsolute, A))
	set(0x9D, "STA", storeExec(absXStore, A))
	set(0x99, "STA", storeExec(absYStore, A))
	set(0x81, "STA", storeExec(amIndirectX, A))
	set(0x91, "STA", storeExec(indYStore, A))
	set(0x92, "STA", storeExec(amZPIndirect, A))

	set(0x86, "STX", storeExec(amZeroPage, X))
	set(0x96, "STX", storeExec(amZeroPageY, X))
	set(0x8E, "STX", storeExec(amAbsolute, X))

	set(0x84, "STY", storeExec(amZeroPage, Y))
	set(0x94, "STY", storeExec(amZeroPageX, Y))
	set(0x8C, "STY", storeExec(amAbsolute, Y))

	set(0x64, "STZ", stzExec(amZeroPage))
	set(0x74, "STZ", stzExec(amZeroPageX))
	set(0x9C, "STZ", stzExec(amAbsolute))
	set(0x9E, "STZ", stzExec(absXStore))

	// --- Logical ---
	orOp := func(a, v byte) byte { return a | v }
	andOp := func(a, v byte) byte { return a & v }
	eorOp := func(a, v byte) byte { return a ^ v }

	set(0x09, "ORA", logicalExec(amImmediate, orOp))
	set(0x05, "ORA", logicalExec(readVal(amZeroPage), orOp))
	set(0x15, "ORA", logicalExec(readVal(amZeroPageX), orOp))
	set(0x0D, "ORA", logicalExec(readVal(amAbsolute), orOp))
	set(0x1D, "ORA", logicalExec(readVal(absX), orOp))
	set(0x19, "ORA", logicalExec(readVal(absY), orOp))
	set(0x01, "ORA", logicalExec(readVal(amIndirectX), orOp))
	set(0x11, "ORA", logicalExec(readVal(indY), orOp))
	set(0x12, "ORA", logicalExec(readVal(amZPIndirect), orOp))

	set(0x29, "AND", logicalExec(amImmediate, andOp))
	set(0x25, "AND", logicalExec(readVal(amZeroPage), andOp))
	set(0x35, "AND", logicalExec(readVal(amZeroPageX), andOp))
	set(0x2D, "AND", logicalExec(readVal(amAbsolute), andOp))
	set(0x3D, "AND", logicalExec(readVal(absX), andOp))
	set(0x39, "AND", logicalExec(readVal(absY), andOp))
	set(0x21, "AND", logicalExec(readVal(amIndirectX), andOp))
	set(0x31, "AND", logicalExec(readVal(indY), andOp))
	set(0x32, "AND", logicalExec(readVal(amZPIndirect), andOp))

	set(0x49, "EOR", logicalExec(amImmediate, eorOp))
	set(0x45, "EOR", logicalExec(readVal(amZeroPage), eorOp))
	set(0x55, "EOR", logicalExec(readVal(amZeroPageX), eorOp))
	set(0x4D, "EOR", logicalExec(readVal(amAbsolute), eorOp))
	set(0x5D, "EOR", logicalExec(readVal(absX), eorOp))
	set(0x59, "EOR", logicalExec(readVal(absY), eorOp))
	set(0x41, "EOR", logicalExec(readVal(amIndirectX), eorOp))
	set(0x51, "EOR", logicalExec(readVal(indY), eorOp))
	set(0x52, "EOR", logicalExec(readVal(amZPIndirect), eorOp))

	set(0x89, "BIT", bitExec(amImmediate, true))
	set(0x24, "BIT", bitExec(readVal(amZeroPage), false))
	set(0x34, "BIT", bitExec(readVal(amZeroPageX), false))
	set(0x2C, "BIT", bitExec(readVal(amAbsolute), false))
	set(0x3C, "BIT", bitExec(readVal(absX), false))

	set(0x14, "TRB", trbTsbExec(amZeroPage, false))
	set(0x1C, "TRB", trbTsbExec(amAbsolute, false))
	set(0x04, "TSB", trbTsbExec(amZeroPage, true))
	set(0x0C, "TSB", trbTsbExec(amAbsolute, true))

	// --- Arithmetic ---
	set(0x69, "ADC", adcExec(amImmediate))
	set(0x65, "ADC", adcExec(readVal(amZeroPage)))
	set(0x75, "ADC", adcExec(readVal(amZeroPageX)))
	set(0x6D, "ADC", adcExec(readVal(amAbsolute)))
	set(0x7D, "ADC", adcExec(readVal(absX)))
	set(0x79, "ADC", adcExec(readVal(absY)))
	set(0x61, "ADC", adcExec(readVal(amIndirectX)))
	set(0x71, "ADC", adcExec(readVal(indY)))
	set(0x72, "ADC", adcExec(readVal(amZPIndirect)))

	set(0xE9, "SBC", sbcExec(amImmediate))
	set(0xE5, "SBC", sbcExec(readVal(amZeroPage)))
	set(0xF5, "SBC", sbcExec(readVal(amZeroPageX)))
	set(0xED, "SBC", sbcExec(readVal(amAbsolute)))
	set(0xFD, "SBC", sbcExec(readVal(absX)))
	set(0xF9, "SBC", sbcExec(readVal(absY)))
	set(0xE1, "SBC", sbcExec(readVal(amIndirectX)))
	set(0xF1, "SBC", sbcExec(readVal(indY)))
	set(0xF2, "SBC", sbcExec(readVal(amZPIndirect)))

	// --- Compare ---
	set(0xC9, "CMP", compareExec(A, amImmediate))
	set(0xC5, "CMP", compareExec(A, readVal(amZeroPage)))
	set(0xD5, "CMP", compareExec(A, readVal(amZeroPageX)))
	set(0xCD, "CMP", compareExec(A, readVal(amAbsolute)))
	set(0xDD, "CMP", compareExec(A, readVal(absX)))
	set(0xD9, "CMP", compareExec(A, readVal(absY)))
	set(0xC1, "CMP", compareExec(A, readVal(amIndirectX)))
	set(0xD1, "CMP", compareExec(A, readVal(indY)))
	set(0xD2, "CMP", compareExec(A, readVal(amZPIndirect)))

	set(0xE0, "CPX", compareExec(X, amImmediate))
	set(0xE4, "CPX", compareExec(X, readVal(amZeroPage)))
	set(0xEC, "CPX", compareExec(X, readVal(amAbsolute)))

	set(0xC0, "CPY", compareExec(Y, amImmediate))
	set(0xC4, "CPY", compareExec(Y, readVal(amZeroPage)))
	set(0xCC, "CPY", compareExec(Y, readVal(amAbsolute)))

	// --- Increment / decrement ---
	set(0xE8, "INX", incDecRegExec(X, 1))
	set(0xC8, "INY", incDecRegExec(Y, 1))
	set(0xCA, "DEX", incDecRegExec(X, 0xFF))
	set(0x88, "DEY", incDecRegExec(Y, 0xFF))
	set(0x1A, "INC", incDecRegExec(A, 1))
	set(0x3A, "DEC", incDecRegExec(A, 0xFF))

	set(0xE6, "INC", incDecMemExec(amZeroPage, 1))
	set(0xF6, "INC", incDecMemExec(amZeroPageX, 1))
	set(0xEE, "INC", incDecMemExec(amAbsolute, 1))
	set(0xFE, "INC", incDecMemExec(absXStore, 1))
	set(0xC6, "DEC", incDecMemExec(amZeroPage, 0xFF))
	set(0xD6, "DEC", incDecMemExec(amZeroPageX, 0xFF))
	set(0xCE, "DEC", incDecMemExec(amAbsolute, 0xFF))
	set(0xDE, "DEC", incDecMemExec(absXStore, 0xFF))

	// --- Shifts ---
	set(0x0A, "ASL", shiftAcc(aslOp))
	set(0x06, "ASL", shiftMem(amZeroPage, aslOp))
	set(0x16, "ASL", shiftMem(amZeroPageX, aslOp))
	set(0x0E, "ASL", shiftMem(amAbsolute, aslOp))
	set(0x1E, "ASL", shiftMem(absXStore, aslOp))

	set(0x4A, "LSR", shiftAcc(lsrOp))
	set(0x46, "LSR", shiftMem(amZeroPage, lsrOp))
	set(0x56, "LSR", shiftMem(amZeroPageX, lsrOp))
	set(0x4E, "LSR", shiftMem(amAbsolute, lsrOp))
	set(0x5E, "LSR", shiftMem(absXStore, lsrOp))

	set(0x2A, "ROL", shiftAcc(rolOp))
	set(0x26, "ROL", shiftMem(amZeroPage, rolOp))
	set(0x36, "ROL", shiftMem(amZeroPageX, rolOp))
	set(0x2E, "ROL", shiftMem(amAbsolute, rolOp))
	set(0x3E, "ROL", shiftMem(absXStore, rolOp))

	set(0x6A, "ROR", shiftAcc(rorOp))
	set(0x66, "ROR", shiftMem(amZeroPage, rorOp))
	set(0x76, "ROR", shiftMem(amZeroPageX, rorOp))
	set(0x6E, "ROR", shiftMem(amAbsolute, rorOp))
	set(0x7E, "ROR", shiftMem(absXStore, rorOp))

	// --- Base NOP ---
	set(0xEA, "NOP", nopExec(0, 1))
}

// Name returns the mnemonic for an opcode byte without advancing PC or
// consuming cycles — used by the monitor's disassembly aid.
func (c *CPU) Name(opcode byte) string { return c.opcodeTable[opcode].name }
