package cpu

import "testing"

// memBus is a flat 64K array implementing the Bus interface, used to
// exercise the interpreter without involving internal/bus at all.
type memBus struct {
	mem [65536]byte
}

func (m *memBus) Read(addr uint16) (byte, error)     { return m.mem[addr], nil }
func (m *memBus) Write(addr uint16, value byte) error { m.mem[addr] = value; return nil }

func (m *memBus) setResetVector(addr uint16) {
	m.mem[0xFFFC] = byte(addr)
	m.mem[0xFFFD] = byte(addr >> 8)
}

func newTestCPU(program []byte, loadAt uint16) (*CPU, *memBus) {
	b := &memBus{}
	copy(b.mem[loadAt:], program)
	b.setResetVector(loadAt)
	c := New(b)
	if err := c.Reset(); err != nil {
		panic(err)
	}
	return c, b
}

func TestLDAImmediate(t *testing.T) {
	c, _ := newTestCPU([]byte{0xA9, 0x7F}, 0x0200)
	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
	if c.PC != 0x0202 {
		t.Errorf("PC = %04X, want 0202", c.PC)
	}
	if c.A != 0x7F {
		t.Errorf("A = %#x, want 0x7F", c.A)
	}
	if c.GetFlag(FlagZ) || c.GetFlag(FlagN) {
		t.Errorf("Z/N wrong for A=0x7F: PS=%02X", c.PS)
	}
}

func TestLDAAbsoluteZero(t *testing.T) {
	c, b := newTestCPU([]byte{0xAD, 0x00, 0x90}, 0x0200)
	b.mem[0x9000] = 0x00
	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 4 {
		t.Errorf("cycles = %d, want 4", cycles)
	}
	if c.A != 0 || !c.GetFlag(FlagZ) || c.GetFlag(FlagN) {
		t.Errorf("A=%#x PS=%02X", c.A, c.PS)
	}
}

func TestLDAIndirectIndexedPageCross(t *testing.T) {
	c, b := newTestCPU([]byte{0xB1, 0x80}, 0x0200) // LDA ($80),Y
	b.mem[0x80] = 0x01
	b.mem[0x81] = 0x90
	b.mem[0x9100] = 0x7F
	c.Y = 0xFF
	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 6 {
		t.Errorf("cycles = %d, want 6", cycles)
	}
	if c.A != 0x7F {
		t.Errorf("A = %#x, want 0x7F", c.A)
	}
}

func TestLDAAbsoluteXPageCross(t *testing.T) {
	c, b := newTestCPU([]byte{0xBD, 0x80, 0x44}, 0x0200) // LDA $4480,X
	c.X = 0xFF
	b.mem[0x457F] = 0xFF
	cycles, err := c.Step()
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 5 {
		t.Errorf("cycles = %d, want 5", cycles)
	}
	if c.A != 0xFF || !c.GetFlag(FlagN) {
		t.Errorf("A=%#x PS=%02X", c.A, c.PS)
	}
}

func TestLoadFlagsAcrossAllValues(t *testing.T) {
	type regCase struct {
		name   string
		opcode byte
		reg    func(c *CPU) byte
	}
	cases := []regCase{
		{"A", 0xA9, func(c *CPU) byte { return c.A }},
		{"X", 0xA2, func(c *CPU) byte { return c.X }},
		{"Y", 0xA0, func(c *CPU) byte { return c.Y }},
	}
	for _, rc := range cases {
		t.Run(rc.name, func(t *testing.T) {
			for v := 0; v <= 255; v++ {
				c, _ := newTestCPU([]byte{rc.opcode, byte(v)}, 0x0200)
				if _, err := c.Step(); err != nil {
					t.Fatalf("v=%d: %v", v, err)
				}
				got := rc.reg(c)
				if got != byte(v) {
					t.Fatalf("v=%d: register = %#x", v, got)
				}
				if c.GetFlag(FlagZ) != (v == 0) {
					t.Fatalf("v=%d: Z = %v", v, c.GetFlag(FlagZ))
				}
				if c.GetFlag(FlagN) != (v>>7 == 1) {
					t.Fatalf("v=%d: N = %v", v, c.GetFlag(FlagN))
				}
			}
		})
	}
}

func TestStackRoundTrip(t *testing.T) {
	for v := 0; v <= 255; v += 17 {
		c, _ := newTestCPU([]byte{0xA9, byte(v), 0x48, 0xA9, 0x00, 0x68}, 0x0200)
		spBefore := c.SP
		if _, err := c.Step(); err != nil { // LDA #v
			t.Fatal(err)
		}
		if _, err := c.Step(); err != nil { // PHA
			t.Fatal(err)
		}
		if _, err := c.Step(); err != nil { // LDA #0 clobbers A
			t.Fatal(err)
		}
		if _, err := c.Step(); err != nil { // PLA
			t.Fatal(err)
		}
		if c.A != byte(v) {
			t.Fatalf("v=%d: A after PLA = %#x", v, c.A)
		}
		if c.SP != spBefore {
			t.Fatalf("v=%d: SP = %#x, want %#x", v, c.SP, spBefore)
		}
	}
}

func TestADCDecimalMode(t *testing.T) {
	// SED; CLC; LDA #0x19; ADC #0x01 -> BCD 19 + 01 = 20
	c, _ := newTestCPU([]byte{0xF8, 0x18, 0xA9, 0x19, 0x69, 0x01}, 0x0200)
	for i := 0; i < 4; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.A != 0x20 {
		t.Errorf("A = %#x, want 0x20", c.A)
	}
	if c.GetFlag(FlagC) {
		t.Errorf("unexpected carry out")
	}
}

func TestADCDecimalCarry(t *testing.T) {
	// SED; CLC; LDA #0x99; ADC #0x01 -> 99+1 = 100 -> BCD 00, carry set
	c, _ := newTestCPU([]byte{0xF8, 0x18, 0xA9, 0x99, 0x69, 0x01}, 0x0200)
	for i := 0; i < 4; i++ {
		if _, err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if c.A != 0x00 {
		t.Errorf("A = %#x, want 0x00", c.A)
	}
	if !c.GetFlag(FlagC) {
		t.Errorf("expected carry out")
	}
	if !c.GetFlag(FlagZ) {
		t.Errorf("expected Z set for BCD result 0")
	}
}

func TestIndirectJMPPageWrapFixed(t *testing.T) {
	// JMP ($30FF) with pointer split across the page boundary: on NMOS the
	// high byte would be misread from $3000 instead of $3100; the 65C02
	// fixes this.
	c, b := newTestCPU([]byte{0x6C, 0xFF, 0x30}, 0x0200)
	b.mem[0x30FF] = 0x00
	b.mem[0x3100] = 0x40 // correct high byte
	b.mem[0x3000] = 0xFF // wrong (NMOS-buggy) high byte, must not be used
	if _, err := c.Step(); err != nil {
		t.Fatal(err)
	}
	if c.PC != 0x4000 {
		t.Errorf("PC = %04X, want 4000 (page-wrap bug must be fixed)", c.PC)
	}
}

func TestBranchTaken(t *testing.T) {
	c, _ := newTestCPU([]byte{0xA9, 0x00, 0xF0, 0x02, 0xA9, 0xFF, 0xA9, 0x11}, 0x0200)
	if _, err := c.Step(); err != nil { // LDA #0 -> sets Z
		t.Fatal(err)
	}
	cycles, err := c.Step() // BEQ +2, taken, no page cross
	if err != nil {
		t.Fatal(err)
	}
	if cycles != 3 {
		t.Errorf("cycles = %d, want 3", cycles)
	}
	if c.PC != 0x0206 {
		t.Errorf("PC = %04X, want 0206", c.PC)
	}
}

func TestStateMachineFaultOnUnmappedAccess(t *testing.T) {
	b := &faultingBus{}
	c := New(b)
	if err := c.Reset(0x0200); err != nil {
		t.Fatal(err)
	}
	b.mem[0x0200] = 0xAD // LDA abs, will fault on the operand fetch
	if _, err := c.Step(); err == nil {
		t.Fatal("expected fault")
	}
	if c.State != Faulted {
		t.Errorf("state = %v, want Faulted", c.State)
	}
}

type faultingBus struct {
	mem [65536]byte
}

func (f *faultingBus) Read(addr uint16) (byte, error) {
	if addr == 0x0201 {
		return 0, ErrUnmapped
	}
	return f.mem[addr], nil
}

func (f *faultingBus) Write(addr uint16, value byte) error {
	f.mem[addr] = value
	return nil
}
