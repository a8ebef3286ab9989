package cpu

// addrFunc resolves an addressing mode to an effective address, performing
// every bus access (including idle/dummy cycles) the real hardware would
// perform, in order, per spec.md §4.4. The cycle counter advances purely as
// a side effect of these reads — there is no separate base-cycle table.
type addrFunc func(c *CPU) (uint16, error)

// valueFunc resolves an addressing mode directly to an operand value,
// used by read-only instruction families (loads, logical ops, compares,
// arithmetic) so immediate mode never needs a synthetic address.
type valueFunc func(c *CPU) (byte, error)

func amImmediate(c *CPU) (byte, error) { return c.fetch() }

func amZeroPage(c *CPU) (uint16, error) {
	zp, err := c.fetch()
	return uint16(zp), err
}

func amZeroPageX(c *CPU) (uint16, error) {
	zp, err := c.fetch()
	if err != nil {
		return 0, err
	}
	c.idle()
	return uint16(byte(zp + c.X)), nil
}

func amZeroPageY(c *CPU) (uint16, error) {
	zp, err := c.fetch()
	if err != nil {
		return 0, err
	}
	c.idle()
	return uint16(byte(zp + c.Y)), nil
}

func amAbsolute(c *CPU) (uint16, error) {
	lo, err := c.fetch()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func amAbsoluteIndexed(indexReg Register, alwaysExtra bool) addrFunc {
	return func(c *CPU) (uint16, error) {
		lo, err := c.fetch()
		if err != nil {
			return 0, err
		}
		hi, err := c.fetch()
		if err != nil {
			return 0, err
		}
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(*regPtr(c, indexReg))
		crossed := base&0xFF00 != addr&0xFF00
		if crossed || alwaysExtra {
			dummy := (base & 0xFF00) | (addr & 0x00FF)
			if _, err := c.readByte(dummy); err != nil {
				return 0, err
			}
		}
		return addr, nil
	}
}

// read16ZP reads a 16-bit pointer from zero page with wraparound confined
// to the zero page, per spec.md §4.4: low byte at zp, high byte at
// (zp+1) mod 256.
func (c *CPU) read16ZP(zp byte) (uint16, error) {
	lo, err := c.readByte(uint16(zp))
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(uint16(byte(zp + 1)))
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func amIndirectX(c *CPU) (uint16, error) {
	zp, err := c.fetch()
	if err != nil {
		return 0, err
	}
	c.idle()
	return c.read16ZP(byte(zp + c.X))
}

func amIndirectIndexedY(alwaysExtra bool) addrFunc {
	return func(c *CPU) (uint16, error) {
		zp, err := c.fetch()
		if err != nil {
			return 0, err
		}
		base, err := c.read16ZP(zp)
		if err != nil {
			return 0, err
		}
		addr := base + uint16(c.Y)
		crossed := base&0xFF00 != addr&0xFF00
		if crossed || alwaysExtra {
			dummy := (base & 0xFF00) | (addr & 0x00FF)
			if _, err := c.readByte(dummy); err != nil {
				return 0, err
			}
		}
		return addr, nil
	}
}

// amZPIndirect is the 65C02-added (zp) mode: no index, one fewer cycle
// than (Indirect,X) since there is no index addition to pad for.
func amZPIndirect(c *CPU) (uint16, error) {
	zp, err := c.fetch()
	if err != nil {
		return 0, err
	}
	return c.read16ZP(zp)
}

func amRelative(c *CPU) (int8, error) {
	off, err := c.fetch()
	return int8(off), err
}

// readVal turns an addrFunc into a valueFunc: resolve the address, then
// read the byte there. Used by instruction families that only need the
// operand, not the address itself (AND, CMP, ADC, ...).
func readVal(af addrFunc) valueFunc {
	return func(c *CPU) (byte, error) {
		addr, err := af(c)
		if err != nil {
			return 0, err
		}
		return c.readByte(addr)
	}
}

// amAbsoluteIndirect resolves the operand of JMP (abs): a 16-bit pointer
// fetched from an absolute address, with the classic NMOS page-wrap bug
// fixed per spec.md §4.4 — the high-byte fetch correctly carries into the
// next page rather than wrapping within the low page.
func amAbsoluteIndirect(c *CPU) (uint16, error) {
	ptr, err := amAbsolute(c)
	if err != nil {
		return 0, err
	}
	lo, err := c.readByte(ptr)
	if err != nil {
		return 0, err
	}
	hi, err := c.readByte(ptr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// amAbsoluteIndirectX resolves JMP (abs,X), a 65C02 addition: the pointer
// address is indexed by X before the 16-bit pointer is read.
func amAbsoluteIndirectX(c *CPU) (uint16, error) {
	lo, err := c.fetch()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch()
	if err != nil {
		return 0, err
	}
	c.idle()
	base := uint16(hi)<<8 | uint16(lo)
	ptr := base + uint16(c.X)
	pLo, err := c.readByte(ptr)
	if err != nil {
		return 0, err
	}
	pHi, err := c.readByte(ptr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(pHi)<<8 | uint16(pLo), nil
}
