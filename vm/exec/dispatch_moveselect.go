package exec

import op "ssavm/vm/opcode"

// execMoveSelect handles plain register moves, immediate loads, and
// the four-shape select family (condition register, then true/false
// operands each independently register- or immediate-typed).
func execMoveSelect(code op.Op, c cursor, f Frame) (int, bool) {
	switch code {
	case op.MOV8:
		f.PutU8(c.regOff(0), f.U8(c.regOff(1)))
		return c.next(2), true
	case op.MOV32:
		f.PutU32(c.regOff(0), f.U32(c.regOff(1)))
		return c.next(2), true
	case op.MOV64:
		f.PutU64(c.regOff(0), f.U64(c.regOff(1)))
		return c.next(2), true
	case op.MOV8_C:
		f.PutU8(c.regOff(0), c.u8(1))
		return c.next(2), true
	case op.MOV16_C:
		f.PutU16(c.regOff(0), c.u16(1))
		return c.next(2), true
	case op.MOV32_C:
		f.PutU32(c.regOff(0), c.u32(1))
		return c.next(3), true
	case op.MOV64_C:
		f.PutU64(c.regOff(0), c.u64(1))
		return c.next(5), true

	case op.SELECT8_RR:
		cond := f.U32(c.regOff(1)) != 0
		v := selU8(cond, f.U8(c.regOff(2)), f.U8(c.regOff(3)))
		f.PutU8(c.regOff(0), v)
		return c.next(4), true
	case op.SELECT8_RC:
		cond := f.U32(c.regOff(1)) != 0
		v := selU8(cond, f.U8(c.regOff(2)), c.u8(3))
		f.PutU8(c.regOff(0), v)
		return c.next(4), true
	case op.SELECT8_CR:
		cond := f.U32(c.regOff(1)) != 0
		v := selU8(cond, c.u8(3), f.U8(c.regOff(2)))
		f.PutU8(c.regOff(0), v)
		return c.next(4), true
	case op.SELECT8_CC:
		cond := f.U32(c.regOff(1)) != 0
		v := selU8(cond, c.u8(2), c.u8(3))
		f.PutU8(c.regOff(0), v)
		return c.next(4), true

	case op.SELECT16_RR:
		cond := f.U32(c.regOff(1)) != 0
		v := selU16(cond, f.U16(c.regOff(2)), f.U16(c.regOff(3)))
		f.PutU16(c.regOff(0), v)
		return c.next(4), true
	case op.SELECT16_RC:
		cond := f.U32(c.regOff(1)) != 0
		v := selU16(cond, f.U16(c.regOff(2)), c.u16(3))
		f.PutU16(c.regOff(0), v)
		return c.next(4), true
	case op.SELECT16_CR:
		cond := f.U32(c.regOff(1)) != 0
		v := selU16(cond, c.u16(3), f.U16(c.regOff(2)))
		f.PutU16(c.regOff(0), v)
		return c.next(4), true
	case op.SELECT16_CC:
		cond := f.U32(c.regOff(1)) != 0
		v := selU16(cond, c.u16(2), c.u16(3))
		f.PutU16(c.regOff(0), v)
		return c.next(4), true

	case op.SELECT32_RR:
		cond := f.U32(c.regOff(1)) != 0
		v := selU32(cond, f.U32(c.regOff(2)), f.U32(c.regOff(3)))
		f.PutU32(c.regOff(0), v)
		return c.next(4), true
	case op.SELECT32_RC:
		cond := f.U32(c.regOff(1)) != 0
		v := selU32(cond, f.U32(c.regOff(2)), c.u32(3))
		f.PutU32(c.regOff(0), v)
		return c.next(5), true
	case op.SELECT32_CR:
		cond := f.U32(c.regOff(1)) != 0
		v := selU32(cond, c.u32(3), f.U32(c.regOff(2)))
		f.PutU32(c.regOff(0), v)
		return c.next(5), true
	case op.SELECT32_CC:
		cond := f.U32(c.regOff(1)) != 0
		v := selU32(cond, c.u32(2), c.u32(4))
		f.PutU32(c.regOff(0), v)
		return c.next(6), true

	case op.SELECT64_RR:
		cond := f.U32(c.regOff(1)) != 0
		v := selU64(cond, f.U64(c.regOff(2)), f.U64(c.regOff(3)))
		f.PutU64(c.regOff(0), v)
		return c.next(4), true
	case op.SELECT64_RC:
		cond := f.U32(c.regOff(1)) != 0
		v := selU64(cond, f.U64(c.regOff(2)), c.u64(3))
		f.PutU64(c.regOff(0), v)
		return c.next(7), true
	case op.SELECT64_CR:
		cond := f.U32(c.regOff(1)) != 0
		v := selU64(cond, c.u64(3), f.U64(c.regOff(2)))
		f.PutU64(c.regOff(0), v)
		return c.next(7), true
	case op.SELECT64_CC:
		cond := f.U32(c.regOff(1)) != 0
		v := selU64(cond, c.u64(2), c.u64(6))
		f.PutU64(c.regOff(0), v)
		return c.next(10), true
	}
	return 0, false
}

func selU8(cond bool, t, e uint8) uint8 {
	if cond {
		return t
	}
	return e
}

func selU16(cond bool, t, e uint16) uint16 {
	if cond {
		return t
	}
	return e
}

func selU32(cond bool, t, e uint32) uint32 {
	if cond {
		return t
	}
	return e
}

func selU64(cond bool, t, e uint64) uint64 {
	if cond {
		return t
	}
	return e
}
