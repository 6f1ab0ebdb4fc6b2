package exec

import op "ssavm/vm/opcode"

// execMem handles loads, stores, and address computation. Addressing
// modes mirror the base/_OFF/_ROFF/_G family read from the original's
// LOAD/STORE bodies: base register, base+16-bit immediate offset,
// base+offset+scaled index register, and absolute global address.
func execMem(code op.Op, c cursor, f Frame) (int, bool) {
	switch code {

	// --- 8-bit loads ---
	case op.LOAD8:
		f.PutU32(c.regOff(0), uint32(m0u8(f, f.U32(c.regOff(1)))))
		return c.next(2), true
	case op.LOAD8_G:
		f.PutU32(c.regOff(0), uint32(m0u8(f, c.u32(1))))
		return c.next(3), true
	case op.LOAD8_OFF:
		ea := uint32(int32(f.U32(c.regOff(1))) + int32(c.disp(2)))
		f.PutU32(c.regOff(0), uint32(m0u8(f, ea)))
		return c.next(3), true
	case op.LOAD8_ROFF:
		ea := ropOff(f, c, 1)
		f.PutU32(c.regOff(0), uint32(m0u8(f, ea)))
		return c.next(5), true
	case op.LOAD8_ZEXT_32:
		f.PutU32(c.regOff(0), uint32(m0u8(f, f.U32(c.regOff(1)))))
		return c.next(2), true
	case op.LOAD8_SEXT_32:
		f.PutS32(c.regOff(0), int32(int8(m0u8(f, f.U32(c.regOff(1))))))
		return c.next(2), true
	case op.LOAD8_OFF_ZEXT_32:
		ea := uint32(int32(f.U32(c.regOff(1))) + int32(c.disp(2)))
		f.PutU32(c.regOff(0), uint32(m0u8(f, ea)))
		return c.next(3), true
	case op.LOAD8_OFF_SEXT_32:
		ea := uint32(int32(f.U32(c.regOff(1))) + int32(c.disp(2)))
		f.PutS32(c.regOff(0), int32(int8(m0u8(f, ea))))
		return c.next(3), true

	// --- 8-bit stores ---
	case op.STORE8:
		m0putU8(f, f.U32(c.regOff(0)), f.U8(c.regOff(1)))
		return c.next(2), true
	case op.STORE8_OFF:
		ea := uint32(int32(f.U32(c.regOff(0))) + int32(c.disp(2)))
		m0putU8(f, ea, f.U8(c.regOff(1)))
		return c.next(3), true
	case op.STORE8_C_OFF:
		ea := uint32(int32(f.U32(c.regOff(0))) + int32(c.disp(1)))
		m0putU8(f, ea, c.u8(2))
		return c.next(3), true
	case op.STORE8_G:
		m0putU8(f, c.u32(1), f.U8(c.regOff(0)))
		return c.next(3), true

	// --- 16-bit loads ---
	case op.LOAD16:
		f.PutU32(c.regOff(0), uint32(m0u16(f, f.U32(c.regOff(1)))))
		return c.next(2), true
	case op.LOAD16_G:
		f.PutU32(c.regOff(0), uint32(m0u16(f, c.u32(1))))
		return c.next(3), true
	case op.LOAD16_OFF:
		ea := uint32(int32(f.U32(c.regOff(1))) + int32(c.disp(2)))
		f.PutU32(c.regOff(0), uint32(m0u16(f, ea)))
		return c.next(3), true
	case op.LOAD16_ROFF:
		ea := ropOff(f, c, 1)
		f.PutU32(c.regOff(0), uint32(m0u16(f, ea)))
		return c.next(5), true
	case op.LOAD16_ZEXT_32:
		f.PutU32(c.regOff(0), uint32(m0u16(f, f.U32(c.regOff(1)))))
		return c.next(2), true
	case op.LOAD16_SEXT_32:
		f.PutS32(c.regOff(0), int32(int16(m0u16(f, f.U32(c.regOff(1))))))
		return c.next(2), true
	case op.LOAD16_OFF_ZEXT_32:
		ea := uint32(int32(f.U32(c.regOff(1))) + int32(c.disp(2)))
		f.PutU32(c.regOff(0), uint32(m0u16(f, ea)))
		return c.next(3), true
	case op.LOAD16_OFF_SEXT_32:
		ea := uint32(int32(f.U32(c.regOff(1))) + int32(c.disp(2)))
		f.PutS32(c.regOff(0), int32(int16(m0u16(f, ea))))
		return c.next(3), true

	// --- 16-bit stores ---
	case op.STORE16:
		m0putU16(f, f.U32(c.regOff(0)), f.U16(c.regOff(1)))
		return c.next(2), true
	case op.STORE16_OFF:
		ea := uint32(int32(f.U32(c.regOff(0))) + int32(c.disp(2)))
		m0putU16(f, ea, f.U16(c.regOff(1)))
		return c.next(3), true
	case op.STORE16_C_OFF:
		ea := uint32(int32(f.U32(c.regOff(0))) + int32(c.disp(1)))
		m0putU16(f, ea, c.u16(2))
		return c.next(3), true
	case op.STORE16_G:
		m0putU16(f, c.u32(1), f.U16(c.regOff(0)))
		return c.next(3), true

	// --- 32-bit loads/stores ---
	case op.LOAD32:
		f.PutU32(c.regOff(0), m0u32(f, f.U32(c.regOff(1))))
		return c.next(2), true
	case op.LOAD32_G:
		f.PutU32(c.regOff(0), m0u32(f, c.u32(1)))
		return c.next(3), true
	case op.LOAD32_OFF:
		ea := uint32(int32(f.U32(c.regOff(1))) + int32(c.disp(2)))
		f.PutU32(c.regOff(0), m0u32(f, ea))
		return c.next(3), true
	case op.LOAD32_ROFF:
		ea := ropOff(f, c, 1)
		f.PutU32(c.regOff(0), m0u32(f, ea))
		return c.next(5), true
	case op.STORE32:
		m0putU32(f, f.U32(c.regOff(0)), f.U32(c.regOff(1)))
		return c.next(2), true
	case op.STORE32_OFF:
		ea := uint32(int32(f.U32(c.regOff(0))) + int32(c.disp(2)))
		m0putU32(f, ea, f.U32(c.regOff(1)))
		return c.next(3), true
	case op.STORE32_C_OFF:
		ea := uint32(int32(f.U32(c.regOff(0))) + int32(c.disp(1)))
		m0putU32(f, ea, c.u32(2))
		return c.next(4), true
	case op.STORE32_G:
		m0putU32(f, c.u32(1), f.U32(c.regOff(0)))
		return c.next(3), true

	// --- 64-bit loads/stores ---
	case op.LOAD64:
		f.PutU64(c.regOff(0), m0u64(f, f.U32(c.regOff(1))))
		return c.next(2), true
	case op.LOAD64_G:
		f.PutU64(c.regOff(0), m0u64(f, c.u32(1)))
		return c.next(3), true
	case op.LOAD64_OFF:
		ea := uint32(int32(f.U32(c.regOff(1))) + int32(c.disp(2)))
		f.PutU64(c.regOff(0), m0u64(f, ea))
		return c.next(3), true
	case op.LOAD64_ROFF:
		ea := ropOff(f, c, 1)
		f.PutU64(c.regOff(0), m0u64(f, ea))
		return c.next(5), true
	case op.STORE64:
		m0putU64(f, f.U32(c.regOff(0)), f.U64(c.regOff(1)))
		return c.next(2), true
	case op.STORE64_OFF:
		ea := uint32(int32(f.U32(c.regOff(0))) + int32(c.disp(2)))
		m0putU64(f, ea, f.U64(c.regOff(1)))
		return c.next(3), true
	case op.STORE64_C_OFF:
		ea := uint32(int32(f.U32(c.regOff(0))) + int32(c.disp(1)))
		m0putU64(f, ea, c.u64(2))
		return c.next(6), true
	case op.STORE64_G:
		m0putU64(f, c.u32(1), f.U64(c.regOff(0)))
		return c.next(3), true

	// --- address computation ---
	case op.LEA_R32_SHL:
		base := f.U32(c.regOff(1))
		idx := f.U32(c.regOff(2))
		shift := c.slot(3)
		f.PutU32(c.regOff(0), base+(idx<<shift))
		return c.next(4), true
	case op.LEA_R32_SHL2:
		base := f.U32(c.regOff(1))
		idx := f.U32(c.regOff(2))
		f.PutU32(c.regOff(0), base+(idx<<2))
		return c.next(3), true
	case op.LEA_R32_SHL_OFF:
		base := f.U32(c.regOff(1))
		idx := f.U32(c.regOff(2))
		shift := c.slot(3)
		off := c.s32(4)
		f.PutU32(c.regOff(0), uint32(int32(base+(idx<<shift))+off))
		return c.next(6), true
	case op.LEA_R32_MUL_OFF:
		base := f.U32(c.regOff(1))
		idx := f.U32(c.regOff(2))
		scale := c.u32(3)
		off := c.s32(5)
		f.PutU32(c.regOff(0), uint32(int32(base+idx*scale)+off))
		return c.next(7), true
	}
	return 0, false
}

// ropOff computes the base+offset+index*scale effective address shared
// by every *_ROFF load variant: base reg at slot i, 16-bit signed
// offset at slot i+1, index reg at slot i+2, 16-bit signed scale at
// slot i+3.
func ropOff(f Frame, c cursor, i int) uint32 {
	base := int32(f.U32(c.regOff(i)))
	off := int32(c.disp(i + 1))
	idx := int32(f.U32(c.regOff(i + 2)))
	scale := int32(c.disp(i + 3))
	return uint32(base + off + idx*scale)
}

// absFrame views guest memory at a full 32-bit absolute address rather
// than a frame-relative signed 16-bit offset - every LOAD/STORE
// effective address is computed this way once base+offset+index
// arithmetic is folded together.
func absFrame(f Frame, addr uint32) Frame { return Frame{Mem: f.Mem, RF: int32(addr)} }

func m0u8(f Frame, addr uint32) uint8   { return absFrame(f, addr).U8(0) }
func m0u16(f Frame, addr uint32) uint16 { return absFrame(f, addr).U16(0) }
func m0u32(f Frame, addr uint32) uint32 { return absFrame(f, addr).U32(0) }
func m0u64(f Frame, addr uint32) uint64 { return absFrame(f, addr).U64(0) }

func m0putU8(f Frame, addr uint32, v uint8)   { absFrame(f, addr).PutU8(0, v) }
func m0putU16(f Frame, addr uint32, v uint16) { absFrame(f, addr).PutU16(0, v) }
func m0putU32(f Frame, addr uint32, v uint32) { absFrame(f, addr).PutU32(0, v) }
func m0putU64(f Frame, addr uint32, v uint64) { absFrame(f, addr).PutU64(0, v) }
