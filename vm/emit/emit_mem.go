package emit

import (
	"fmt"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

// emitLoad picks one of four addressing modes - plain base register,
// base+16-bit offset, base+offset+scaled index (_ROFF), or absolute
// global address (_G) - and, for 8/16-bit loads with no index, folds
// a following zext/sext-to-i32 cast into the opcode when FusedCast is
// set (vm/exec defines no fused-cast _ROFF or _G variant).
func (c *ctx) emitLoad(inst ir.Instruction) error {
	p := inst.Load
	dst := uint16(ir.RegOffset(inst.Ret))
	width := p.Pointee.Width()

	if p.Ptr.Class() == ir.ClassGlobalVar {
		code, ok := loadGlobalOp(width)
		if !ok {
			return fmt.Errorf("load: unsupported global width %d", width)
		}
		lo, hi := split32(ir.FunctionAddr(p.Ptr))
		_, err := c.enc.EmitOp3(code, dst, lo, hi)
		return err
	}

	base := uint16(ir.RegOffset(p.Ptr))

	if p.Index != nil {
		code, ok := loadROffOp(width)
		if !ok {
			return fmt.Errorf("load: unsupported indexed width %d", width)
		}
		idx := uint16(ir.RegOffset(p.Index))
		_, err := c.enc.EmitOpN(code, dst, base, uint16(p.Offset), idx, uint16(p.Scale))
		return err
	}

	if p.HasOffset {
		code, ok := loadOffOp(width, p.FusedCast)
		if !ok {
			return fmt.Errorf("load: unsupported offset/cast combination at width %d", width)
		}
		_, err := c.enc.EmitOp3(code, dst, base, uint16(p.Offset))
		return err
	}

	code, ok := loadBaseOp(width, p.FusedCast)
	if !ok {
		return fmt.Errorf("load: unsupported base/cast combination at width %d", width)
	}
	_, err := c.enc.EmitOp2(code, dst, base)
	return err
}

func loadGlobalOp(width int) (op.Op, bool) {
	switch width {
	case 8:
		return op.LOAD8_G, true
	case 16:
		return op.LOAD16_G, true
	case 32:
		return op.LOAD32_G, true
	case 64:
		return op.LOAD64_G, true
	}
	return 0, false
}

func loadROffOp(width int) (op.Op, bool) {
	switch width {
	case 8:
		return op.LOAD8_ROFF, true
	case 16:
		return op.LOAD16_ROFF, true
	case 32:
		return op.LOAD32_ROFF, true
	case 64:
		return op.LOAD64_ROFF, true
	}
	return 0, false
}

func loadOffOp(width int, cast *ir.CastOp) (op.Op, bool) {
	if cast == nil {
		switch width {
		case 8:
			return op.LOAD8_OFF, true
		case 16:
			return op.LOAD16_OFF, true
		case 32:
			return op.LOAD32_OFF, true
		case 64:
			return op.LOAD64_OFF, true
		}
		return 0, false
	}
	if width != 8 && width != 16 {
		return 0, false
	}
	zext := *cast == ir.CastZExt
	switch {
	case width == 8 && zext:
		return op.LOAD8_OFF_ZEXT_32, true
	case width == 8 && !zext:
		return op.LOAD8_OFF_SEXT_32, true
	case width == 16 && zext:
		return op.LOAD16_OFF_ZEXT_32, true
	default:
		return op.LOAD16_OFF_SEXT_32, true
	}
}

func loadBaseOp(width int, cast *ir.CastOp) (op.Op, bool) {
	if cast == nil {
		switch width {
		case 8:
			return op.LOAD8, true
		case 16:
			return op.LOAD16, true
		case 32:
			return op.LOAD32, true
		case 64:
			return op.LOAD64, true
		}
		return 0, false
	}
	if width != 8 && width != 16 {
		return 0, false
	}
	zext := *cast == ir.CastZExt
	switch {
	case width == 8 && zext:
		return op.LOAD8_ZEXT_32, true
	case width == 8 && !zext:
		return op.LOAD8_SEXT_32, true
	case width == 16 && zext:
		return op.LOAD16_ZEXT_32, true
	default:
		return op.LOAD16_SEXT_32, true
	}
}

// emitStore picks plain/_OFF/_G; there is no indexed (_ROFF) store
// form, and the only constant-value variant is _C_OFF (no const-to-
// global store opcode exists, so a constant stored through a global
// pointer must first be materialised into a register by an earlier
// move - an emitter-level restriction, not handled here).
func (c *ctx) emitStore(inst ir.Instruction) error {
	p := inst.Store
	width := p.Value.Type().Width()
	valConst := p.Value.Class() == ir.ClassConstant

	if p.Ptr.Class() == ir.ClassGlobalVar {
		if valConst {
			return fmt.Errorf("store: no global-address opcode accepts a constant value at width %d", width)
		}
		code, ok := storeGlobalOp(width)
		if !ok {
			return fmt.Errorf("store: unsupported global width %d", width)
		}
		lo, hi := split32(ir.FunctionAddr(p.Ptr))
		_, err := c.enc.EmitOp3(code, uint16(ir.RegOffset(p.Value)), lo, hi)
		return err
	}

	base := uint16(ir.RegOffset(p.Ptr))

	if p.HasOffset {
		if valConst {
			code, ok := storeConstOffOp(width)
			if !ok {
				return fmt.Errorf("store: unsupported const-offset width %d", width)
			}
			return c.emitStoreConstOff(code, width, base, p.Offset, p.Value)
		}
		code, ok := storeOffOp(width)
		if !ok {
			return fmt.Errorf("store: unsupported offset width %d", width)
		}
		// Register-value offset stores order their operands
		// base,value,offset; the const-value form (above) orders
		// them base,offset,const instead - vm/exec reads each this
		// way, not symmetrically.
		_, err := c.enc.EmitOp3(code, base, uint16(ir.RegOffset(p.Value)), uint16(p.Offset))
		return err
	}

	if valConst {
		return fmt.Errorf("store: no plain-base opcode accepts a constant value at width %d", width)
	}
	code, ok := storeBaseOp(width)
	if !ok {
		return fmt.Errorf("store: unsupported width %d", width)
	}
	_, err := c.enc.EmitOp2(code, base, uint16(ir.RegOffset(p.Value)))
	return err
}

func (c *ctx) emitStoreConstOff(code op.Op, width int, base uint16, offset int16, v ir.Value) error {
	switch width {
	case 8:
		_, err := c.enc.EmitOp3(code, base, uint16(offset), uint16(ir.Const32(v)))
		return err
	case 16:
		_, err := c.enc.EmitOp3(code, base, uint16(offset), uint16(ir.Const32(v)))
		return err
	case 32:
		lo, hi := split32(ir.Const32(v))
		_, err := c.enc.EmitOp4(code, base, uint16(offset), lo, hi)
		return err
	case 64:
		w := split64(ir.Const64(v))
		_, err := c.enc.EmitOpN(code, base, uint16(offset), w[0], w[1], w[2], w[3])
		return err
	}
	return fmt.Errorf("store: unsupported const-offset width %d", width)
}

func storeGlobalOp(width int) (op.Op, bool) {
	switch width {
	case 8:
		return op.STORE8_G, true
	case 16:
		return op.STORE16_G, true
	case 32:
		return op.STORE32_G, true
	case 64:
		return op.STORE64_G, true
	}
	return 0, false
}

func storeOffOp(width int) (op.Op, bool) {
	switch width {
	case 8:
		return op.STORE8_OFF, true
	case 16:
		return op.STORE16_OFF, true
	case 32:
		return op.STORE32_OFF, true
	case 64:
		return op.STORE64_OFF, true
	}
	return 0, false
}

func storeConstOffOp(width int) (op.Op, bool) {
	switch width {
	case 8:
		return op.STORE8_C_OFF, true
	case 16:
		return op.STORE16_C_OFF, true
	case 32:
		return op.STORE32_C_OFF, true
	case 64:
		return op.STORE64_C_OFF, true
	}
	return 0, false
}

func storeBaseOp(width int) (op.Op, bool) {
	switch width {
	case 8:
		return op.STORE8, true
	case 16:
		return op.STORE16, true
	case 32:
		return op.STORE32, true
	case 64:
		return op.STORE64, true
	}
	return 0, false
}

// emitLea lowers address computation: a plain power-of-two shift
// (SHL, or the fixed shift=2 specialisation SHL2 for word-sized
// indexing), an offset SHL form, or a non-power-of-two scale (MUL_OFF).
func (c *ctx) emitLea(inst ir.Instruction) error {
	p := inst.Lea
	dst := uint16(ir.RegOffset(inst.Ret))
	base := uint16(ir.RegOffset(p.Base))

	if p.Index == nil {
		return fmt.Errorf("lea: Index is required")
	}
	idx := uint16(ir.RegOffset(p.Index))

	shift, isPow2 := log2Pow2(uint32(p.Mul))
	switch {
	case isPow2 && p.Imm == 0 && shift == 2:
		_, err := c.enc.EmitOp3(op.LEA_R32_SHL2, dst, base, idx)
		return err
	case isPow2 && p.Imm == 0:
		_, err := c.enc.EmitOp4(op.LEA_R32_SHL, dst, base, idx, uint16(shift))
		return err
	case isPow2:
		lo, hi := split32(uint32(p.Imm))
		_, err := c.enc.EmitOpN(op.LEA_R32_SHL_OFF, dst, base, idx, uint16(shift), lo, hi)
		return err
	default:
		slo, shi := split32(uint32(p.Mul))
		olo, ohi := split32(uint32(p.Imm))
		_, err := c.enc.EmitOpN(op.LEA_R32_MUL_OFF, dst, base, idx, slo, shi, olo, ohi)
		return err
	}
}

// log2Pow2 reports whether v is a power of two, returning its shift
// amount.
func log2Pow2(v uint32) (uint32, bool) {
	if v == 0 || v&(v-1) != 0 {
		return 0, false
	}
	shift := uint32(0)
	for v > 1 {
		v >>= 1
		shift++
	}
	return shift, true
}
