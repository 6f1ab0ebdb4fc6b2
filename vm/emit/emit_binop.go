package emit

import (
	"fmt"
	"math"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

// accOffset mirrors exec.AccOffset; duplicated here rather than
// imported so package vm/emit has no dependency on vm/exec (the
// emitter only needs to know the one reserved offset, not the
// runtime's register-access machinery).
const accOffset = 8

func isAcc(v ir.Value) bool {
	return v.Class() == ir.ClassRegFrame && ir.RegOffset(v) == accOffset
}

// emitBinop lowers a BinopPayload, picking the width family (8/16/32/64),
// the register/immediate rhs form, and - at width 32 only - the
// accumulator specialisations the opcode table reserves for when the
// lhs operand is already ACC: ADD_ACC_R32 (dst general, lhs=ACC) and
// ADD_2ACC_R32 (dst=ACC, lhs=ACC, register rhs only; immediate rhs
// with both dst and lhs pinned to ACC falls back to the plain ACC_R32C
// form, which still addresses ACC explicitly as dst).
func (c *ctx) emitBinop(inst ir.Instruction) error {
	p := inst.Binop
	width := p.Typ.Width()
	dst := uint16(ir.RegOffset(inst.Ret))

	if p.Typ.IsFloat() {
		return c.emitFloatBinop(inst)
	}

	idx, ok := binopIndex(p.Op)
	if !ok {
		return fmt.Errorf("binop: unsupported operator %d", p.Op)
	}

	rhsConst := p.Rhs.Class() == ir.ClassConstant

	switch width {
	case 8:
		lhs := uint16(ir.RegOffset(p.Lhs))
		if rhsConst {
			_, err := c.enc.EmitOp3(op.ADD_R8C+op.Op(idx), dst, lhs, uint16(ir.Const32(p.Rhs)))
			return err
		}
		_, err := c.enc.EmitOp3(op.ADD_R8+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err

	case 16:
		lhs := uint16(ir.RegOffset(p.Lhs))
		if rhsConst {
			_, err := c.enc.EmitOp3(op.ADD_R16C+op.Op(idx), dst, lhs, uint16(ir.Const32(p.Rhs)))
			return err
		}
		_, err := c.enc.EmitOp3(op.ADD_R16+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err

	case 32:
		return c.emitBinop32(inst, idx, dst, rhsConst)

	case 64:
		lhs := uint16(ir.RegOffset(p.Lhs))
		if rhsConst {
			w := split64(ir.Const64(p.Rhs))
			_, err := c.enc.EmitOpN(op.ADD_R64C+op.Op(idx), dst, lhs, w[0], w[1], w[2], w[3])
			return err
		}
		_, err := c.enc.EmitOp3(op.ADD_R64+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err
	}
	return fmt.Errorf("binop: unsupported width %d", width)
}

func (c *ctx) emitBinop32(inst ir.Instruction, idx int, dst uint16, rhsConst bool) error {
	p := inst.Binop

	// INC/DEC folding: dst = lhs +/- 1, immediate rhs, no ACC
	// involvement either side.
	if rhsConst && width32FoldsToIncDec(p) {
		src := uint16(ir.RegOffset(p.Lhs))
		if p.Op == ir.OpAdd {
			_, err := c.enc.EmitOp2(op.INC_R32, dst, src)
			return err
		}
		_, err := c.enc.EmitOp2(op.DEC_R32, dst, src)
		return err
	}

	lhsAcc := isAcc(p.Lhs)
	if !lhsAcc {
		lhs := uint16(ir.RegOffset(p.Lhs))
		if rhsConst {
			lo, hi := split32(ir.Const32(p.Rhs))
			_, err := c.enc.EmitOp4(op.ADD_R32C+op.Op(idx), dst, lhs, lo, hi)
			return err
		}
		_, err := c.enc.EmitOp3(op.ADD_R32+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err
	}

	dstAcc := isAcc(inst.Ret)
	rhsIsReg := p.Rhs.Class() == ir.ClassRegFrame
	if dstAcc && rhsIsReg {
		rhs := uint16(ir.RegOffset(p.Rhs))
		_, err := c.enc.EmitOp1(op.ADD_2ACC_R32+op.Op(idx), rhs)
		return err
	}
	if rhsConst {
		lo, hi := split32(ir.Const32(p.Rhs))
		_, err := c.enc.EmitOp3(op.ADD_ACC_R32C+op.Op(idx), dst, lo, hi)
		return err
	}
	_, err := c.enc.EmitOp2(op.ADD_ACC_R32+op.Op(idx), dst, uint16(ir.RegOffset(p.Rhs)))
	return err
}

// width32FoldsToIncDec reports whether a width-32 binop is exactly
// "+1"/"-1" against a plain (non-ACC) register, the one case the
// opcode table folds into a dedicated single-operand opcode.
func width32FoldsToIncDec(p ir.BinopPayload) bool {
	if isAcc(p.Lhs) || p.Rhs.Class() != ir.ClassConstant {
		return false
	}
	if p.Op != ir.OpAdd && p.Op != ir.OpSub {
		return false
	}
	return ir.Const32(p.Rhs) == 1
}

// binopIndex maps an ir.BinOp to its position within every R8/R16/R32/
// R64 (and *C) opcode block; the blocks are laid out in exactly this
// order so one index serves all four widths.
func binopIndex(o ir.BinOp) (int, bool) {
	switch o {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpUDiv, ir.OpSDiv, ir.OpURem,
		ir.OpSRem, ir.OpShl, ir.OpLShr, ir.OpAShr, ir.OpAnd, ir.OpOr, ir.OpXor:
		return int(o), true
	}
	return 0, false
}

// floatBinopIndex maps the subset of BinOp meaningful for float/double
// operands (add, sub, mul, and one division op standing in for the
// type's only divide) to ADD_FLT/DBL's 4-wide opcode block order.
func floatBinopIndex(o ir.BinOp) (int, bool) {
	switch o {
	case ir.OpAdd:
		return 0, true
	case ir.OpSub:
		return 1, true
	case ir.OpMul:
		return 2, true
	case ir.OpSDiv, ir.OpUDiv:
		return 3, true
	}
	return 0, false
}

func (c *ctx) emitFloatBinop(inst ir.Instruction) error {
	p := inst.Binop
	idx, ok := floatBinopIndex(p.Op)
	if !ok {
		return fmt.Errorf("binop: operator %d has no floating-point form", p.Op)
	}
	dst := uint16(ir.RegOffset(inst.Ret))
	lhs := uint16(ir.RegOffset(p.Lhs))
	rhsConst := p.Rhs.Class() == ir.ClassConstant

	switch p.Typ.Bits {
	case 32:
		if rhsConst {
			lo, hi := split32(uint32(float32bits(p.Rhs)))
			_, err := c.enc.EmitOp4(op.ADD_FLTC+op.Op(idx), dst, lhs, lo, hi)
			return err
		}
		_, err := c.enc.EmitOp3(op.ADD_FLT+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err
	case 64:
		if rhsConst {
			w := split64(doublebits(p.Rhs))
			_, err := c.enc.EmitOpN(op.ADD_DBLC+op.Op(idx), dst, lhs, w[0], w[1], w[2], w[3])
			return err
		}
		_, err := c.enc.EmitOp3(op.ADD_DBL+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err
	}
	return fmt.Errorf("binop: unsupported float width %d", p.Typ.Bits)
}

func float32bits(v ir.Value) uint32 {
	return math.Float32bits(float32(v.(ir.Const).Float64))
}

func doublebits(v ir.Value) uint64 {
	return math.Float64bits(v.(ir.Const).Float64)
}

// emitMla lowers dst = a*b + c, int32 only, a single fixed-shape
// opcode with no immediate form.
func (c *ctx) emitMla(inst ir.Instruction) error {
	m := inst.Mla
	dst := uint16(ir.RegOffset(inst.Ret))
	a := uint16(ir.RegOffset(m.A))
	b := uint16(ir.RegOffset(m.B))
	cc := uint16(ir.RegOffset(m.C))
	_, err := c.enc.EmitOp4(op.MLA32, dst, a, b, cc)
	return err
}
