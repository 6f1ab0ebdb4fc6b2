package emit

import (
	"fmt"
	"math"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

// intPredIndex maps the ten integer predicates to their position
// within every EQ8..SLE8 (and 16/32/64, *C) opcode block; the ir.Pred
// enum is declared in exactly this order so one index serves every
// width.
func intPredIndex(p ir.Pred) (int, bool) {
	switch p {
	case ir.PredEQ, ir.PredNE, ir.PredUGT, ir.PredUGE, ir.PredULT,
		ir.PredULE, ir.PredSGT, ir.PredSGE, ir.PredSLT, ir.PredSLE:
		return int(p), true
	}
	return 0, false
}

// floatPredIndex maps the fourteen float predicates to their position
// within the FCMP_*_FLT/DBL opcode blocks.
func floatPredIndex(p ir.Pred) (int, bool) {
	if p < ir.PredOEQ || p > ir.PredUNE {
		return 0, false
	}
	return int(p - ir.PredOEQ), true
}

// emitCmp2 lowers a plain (non-fused) compare; the result always
// widens to a full i32 register, per the dispatcher's PutU32.
func (c *ctx) emitCmp2(inst ir.Instruction) error {
	p := inst.Cmp2
	dst := uint16(ir.RegOffset(inst.Ret))

	if p.Typ.IsFloat() {
		if err := rejectNaNOperand(p.Lhs); err != nil {
			return err
		}
		if err := rejectNaNOperand(p.Rhs); err != nil {
			return err
		}
		idx, ok := floatPredIndex(p.Pred)
		if !ok {
			return fmt.Errorf("cmp: predicate %d has no floating-point form", p.Pred)
		}
		if p.Lhs.Class() != ir.ClassRegFrame || p.Rhs.Class() != ir.ClassRegFrame {
			return fmt.Errorf("cmp: floating-point compare has no immediate form, operand must already be in a register")
		}
		lhs := uint16(ir.RegOffset(p.Lhs))
		rhs := uint16(ir.RegOffset(p.Rhs))
		if p.Typ.Bits == 32 {
			_, err := c.enc.EmitOp3(op.FCMP_OEQ_FLT+op.Op(idx), dst, lhs, rhs)
			return err
		}
		_, err := c.enc.EmitOp3(op.FCMP_OEQ_DBL+op.Op(idx), dst, lhs, rhs)
		return err
	}

	lhs := uint16(ir.RegOffset(p.Lhs))
	rhsConst := p.Rhs.Class() == ir.ClassConstant

	idx, ok := intPredIndex(p.Pred)
	if !ok {
		return fmt.Errorf("cmp: unsupported integer predicate %d", p.Pred)
	}

	switch p.Typ.Width() {
	case 8:
		if rhsConst {
			_, err := c.enc.EmitOp3(op.EQ8C+op.Op(idx), dst, lhs, uint16(ir.Const32(p.Rhs)))
			return err
		}
		_, err := c.enc.EmitOp3(op.EQ8+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err
	case 16:
		if rhsConst {
			_, err := c.enc.EmitOp3(op.EQ16C+op.Op(idx), dst, lhs, uint16(ir.Const32(p.Rhs)))
			return err
		}
		_, err := c.enc.EmitOp3(op.EQ16+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err
	case 32:
		if rhsConst {
			lo, hi := split32(ir.Const32(p.Rhs))
			_, err := c.enc.EmitOp4(op.EQ32C+op.Op(idx), dst, lhs, lo, hi)
			return err
		}
		_, err := c.enc.EmitOp3(op.EQ32+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err
	case 64:
		if rhsConst {
			w := split64(ir.Const64(p.Rhs))
			_, err := c.enc.EmitOpN(op.EQ64C+op.Op(idx), dst, lhs, w[0], w[1], w[2], w[3])
			return err
		}
		_, err := c.enc.EmitOp3(op.EQ64+op.Op(idx), dst, lhs, uint16(ir.RegOffset(p.Rhs)))
		return err
	}
	return fmt.Errorf("cmp: unsupported width %d", p.Typ.Width())
}

// rejectNaNOperand is the emit-time NaN check a floating-point compare
// applies to its operands: a NaN float/double constant is rejected as
// a fatal emit error rather than silently lowered, even though the
// runtime comparison (vm/exec/cmp_helpers.go's cmpFloat) already
// handles NaN correctly for every predicate. Overconservative by
// design - bit-identical to what a NaN constant folded into a register
// and compared at run time would produce - but a NaN literal written
// directly into source is almost always a mistake the original
// preferred to catch at compile time rather than let run silently.
func rejectNaNOperand(v ir.Value) error {
	c, ok := v.(ir.Const)
	if !ok || !c.Typ.IsFloat() {
		return nil
	}
	if math.IsNaN(c.Float64) {
		return fmt.Errorf("cmp: NaN float/double constant operand not allowed")
	}
	return nil
}

// emitCmpBranch lowers a fused compare-and-branch: widths 8 and 32
// only (vm/exec defines no 16/64-bit fusion). Slots 0/1 carry the
// true/false displacements (patched by package vm/fixup), slot 2
// onward carries the compared operands.
func (c *ctx) emitCmpBranch(inst ir.Instruction) error {
	p := inst.CmpBr
	width := p.Typ.Width()
	if width != 8 && width != 32 {
		return fmt.Errorf("cmpbranch: no fused opcode for width %d", width)
	}
	idx, ok := intPredIndex(p.Pred)
	if !ok {
		return fmt.Errorf("cmpbranch: unsupported predicate %d", p.Pred)
	}
	lhs := uint16(ir.RegOffset(p.Lhs))
	rhsConst := p.Rhs.Class() == ir.ClassConstant

	var pos int
	var err error
	var code op.Op
	switch {
	case width == 8 && !rhsConst:
		code = op.EQ8_BR + op.Op(idx)
		pos, err = c.enc.EmitOpN(code, 0, 0, lhs, uint16(ir.RegOffset(p.Rhs)))
	case width == 8 && rhsConst:
		code = op.EQ8_C_BR + op.Op(idx)
		pos, err = c.enc.EmitOpN(code, 0, 0, lhs, uint16(ir.Const32(p.Rhs)))
	case width == 32 && !rhsConst:
		code = op.EQ32_BR + op.Op(idx)
		pos, err = c.enc.EmitOpN(code, 0, 0, lhs, uint16(ir.RegOffset(p.Rhs)))
	default: // width == 32 && rhsConst
		code = op.EQ32_C_BR + op.Op(idx)
		lo, hi := split32(ir.Const32(p.Rhs))
		pos, err = c.enc.EmitOpN(code, 0, 0, lhs, lo, hi)
	}
	if err != nil {
		return err
	}
	c.fixups.Add(pos, code, p.TrueBlock, p.FalseBlock)
	return nil
}
