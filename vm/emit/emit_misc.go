package emit

import (
	"fmt"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

// emitMove lowers a plain register/immediate move. There is no
// dedicated 16-bit register-to-register opcode (only MOV8, MOV32,
// MOV64); every frame slot is allocated at least 4 bytes wide
// (ir.Builder.Alloc), so a 16-bit value's slot is never shared with a
// neighbour and MOV32 safely stands in, copying the whole slot.
func (c *ctx) emitMove(inst ir.Instruction) error {
	p := inst.Move
	dst := uint16(ir.RegOffset(inst.Ret))
	width := p.Typ.Width()

	if p.Src.Class() == ir.ClassConstant {
		switch width {
		case 8:
			_, err := c.enc.EmitOp2(op.MOV8_C, dst, uint16(ir.Const32(p.Src)))
			return err
		case 16:
			_, err := c.enc.EmitOp2(op.MOV16_C, dst, uint16(ir.Const32(p.Src)))
			return err
		case 32:
			lo, hi := split32(ir.Const32(p.Src))
			_, err := c.enc.EmitOp3(op.MOV32_C, dst, lo, hi)
			return err
		case 64:
			w := split64(ir.Const64(p.Src))
			_, err := c.enc.EmitOpN(op.MOV64_C, dst, w[0], w[1], w[2], w[3])
			return err
		}
		return fmt.Errorf("move: unsupported constant width %d", width)
	}

	src := uint16(ir.RegOffset(p.Src))
	switch width {
	case 8:
		_, err := c.enc.EmitOp2(op.MOV8, dst, src)
		return err
	case 16, 32:
		_, err := c.enc.EmitOp2(op.MOV32, dst, src)
		return err
	case 64:
		_, err := c.enc.EmitOp2(op.MOV64, dst, src)
		return err
	}
	return fmt.Errorf("move: unsupported width %d", width)
}

// emitSelect lowers a two-way select across the four width families,
// picking among the _RR/_RC/_CR/_CC shapes by whether the true/false
// operands are registers or constants. The four widths carry distinct
// slot counts for the mixed and both-const shapes (dispatch_moveselect.go).
func (c *ctx) emitSelect(inst ir.Instruction) error {
	p := inst.Select
	dst := uint16(ir.RegOffset(inst.Ret))
	cond := uint16(ir.RegOffset(p.Cond))
	tConst := p.TrueVal.Class() == ir.ClassConstant
	fConst := p.FalseVal.Class() == ir.ClassConstant

	switch p.Typ.Width() {
	case 8:
		return c.emitSelect8(dst, cond, p, tConst, fConst)
	case 16:
		return c.emitSelect16(dst, cond, p, tConst, fConst)
	case 32:
		return c.emitSelect32(dst, cond, p, tConst, fConst)
	case 64:
		return c.emitSelect64(dst, cond, p, tConst, fConst)
	}
	return fmt.Errorf("select: unsupported width %d", p.Typ.Width())
}

func (c *ctx) emitSelect8(dst, cond uint16, p ir.SelectPayload, tConst, fConst bool) error {
	switch {
	case !tConst && !fConst:
		_, err := c.enc.EmitOp4(op.SELECT8_RR, dst, cond, uint16(ir.RegOffset(p.TrueVal)), uint16(ir.RegOffset(p.FalseVal)))
		return err
	case !tConst && fConst:
		_, err := c.enc.EmitOp4(op.SELECT8_RC, dst, cond, uint16(ir.RegOffset(p.TrueVal)), uint16(ir.Const32(p.FalseVal)))
		return err
	case tConst && !fConst:
		_, err := c.enc.EmitOp4(op.SELECT8_CR, dst, cond, uint16(ir.RegOffset(p.FalseVal)), uint16(ir.Const32(p.TrueVal)))
		return err
	default:
		_, err := c.enc.EmitOp4(op.SELECT8_CC, dst, cond, uint16(ir.Const32(p.TrueVal)), uint16(ir.Const32(p.FalseVal)))
		return err
	}
}

func (c *ctx) emitSelect16(dst, cond uint16, p ir.SelectPayload, tConst, fConst bool) error {
	switch {
	case !tConst && !fConst:
		_, err := c.enc.EmitOp4(op.SELECT16_RR, dst, cond, uint16(ir.RegOffset(p.TrueVal)), uint16(ir.RegOffset(p.FalseVal)))
		return err
	case !tConst && fConst:
		_, err := c.enc.EmitOp4(op.SELECT16_RC, dst, cond, uint16(ir.RegOffset(p.TrueVal)), uint16(ir.Const32(p.FalseVal)))
		return err
	case tConst && !fConst:
		_, err := c.enc.EmitOp4(op.SELECT16_CR, dst, cond, uint16(ir.RegOffset(p.FalseVal)), uint16(ir.Const32(p.TrueVal)))
		return err
	default:
		_, err := c.enc.EmitOp4(op.SELECT16_CC, dst, cond, uint16(ir.Const32(p.TrueVal)), uint16(ir.Const32(p.FalseVal)))
		return err
	}
}

func (c *ctx) emitSelect32(dst, cond uint16, p ir.SelectPayload, tConst, fConst bool) error {
	switch {
	case !tConst && !fConst:
		_, err := c.enc.EmitOp4(op.SELECT32_RR, dst, cond, uint16(ir.RegOffset(p.TrueVal)), uint16(ir.RegOffset(p.FalseVal)))
		return err
	case !tConst && fConst:
		lo, hi := split32(ir.Const32(p.FalseVal))
		_, err := c.enc.EmitOpN(op.SELECT32_RC, dst, cond, uint16(ir.RegOffset(p.TrueVal)), lo, hi)
		return err
	case tConst && !fConst:
		lo, hi := split32(ir.Const32(p.TrueVal))
		_, err := c.enc.EmitOpN(op.SELECT32_CR, dst, cond, uint16(ir.RegOffset(p.FalseVal)), lo, hi)
		return err
	default:
		tlo, thi := split32(ir.Const32(p.TrueVal))
		flo, fhi := split32(ir.Const32(p.FalseVal))
		_, err := c.enc.EmitOpN(op.SELECT32_CC, dst, cond, tlo, thi, flo, fhi)
		return err
	}
}

func (c *ctx) emitSelect64(dst, cond uint16, p ir.SelectPayload, tConst, fConst bool) error {
	switch {
	case !tConst && !fConst:
		_, err := c.enc.EmitOp4(op.SELECT64_RR, dst, cond, uint16(ir.RegOffset(p.TrueVal)), uint16(ir.RegOffset(p.FalseVal)))
		return err
	case !tConst && fConst:
		w := split64(ir.Const64(p.FalseVal))
		_, err := c.enc.EmitOpN(op.SELECT64_RC, dst, cond, uint16(ir.RegOffset(p.TrueVal)), w[0], w[1], w[2], w[3])
		return err
	case tConst && !fConst:
		w := split64(ir.Const64(p.TrueVal))
		_, err := c.enc.EmitOpN(op.SELECT64_CR, dst, cond, uint16(ir.RegOffset(p.FalseVal)), w[0], w[1], w[2], w[3])
		return err
	default:
		tw := split64(ir.Const64(p.TrueVal))
		fw := split64(ir.Const64(p.FalseVal))
		_, err := c.enc.EmitOpN(op.SELECT64_CC, dst, cond, tw[0], tw[1], tw[2], tw[3], fw[0], fw[1], fw[2], fw[3])
		return err
	}
}
