package emit

import (
	"fmt"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

const opUnreachable = op.UNREACHABLE

// emitRet lowers a RetPayload. A nil Value means RET_VOID; otherwise
// the opcode is picked by the returned value's width and class
// (register vs immediate constant).
func (c *ctx) emitRet(inst ir.Instruction) error {
	v := inst.Ret_.Value
	if v == nil {
		_, err := c.enc.EmitOp0(op.RET_VOID)
		return err
	}
	if v.Class() == ir.ClassConstant {
		switch v.Type().Width() {
		case 32:
			lo, hi := split32(ir.Const32(v))
			_, err := c.enc.EmitOp2(op.RET_R32C, lo, hi)
			return err
		case 64:
			w := split64(ir.Const64(v))
			_, err := c.enc.EmitOp4(op.RET_R64C, w[0], w[1], w[2], w[3])
			return err
		default:
			return fmt.Errorf("ret: constant width %d has no dedicated return opcode", v.Type().Width())
		}
	}
	reg := uint16(ir.RegOffset(v))
	switch v.Type().Width() {
	case 8:
		_, err := c.enc.EmitOp1(op.RET_R8, reg)
		return err
	case 16:
		_, err := c.enc.EmitOp1(op.RET_R16, reg)
		return err
	case 32:
		_, err := c.enc.EmitOp1(op.RET_R32, reg)
		return err
	case 64:
		_, err := c.enc.EmitOp1(op.RET_R64, reg)
		return err
	}
	return fmt.Errorf("ret: unsupported width %d", v.Type().Width())
}

// emitBr lowers an unconditional or conditional branch. Placeholder
// zero displacements are written now and patched once every block has
// a final text offset (package vm/fixup).
func (c *ctx) emitBr(inst ir.Instruction) error {
	b := inst.Br
	if b.Cond == nil {
		pos, err := c.enc.EmitOp1(op.B, 0)
		if err != nil {
			return err
		}
		c.fixups.Add(pos, op.B, b.TrueBlock)
		return nil
	}
	condReg := uint16(ir.RegOffset(b.Cond))
	pos, err := c.enc.EmitOp3(op.BCOND, condReg, 0, 0)
	if err != nil {
		return err
	}
	c.fixups.Add(pos, op.BCOND, b.TrueBlock, b.FalseBlock)
	return nil
}

// emitSwitch picks between the dense jumptable form and the
// sorted-key binary search, per the switch-lowering decision recorded
// in DESIGN.md. JUMPTABLE reads only the selector's low byte (vm/exec),
// so it is only sound for an 8-bit-wide selector whose cases cover a
// contiguous 0-based key range; every other switch takes the
// SWITCH8_BS/32_BS/64_BS binary-search path.
func (c *ctx) emitSwitch(inst ir.Instruction) error {
	s := inst.Switch
	if s.Typ.Width() == 8 && isDenseZeroBased(s.Cases) {
		return c.emitJumptable(s)
	}
	return c.emitSwitchBS(s)
}

// isDenseZeroBased reports whether cases cover exactly the keys
// 0..len(cases)-1, each appearing once, regardless of slice order.
func isDenseZeroBased(cases []ir.SwitchCase) bool {
	if len(cases) == 0 {
		return false
	}
	seen := make(map[uint64]bool, len(cases))
	for _, cs := range cases {
		if cs.Key >= uint64(len(cases)) || seen[cs.Key] {
			return false
		}
		seen[cs.Key] = true
	}
	return true
}

// emitJumptable lowers a dense 0-based switch to JUMPTABLE: table size
// is the smallest power of two at least as large as the case count, so
// every real key indexes directly (sel & (size-1) == sel for sel <
// size) and the padding slots above the case count fall to Default.
func (c *ctx) emitJumptable(s ir.SwitchPayload) error {
	size := 1
	for size < len(s.Cases) {
		size <<= 1
	}
	selReg := uint16(ir.RegOffset(s.Selector))
	pos, err := c.enc.EmitOp2(op.JUMPTABLE, selReg, uint16(size))
	if err != nil {
		return err
	}
	targets := make([]int, size)
	for i := range targets {
		targets[i] = s.Default
	}
	for _, cs := range s.Cases {
		targets[cs.Key] = cs.Block
	}
	for range targets {
		if err := c.enc.Append16(0); err != nil {
			return err
		}
	}
	c.fixups.Add(pos, op.JUMPTABLE, targets...)
	return nil
}

// emitSwitchBS lowers every switch to a sorted-key binary search
// (SWITCH8_BS/32_BS/64_BS per the selector's width); the case list
// must already be sorted ascending by key, as the binary-search
// dispatcher requires (invariant per §4.D / vm/exec). The operand
// layout carries p case keys followed by p+1 displacements: the last
// one is the default target, taken when the search finds no exact
// key match.
func (c *ctx) emitSwitchBS(s ir.SwitchPayload) error {
	width := s.Typ.Width()
	var code op.Op
	switch width {
	case 8:
		code = op.SWITCH8_BS
	case 32:
		code = op.SWITCH32_BS
	case 64:
		code = op.SWITCH64_BS
	default:
		return fmt.Errorf("switch: unsupported selector width %d", width)
	}

	selReg := uint16(ir.RegOffset(s.Selector))
	pos, err := c.enc.EmitOp2(code, selReg, uint16(len(s.Cases)))
	if err != nil {
		return err
	}
	for _, cs := range s.Cases {
		switch width {
		case 8:
			if err := c.enc.Append16(uint16(cs.Key)); err != nil {
				return err
			}
		case 32:
			if err := c.enc.Append32(uint32(cs.Key)); err != nil {
				return err
			}
		case 64:
			if err := c.enc.Append64(cs.Key); err != nil {
				return err
			}
		}
	}
	targets := make([]int, len(s.Cases)+1)
	for i, cs := range s.Cases {
		targets[i] = cs.Block
		if err := c.enc.Append16(0); err != nil {
			return err
		}
	}
	targets[len(s.Cases)] = s.Default
	if err := c.enc.Append16(0); err != nil {
		return err
	}
	c.fixups.Add(pos, code, targets...)
	return nil
}

func split32(v uint32) (uint16, uint16) {
	return uint16(v), uint16(v >> 16)
}

func split64(v uint64) [4]uint16 {
	return [4]uint16{uint16(v), uint16(v >> 16), uint16(v >> 32), uint16(v >> 48)}
}
