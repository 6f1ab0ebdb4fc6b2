/*
 * ssavm - Branch-fixup pass.
 *
 * Copyright 2026, ssavm contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package fixup rewrites the placeholder branch displacements an
// emitter leaves behind once every block in a function has a final
// text offset. The emitter records one Site per branch-carrying
// instruction as it is written; Resolve walks the list after the last
// block is placed and patches each displacement slot in place.
package fixup

import (
	"fmt"
	"math"

	"ssavm/ir"
	"ssavm/vm/encoder"
	op "ssavm/vm/opcode"
)

// Site is one recorded branch-fixup position: the byte offset of a
// branch-carrying instruction's opcode header, the opcode itself, and
// the block ids it may transfer control to, in the order its operand
// slots expect them.
type Site struct {
	InstrPos int
	Op       op.Op
	Targets  []int
}

// List accumulates Sites during emission of a single function.
type List struct {
	Sites []Site
}

// Add records a fixup site. pos is the byte offset just written by
// EmitOpN for the branch instruction (the position EmitOpN returned),
// code is the opcode that was emitted, and targets are the destination
// block ids in the order the opcode's shape expects them (see
// opcode.FixupShapeOf's doc comment for the per-opcode ordering).
func (l *List) Add(pos int, code op.Op, targets ...int) {
	l.Sites = append(l.Sites, Site{InstrPos: pos, Op: code, Targets: targets})
}

// Resolve patches every recorded site's displacement slots against
// fn's finalized block offsets. fn.Blocks must already carry their
// final TextOffset (emit.Function sets each one as it starts emitting
// that block, before calling Resolve). Returns the first
// displacement-overflow or unknown-block error encountered.
func Resolve(enc *encoder.Encoder, fn *ir.Function, sites []Site) error {
	for _, s := range sites {
		operandStart := s.InstrPos + 2

		switch s.Op {
		case op.JUMPTABLE:
			n := int(enc.Slot16(operandStart + 2))
			if n != len(s.Targets) {
				return fmt.Errorf("fixup: jumptable at pc %d recorded %d targets, text carries %d", s.InstrPos, len(s.Targets), n)
			}
			for i, target := range s.Targets {
				if err := patchDisp(enc, fn, operandStart, 2+i, target); err != nil {
					return err
				}
			}

		case op.SWITCH8_BS, op.SWITCH32_BS, op.SWITCH64_BS:
			p := int(enc.Slot16(operandStart + 2))
			// p real cases plus one trailing "no match" slot, which the
			// runtime falls into when imin lands at p (see vm/exec's
			// binary-search miss path).
			if p+1 != len(s.Targets) {
				return fmt.Errorf("fixup: switch at pc %d recorded %d targets, text carries %d cases plus default", s.InstrPos, len(s.Targets), p)
			}
			dispStart := 2 + p*switchKeyWidth(s.Op)
			for i, target := range s.Targets {
				if err := patchDisp(enc, fn, operandStart, dispStart+i, target); err != nil {
					return err
				}
			}

		default:
			shape, ok := op.FixupShapeOf(s.Op)
			if !ok {
				return fmt.Errorf("fixup: %s has no registered fixup shape", s.Op)
			}
			if len(s.Targets) != shape.NumTargets {
				return fmt.Errorf("fixup: %s at pc %d expects %d targets, got %d", s.Op, s.InstrPos, shape.NumTargets, len(s.Targets))
			}
			for i, target := range s.Targets {
				if err := patchDisp(enc, fn, operandStart, shape.SlotOffset+i, target); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// switchKeyWidth is the number of 16-bit slots one case key occupies
// for a given SWITCH*_BS opcode (an 8-bit key still burns a full slot;
// 32-bit keys take two, 64-bit keys take four), matching the operand
// layout the dispatcher reads in vm/exec.
func switchKeyWidth(code op.Op) int {
	switch code {
	case op.SWITCH8_BS:
		return 1
	case op.SWITCH32_BS:
		return 2
	case op.SWITCH64_BS:
		return 4
	}
	return 1
}

// patchDisp computes the pc-relative displacement from operandStart to
// target's first instruction and writes it into the 16-bit slot at
// operandStart+slot*2, per invariant 1 (branch displacement
// signedness): the stored value must round-trip through int16.
func patchDisp(enc *encoder.Encoder, fn *ir.Function, operandStart, slot, target int) error {
	blk := fn.BlockByID(target)
	if blk == nil {
		return fmt.Errorf("fixup: function %s has no block %d", fn.Name, target)
	}
	disp := blk.TextOffset - operandStart
	if disp < math.MinInt16 || disp > math.MaxInt16 {
		return fmt.Errorf("fixup: displacement %d (pc %d -> block %d) overflows int16", disp, operandStart, target)
	}
	enc.PatchSlot(operandStart+slot*2, uint16(int16(disp)))
	return nil
}
