/*
 * ssavm - Per-instruction emitters.
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

// Package emit lowers one ir.Function's blocks into a finished
// bytecode text buffer: one emitter per instruction class, selecting
// opcodes per the discrimination rules documented on each emit_*.go
// file, followed by a branch-fixup pass (package vm/fixup) once every
// block has a final text offset.
package emit

import (
	"fmt"

	"ssavm/ir"
	"ssavm/vm/encoder"
	"ssavm/vm/fixup"
)

// ctx carries the per-function emission state threaded through every
// emitInst call: the shared scratch encoder and the accumulated list
// of branch-fixup sites.
type ctx struct {
	enc    *encoder.Encoder
	fixups fixup.List
}

// Function lowers fn's blocks into fn.Text, resolving every branch
// displacement against the blocks' final offsets. Mirrors §3's
// lifecycle: scratch buffer grows for the duration of one function,
// then the exact-sized text is copied out.
func Function(fn *ir.Function) error {
	c := &ctx{enc: encoder.New()}

	for _, blk := range fn.Blocks {
		blk.TextOffset = c.enc.Len()
		for _, inst := range blk.Insts {
			if err := c.emitInst(fn, inst); err != nil {
				return fmt.Errorf("emit: function %s block %d: %w", fn.Name, blk.ID, err)
			}
		}
	}

	if err := fixup.Resolve(c.enc, fn, c.fixups.Sites); err != nil {
		return fmt.Errorf("emit: function %s: %w", fn.Name, err)
	}

	fn.Text = c.enc.Bytes()
	return nil
}

func (c *ctx) emitInst(fn *ir.Function, inst ir.Instruction) error {
	switch inst.Class {
	case ir.ClassRet:
		return c.emitRet(inst)
	case ir.ClassBinop:
		return c.emitBinop(inst)
	case ir.ClassMla:
		return c.emitMla(inst)
	case ir.ClassCmp2:
		return c.emitCmp2(inst)
	case ir.ClassCmpBranch:
		return c.emitCmpBranch(inst)
	case ir.ClassBr:
		return c.emitBr(inst)
	case ir.ClassSwitch:
		return c.emitSwitch(inst)
	case ir.ClassUnreachable:
		_, err := c.enc.EmitOp0(opUnreachable)
		return err
	case ir.ClassLoad:
		return c.emitLoad(inst)
	case ir.ClassStore:
		return c.emitStore(inst)
	case ir.ClassLea:
		return c.emitLea(inst)
	case ir.ClassCast:
		return c.emitCast(inst)
	case ir.ClassMove:
		return c.emitMove(inst)
	case ir.ClassSelect:
		return c.emitSelect(inst)
	case ir.ClassCall:
		return c.emitCall(fn, inst)
	case ir.ClassAlloca:
		return c.emitAlloca(inst)
	case ir.ClassVaarg:
		return c.emitVaarg(inst)
	case ir.ClassStackCopy:
		return c.emitStackCopy(inst)
	case ir.ClassStackShrink:
		return c.emitStackShrink(inst)
	case ir.ClassVMOp:
		return c.emitVMOp(inst)
	default:
		return fmt.Errorf("unhandled instruction class %d", inst.Class)
	}
}
