/*
 * ssavm - Instruction encoder.
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

// Package encoder writes opcodes and operands into a contiguous text
// buffer, mirroring the raw byte-packing style of the teacher's
// emu/assemble package (manual index/append writes into a []byte, no
// serialization library - no example in the pack reaches for one for
// this kind of bit-packed instruction stream, so this stays on the
// standard library; see DESIGN.md).
package encoder

import (
	"encoding/binary"
	"fmt"

	op "ssavm/vm/opcode"
)

// MaxFunctionText is the scratch buffer's hard ceiling. Exceeding it
// is the "function too big" fatal emit error from §4.B/§7.
const MaxFunctionText = 1 << 16

// Encoder is the growing per-function scratch text buffer. One
// Encoder is reused across functions within a unit (cleared by
// Reset), exactly as §3's "Lifecycles" describes: "Emission allocates
// a growing scratch text buffer; on function completion the
// exact-sized text is copied out and the scratch is reused for the
// next function."
type Encoder struct {
	buf []byte
}

// New returns an Encoder with a reasonable initial capacity.
func New() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Reset clears the scratch buffer for the next function, retaining
// its backing array.
func (e *Encoder) Reset() { e.buf = e.buf[:0] }

// Len returns the current cursor, i.e. the number of bytes written so
// far.
func (e *Encoder) Len() int { return len(e.buf) }

// Bytes returns the exact-sized finished text. The caller (emit.Function)
// copies it out onto the Function before the scratch buffer is reused.
func (e *Encoder) Bytes() []byte {
	out := make([]byte, len(e.buf))
	copy(out, e.buf)
	return out
}

func (e *Encoder) checkRoom(n int) error {
	if len(e.buf)+n > MaxFunctionText {
		return fmt.Errorf("encoder: function too big (would exceed %d bytes)", MaxFunctionText)
	}
	return nil
}

// Append8 writes a raw byte.
func (e *Encoder) Append8(v uint8) error {
	if err := e.checkRoom(1); err != nil {
		return err
	}
	e.buf = append(e.buf, v)
	return nil
}

// Append16 writes a raw little-endian 16-bit value. Every operand slot
// (including opcode headers and frame offsets) is a 16-bit unit, so
// this is the encoder's fundamental primitive.
func (e *Encoder) Append16(v uint16) error {
	if err := e.checkRoom(2); err != nil {
		return err
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
	return nil
}

// Append32 writes a raw little-endian 32-bit value. Callers are
// responsible for calling Align32 first when the opcode's convention
// requires it (invariant 2).
func (e *Encoder) Append32(v uint32) error {
	if err := e.checkRoom(4); err != nil {
		return err
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
	return nil
}

// Append64 writes a raw little-endian 64-bit value.
func (e *Encoder) Append64(v uint64) error {
	if err := e.checkRoom(8); err != nil {
		return err
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
	return nil
}

// Raw appends an arbitrary byte slice verbatim (used for switch key
// arrays and jumptable displacement arrays, whose total size is not
// known as a single fixed-width immediate).
func (e *Encoder) Raw(p []byte) error {
	if err := e.checkRoom(len(p)); err != nil {
		return err
	}
	e.buf = append(e.buf, p...)
	return nil
}

// Align32 emits a single NOP operand slot if the current cursor
// parity disagrees with the required parity (bit 1 of the cursor,
// i.e. whether the cursor is a multiple of 4 bytes). parity=0 means
// "must already be 4-byte aligned"; parity=1 means "must be offset by
// exactly one 16-bit slot from a 4-byte boundary", matching how an
// opcode's own 16-bit header pushes a following 32/64-bit immediate
// by one slot.
func (e *Encoder) Align32(parity int) error {
	cur := (e.Len() >> 1) & 1
	if cur != parity {
		return e.Append16(uint16(op.NOP))
	}
	return nil
}

// emitOpN family: write the resolved opcode handle followed by n
// 16-bit operand slots. The handle written is op.ResolveOpcode(code),
// not the raw enum, per §4.B's opcode-resolution contract; under the
// switched dispatch this module implements they are numerically
// identical, but every call site goes through ResolveOpcode so the
// encoder would keep working unchanged under a threaded dispatch.

// EmitOp0 writes a bare opcode with no operand slots (e.g. NOP,
// RET_VOID, UNREACHABLE, STACKSAVE).
func (e *Encoder) EmitOp0(code op.Op) (pos int, err error) {
	pos = e.Len()
	if err = e.Append16(uint16(op.ResolveOpcode(code))); err != nil {
		return pos, err
	}
	return pos, nil
}

// EmitOp1 writes an opcode with one operand slot.
func (e *Encoder) EmitOp1(code op.Op, a uint16) (pos int, err error) {
	pos = e.Len()
	if err = e.Append16(uint16(op.ResolveOpcode(code))); err != nil {
		return pos, err
	}
	err = e.Append16(a)
	return pos, err
}

// EmitOp2 writes an opcode with two operand slots.
func (e *Encoder) EmitOp2(code op.Op, a, b uint16) (pos int, err error) {
	pos = e.Len()
	if err = e.Append16(uint16(op.ResolveOpcode(code))); err != nil {
		return pos, err
	}
	if err = e.Append16(a); err != nil {
		return pos, err
	}
	err = e.Append16(b)
	return pos, err
}

// EmitOp3 writes an opcode with three operand slots.
func (e *Encoder) EmitOp3(code op.Op, a, b, c uint16) (pos int, err error) {
	pos = e.Len()
	if err = e.Append16(uint16(op.ResolveOpcode(code))); err != nil {
		return pos, err
	}
	if err = e.Append16(a); err != nil {
		return pos, err
	}
	if err = e.Append16(b); err != nil {
		return pos, err
	}
	err = e.Append16(c)
	return pos, err
}

// EmitOp4 writes an opcode with four operand slots.
func (e *Encoder) EmitOp4(code op.Op, a, b, c, d uint16) (pos int, err error) {
	pos = e.Len()
	if err = e.Append16(uint16(op.ResolveOpcode(code))); err != nil {
		return pos, err
	}
	for _, s := range [...]uint16{a, b, c, d} {
		if err = e.Append16(s); err != nil {
			return pos, err
		}
	}
	return pos, err
}

// EmitOpN writes an opcode followed by an arbitrary number of operand
// slots, for the wide immediate forms (64-bit register+register+imm64
// needs six slots) that don't fit the fixed EmitOp1..EmitOp4 helpers.
func (e *Encoder) EmitOpN(code op.Op, slots ...uint16) (pos int, err error) {
	pos = e.Len()
	if err = e.Append16(uint16(op.ResolveOpcode(code))); err != nil {
		return pos, err
	}
	for _, s := range slots {
		if err = e.Append16(s); err != nil {
			return pos, err
		}
	}
	return pos, err
}

// PatchOp rewrites the opcode handle at a previously recorded
// position; used by the branch-fixup pass to substitute the resolved
// handle for the placeholder enum value that was carried through
// emission (§4.D step 4).
func (e *Encoder) PatchOp(pos int, code op.Op) {
	binary.LittleEndian.PutUint16(e.buf[pos:], uint16(op.ResolveOpcode(code)))
}

// PatchSlot rewrites a single 16-bit operand slot at the given byte
// offset; used to fix up branch displacements after all blocks are
// placed.
func (e *Encoder) PatchSlot(byteOffset int, v uint16) {
	binary.LittleEndian.PutUint16(e.buf[byteOffset:], v)
}

// Slot16 reads back a 16-bit operand slot, used by the fixup pass to
// inspect an opcode before deciding how many targets it carries.
func (e *Encoder) Slot16(byteOffset int) uint16 {
	return binary.LittleEndian.Uint16(e.buf[byteOffset:])
}
