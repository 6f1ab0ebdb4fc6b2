/*
 * ssavm - Register frame accessors.
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

// Package exec is the dispatch core: register frame, guest memory, the
// opcode switch, and the call-frame driver.
package exec

import (
	"encoding/binary"
	"math"
)

// AccOffset is the reserved accumulator slot, frame offset 8 (§3).
const AccOffset int16 = 8

// Frame is a window into guest memory anchored at a 16-bit-offset base.
// The register frame lives inside the same flat buffer as the rest of
// addressable memory (confirmed against the original vmir source's
// `rf = iu->iu_mem` aliasing) - there is no separate register bank.
type Frame struct {
	Mem []byte
	RF  int32
}

func (f Frame) addr(off int16) int32 { return f.RF + int32(off) }

func (f Frame) U8(off int16) uint8 { return f.Mem[f.addr(off)] }
func (f Frame) S8(off int16) int8  { return int8(f.U8(off)) }

func (f Frame) U16(off int16) uint16 {
	a := f.addr(off)
	return binary.LittleEndian.Uint16(f.Mem[a : a+2])
}
func (f Frame) S16(off int16) int16 { return int16(f.U16(off)) }

func (f Frame) U32(off int16) uint32 {
	a := f.addr(off)
	return binary.LittleEndian.Uint32(f.Mem[a : a+4])
}
func (f Frame) S32(off int16) int32 { return int32(f.U32(off)) }

func (f Frame) U64(off int16) uint64 {
	a := f.addr(off)
	return binary.LittleEndian.Uint64(f.Mem[a : a+8])
}
func (f Frame) S64(off int16) int64 { return int64(f.U64(off)) }

func (f Frame) F32(off int16) float32 { return math.Float32frombits(f.U32(off)) }
func (f Frame) F64(off int16) float64 { return math.Float64frombits(f.U64(off)) }

func (f Frame) PutU8(off int16, v uint8) { f.Mem[f.addr(off)] = v }
func (f Frame) PutS8(off int16, v int8)  { f.PutU8(off, uint8(v)) }

func (f Frame) PutU16(off int16, v uint16) {
	a := f.addr(off)
	binary.LittleEndian.PutUint16(f.Mem[a:a+2], v)
}
func (f Frame) PutS16(off int16, v int16) { f.PutU16(off, uint16(v)) }

func (f Frame) PutU32(off int16, v uint32) {
	a := f.addr(off)
	binary.LittleEndian.PutUint32(f.Mem[a:a+4], v)
}
func (f Frame) PutS32(off int16, v int32) { f.PutU32(off, uint32(v)) }

func (f Frame) PutU64(off int16, v uint64) {
	a := f.addr(off)
	binary.LittleEndian.PutUint64(f.Mem[a:a+8], v)
}
func (f Frame) PutS64(off int16, v int64) { f.PutU64(off, uint64(v)) }

func (f Frame) PutF32(off int16, v float32) { f.PutU32(off, math.Float32bits(v)) }
func (f Frame) PutF64(off int16, v float64) { f.PutU64(off, math.Float64bits(v)) }

// AccU32 and AccS32 read/write the accumulator (§3 offset 8) without a
// caller-supplied offset, mirroring the original's dedicated
// R32_ACC/S32_ACC macros.
func (f Frame) AccU32() uint32          { return f.U32(AccOffset) }
func (f Frame) AccS32() int32           { return f.S32(AccOffset) }
func (f Frame) PutAccU32(v uint32)      { f.PutU32(AccOffset, v) }
func (f Frame) PutAccS32(v int32)       { f.PutS32(AccOffset, v) }

// At returns the absolute byte address of a frame-relative offset, used
// by memory intrinsics that take a register holding a guest pointer.
func (f Frame) At(off int16) int32 { return f.addr(off) }
