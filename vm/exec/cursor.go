package exec

import (
	"encoding/binary"
	"math"
)

// cursor reads operand slots out of a function's text buffer. Slot i
// sits at byte offset pc+i*2 from the cursor's anchor, matching the
// original `I[i]` / `UIMM*(i)` macro family where I already points past
// the 2-byte opcode header.
type cursor struct {
	text []byte
	pc   int
}

func (c cursor) byteOff(slot int) int { return c.pc + slot*2 }

// slot reads operand i as a raw 16-bit register-frame offset (the
// `I[i]` form used for register operands and branch displacements).
func (c cursor) slot(i int) uint16 {
	o := c.byteOff(i)
	return binary.LittleEndian.Uint16(c.text[o : o+2])
}
func (c cursor) regOff(i int) int16 { return int16(c.slot(i)) }
func (c cursor) disp(i int) int     { return int(int16(c.slot(i))) }

func (c cursor) u8(i int) uint8  { return c.text[c.byteOff(i)] }
func (c cursor) s8(i int) int8   { return int8(c.u8(i)) }
func (c cursor) u16(i int) uint16 { return c.slot(i) }
func (c cursor) s16(i int) int16  { return int16(c.slot(i)) }

func (c cursor) u32(i int) uint32 {
	o := c.byteOff(i)
	return binary.LittleEndian.Uint32(c.text[o : o+4])
}
func (c cursor) s32(i int) int32 { return int32(c.u32(i)) }

func (c cursor) u64(i int) uint64 {
	o := c.byteOff(i)
	return binary.LittleEndian.Uint64(c.text[o : o+8])
}
func (c cursor) s64(i int) int64 { return int64(c.u64(i)) }

func (c cursor) f32(i int) float32 { return math.Float32frombits(c.u32(i)) }
func (c cursor) f64(i int) float64 { return math.Float64frombits(c.u64(i)) }

// next returns the byte offset of the instruction k operand slots after
// this one's operand start - the Go equivalent of the `NEXT(k)` macro.
func (c cursor) next(k int) int { return c.byteOff(k) }
