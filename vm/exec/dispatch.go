package exec

import (
	"encoding/binary"

	op "ssavm/vm/opcode"
)

// At returns a zero-based Frame view over guest memory at an absolute
// 32-bit guest address, for host bindings that need to read or write
// guest memory outside any register frame.
func (m *Machine) At(addr uint32) Frame { return Frame{Mem: m.Mem, RF: int32(addr)} }

// run executes fn's text starting at pc 0 with register frame base rf,
// until a RET_* opcode or a non-local stop. It returns the (possibly
// bumped) alloca pointer; per the original's by-value threading of
// allocaptr through recursive vm_exec calls, a nested call's bump is
// never visible to its caller once that nested call returns - only the
// top-level Call driver persists the final value (see call.go).
func (m *Machine) run(text []byte, rf int32, ret Frame, allocaptr uint32) uint32 {
	f := Frame{Mem: m.Mem, RF: rf}
	pc := 0

	for {
		if pc+2 > len(text) {
			stop(StopBadInstruction, 0)
		}
		code := op.Op(binary.LittleEndian.Uint16(text[pc : pc+2]))
		c := cursor{text: text, pc: pc + 2}
		m.traceOp(code.String(), pc, rf)

		switch code {

		// --- control ---

		case op.NOP:
			pc = c.next(0)

		case op.RET_VOID:
			return allocaptr
		case op.RET_R8:
			ret.PutU32(0, uint32(f.U8(c.regOff(0))))
			return allocaptr
		case op.RET_R16:
			ret.PutU16(0, f.U16(c.regOff(0)))
			return allocaptr
		case op.RET_R32:
			ret.PutU32(0, f.U32(c.regOff(0)))
			return allocaptr
		case op.RET_R64:
			ret.PutU64(0, f.U64(c.regOff(0)))
			return allocaptr
		case op.RET_R32C:
			ret.PutU32(0, c.u32(0))
			return allocaptr
		case op.RET_R64C:
			ret.PutU64(0, c.u64(0))
			return allocaptr

		case op.UNREACHABLE:
			stop(StopUnreachable, 0)
		case op.INSTRUMENT_COUNT:
			// No-op absent a tracing/instrumentation table; still consumes
			// its 32-bit instrumentation-site index operand.
			pc = c.next(2)
		case op.JIT_CALL:
			// No native code generator in this engine (§1 non-goals);
			// a JIT_CALL reaching dispatch means the unit was built for
			// a JIT-capable host.
			stop(StopBadInstruction, int32(code))

		case op.B:
			pc = c.pc + c.disp(0)
		case op.BCOND:
			cond := f.U32(c.regOff(0))
			if cond != 0 {
				pc = c.pc + c.disp(1)
			} else {
				pc = c.pc + c.disp(2)
			}

		case op.JSR_VM:
			idx := int(c.u16(0))
			newRF := rf + int32(c.regOff(1))
			retF := Frame{Mem: m.Mem, RF: rf + int32(c.regOff(2))}
			m.callVM(idx, newRF, retF, allocaptr)
			pc = c.next(3)
		case op.JSR_EXT:
			idx := int(c.u16(0))
			argF := Frame{Mem: m.Mem, RF: rf + int32(c.regOff(1))}
			retF := Frame{Mem: m.Mem, RF: rf + int32(c.regOff(2))}
			m.callExt(idx, retF, argF)
			pc = c.next(3)
		case op.JSR_R:
			idx := int(f.U32(c.regOff(0)))
			newRF := rf + int32(c.regOff(1))
			retF := Frame{Mem: m.Mem, RF: rf + int32(c.regOff(2))}
			if idx >= 0 && idx < len(m.VMFuncs) && m.VMFuncs[idx] != nil {
				m.callVM(idx, newRF, retF, allocaptr)
			} else if idx >= 0 && idx < len(m.ExtFuncs) && m.ExtFuncs[idx] != nil {
				argF := Frame{Mem: m.Mem, RF: rf + int32(c.regOff(1))}
				m.callExt(idx, retF, argF)
			} else {
				stop(StopBadFunction, int32(idx))
			}
			pc = c.next(3)

		case op.JUMPTABLE:
			sel := int(f.U8(c.regOff(0)))
			n := int(c.u16(1))
			mask := n - 1
			pc = c.pc + c.disp(2+(sel&mask))

		case op.SWITCH8_BS:
			u8 := f.U8(c.regOff(0))
			p := int(c.u16(1))
			key := func(i int) uint8 { return c.u8(2 + i) }
			imin := lowerBound(p, func(i int) bool { return key(i) < u8 })
			if !(imin < p && key(imin) == u8) {
				imin = p
			}
			pc = c.pc + c.disp(2+p+imin)
		case op.SWITCH32_BS:
			u32 := f.U32(c.regOff(0))
			p := int(c.u16(1))
			key := func(i int) uint32 { return c.u32(2 + i*2) }
			imin := lowerBound(p, func(i int) bool { return key(i) < u32 })
			if !(imin < p && key(imin) == u32) {
				imin = p
			}
			pc = c.pc + c.disp(2+p*2+imin)
		case op.SWITCH64_BS:
			u64 := f.U64(c.regOff(0))
			p := int(c.u16(1))
			key := func(i int) uint64 { return c.u64(2 + i*4) }
			imin := lowerBound(p, func(i int) bool { return key(i) < u64 })
			if !(imin < p && key(imin) == u64) {
				imin = p
			}
			pc = c.pc + c.disp(2+p*4+imin)

		default:
			pc = m.dispatchArith(code, c, f, &allocaptr)
		}
	}
}

// lowerBound returns the smallest index in [0,n) for which less(i) is
// false, mirroring the original's manual binary search loop.
func lowerBound(n int, less func(int) bool) int {
	imin, imax := 0, n
	for imin < imax {
		imid := (imin + imax) >> 1
		if less(imid) {
			imin = imid + 1
		} else {
			imax = imid
		}
	}
	return imin
}

func (m *Machine) callVM(idx int, newRF int32, ret Frame, allocaptr uint32) {
	if idx < 0 || idx >= len(m.VMFuncs) || m.VMFuncs[idx] == nil {
		stop(StopBadFunction, int32(idx))
	}
	m.run(m.VMFuncs[idx].Text, newRF, ret, allocaptr)
}

func (m *Machine) callExt(idx int, ret, args Frame) {
	if idx < 0 || idx >= len(m.ExtFuncs) || m.ExtFuncs[idx] == nil {
		stop(StopBadFunction, int32(idx))
	}
	m.ExtFuncs[idx](ret, args, m)
}
