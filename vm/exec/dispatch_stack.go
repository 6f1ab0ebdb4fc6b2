package exec

import op "ssavm/vm/opcode"

// alignUp rounds x up to the next multiple of a, which must be a
// power of two (the alignments the emitter ever requests - 1, 4, 8,
// 16).
func alignUp(x, a uint32) uint32 {
	if a == 0 {
		return x
	}
	return (x + a - 1) &^ (a - 1)
}

// execStack handles the alloca family and the stack-save/restore/copy
// opcodes that manage the bump allocator living above the register
// frame. allocaptr is threaded by the caller (see run's by-value
// recursion contract in dispatch.go).
func execStack(code op.Op, c cursor, f Frame, allocaptr *uint32) (int, bool) {
	switch code {
	case op.ALLOCA:
		align := uint32(c.slot(1))
		*allocaptr = alignUp(*allocaptr, align)
		f.PutU32(c.regOff(0), *allocaptr)
		*allocaptr += c.u32(2)
		return c.next(4), true

	case op.ALLOCAD:
		align := uint32(c.slot(1))
		*allocaptr = alignUp(*allocaptr, align)
		r := *allocaptr
		count := f.U32(c.regOff(2))
		*allocaptr += c.u32(3) * count
		f.PutU32(c.regOff(0), r)
		return c.next(5), true

	case op.STACKSHRINK:
		*allocaptr -= c.u32(0)
		return c.next(2), true

	case op.STACKSAVE:
		f.PutU32(c.regOff(0), *allocaptr)
		return c.next(1), true

	case op.STACKRESTORE:
		*allocaptr = f.U32(c.regOff(0))
		return c.next(1), true

	case op.STACKCOPYR:
		*allocaptr = alignUp(*allocaptr, 4)
		r := *allocaptr
		f.PutU32(c.regOff(0), r)
		n := c.u32(2)
		src := f.U32(c.regOff(1))
		copyGuest(f, r, src, n)
		*allocaptr += n
		return c.next(4), true

	case op.STACKCOPYC:
		*allocaptr = alignUp(*allocaptr, 4)
		r := *allocaptr
		f.PutU32(c.regOff(0), r)
		src := c.u32(1)
		n := c.u32(3)
		copyGuest(f, r, src, n)
		*allocaptr += n
		return c.next(5), true
	}
	return 0, false
}

func copyGuest(f Frame, dst, src, n uint32) {
	copy(f.Mem[dst:dst+n], f.Mem[src:src+n])
}
