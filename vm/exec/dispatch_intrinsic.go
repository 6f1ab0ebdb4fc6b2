package exec

import (
	"bytes"
	"math"
	"math/bits"

	op "ssavm/vm/opcode"
)

// execIntrinsic handles the libc-ish memory/string helpers, bit-count
// intrinsics, the math library subset, and the varargs opcodes. f.RF
// is the callee's absolute frame base, needed by VASTART/VAARG to
// address the guest-memory va_list cell directly.
func execIntrinsic(code op.Op, c cursor, f Frame) (int, bool) {
	switch code {
	case op.MEMCPY:
		dst := f.U32(c.regOff(1))
		src := f.U32(c.regOff(2))
		n := f.U32(c.regOff(3))
		copyGuest(f, dst, src, n)
		f.PutU32(c.regOff(0), dst)
		return c.next(4), true
	case op.MEMSET:
		dst := f.U32(c.regOff(1))
		v := byte(f.U32(c.regOff(2)))
		n := f.U32(c.regOff(3))
		fillGuest(f, dst, v, n)
		f.PutU32(c.regOff(0), dst)
		return c.next(4), true
	case op.MEMMOVE:
		dst := f.U32(c.regOff(1))
		src := f.U32(c.regOff(2))
		n := f.U32(c.regOff(3))
		moveGuest(f, dst, src, n)
		f.PutU32(c.regOff(0), dst)
		return c.next(4), true

	case op.MEMCPY_LLVM:
		dst := f.U32(c.regOff(0))
		src := f.U32(c.regOff(1))
		n := f.U32(c.regOff(2))
		copyGuest(f, dst, src, n)
		return c.next(3), true
	case op.MEMSET_LLVM:
		dst := f.U32(c.regOff(0))
		v := f.U8(c.regOff(1))
		n := f.U32(c.regOff(2))
		fillGuest(f, dst, v, n)
		return c.next(3), true
	case op.MEMMOVE_LLVM:
		dst := f.U32(c.regOff(0))
		src := f.U32(c.regOff(1))
		n := f.U32(c.regOff(2))
		moveGuest(f, dst, src, n)
		return c.next(3), true

	case op.MEMCMP:
		a := f.U32(c.regOff(1))
		b := f.U32(c.regOff(2))
		n := f.U32(c.regOff(3))
		f.PutU32(c.regOff(0), uint32(int32(bytes.Compare(f.Mem[a:a+n], f.Mem[b:b+n]))))
		return c.next(4), true

	case op.STRCPY:
		dst := f.U32(c.regOff(1))
		src := f.U32(c.regOff(2))
		s := cString(f.Mem, src)
		copy(f.Mem[dst:], s)
		f.Mem[dst+uint32(len(s))] = 0
		f.PutU32(c.regOff(0), dst)
		return c.next(3), true
	case op.STRNCPY:
		dst := f.U32(c.regOff(1))
		src := f.U32(c.regOff(2))
		n := f.U32(c.regOff(3))
		s := cString(f.Mem, src)
		m := uint32(len(s))
		if m > n {
			m = n
		}
		copy(f.Mem[dst:dst+m], s[:m])
		for i := m; i < n; i++ {
			f.Mem[dst+i] = 0
		}
		f.PutU32(c.regOff(0), dst)
		return c.next(4), true
	case op.STRCMP:
		a := cString(f.Mem, f.U32(c.regOff(1)))
		b := cString(f.Mem, f.U32(c.regOff(2)))
		f.PutU32(c.regOff(0), uint32(int32(bytes.Compare(a, b))))
		return c.next(3), true
	case op.STRNCMP:
		n := f.U32(c.regOff(3))
		a := boundedPrefix(cString(f.Mem, f.U32(c.regOff(1))), n)
		b := boundedPrefix(cString(f.Mem, f.U32(c.regOff(2))), n)
		f.PutU32(c.regOff(0), uint32(int32(bytes.Compare(a, b))))
		return c.next(4), true
	case op.STRCHR:
		s := f.U32(c.regOff(1))
		ch := byte(f.U32(c.regOff(2)))
		f.PutU32(c.regOff(0), strIndex(f.Mem, s, ch, false))
		return c.next(3), true
	case op.STRRCHR:
		s := f.U32(c.regOff(1))
		ch := byte(f.U32(c.regOff(2)))
		f.PutU32(c.regOff(0), strIndex(f.Mem, s, ch, true))
		return c.next(3), true
	case op.STRLEN:
		f.PutU32(c.regOff(0), uint32(len(cString(f.Mem, f.U32(c.regOff(1))))))
		return c.next(2), true

	case op.VASTART:
		dst := f.U32(c.regOff(0))
		cursorAddr := uint32(f.RF) + uint32(f.S32(c.regOff(1)))
		absFrame(f, dst).PutU32(0, cursorAddr)
		return c.next(2), true
	case op.VAARG32:
		cell := f.U32(c.regOff(1))
		ptr := absFrame(f, cell).U32(0) - 4
		f.PutU32(c.regOff(0), m0u32(f, ptr))
		absFrame(f, cell).PutU32(0, ptr)
		return c.next(2), true
	case op.VAARG64:
		cell := f.U32(c.regOff(1))
		ptr := absFrame(f, cell).U32(0) - 8
		f.PutU64(c.regOff(0), m0u64(f, ptr))
		absFrame(f, cell).PutU32(0, ptr)
		return c.next(2), true
	case op.VACOPY:
		dst := f.U32(c.regOff(0))
		src := f.U32(c.regOff(1))
		absFrame(f, dst).PutU32(0, absFrame(f, src).U32(0))
		return c.next(2), true

	case op.CTZ32:
		f.PutU32(c.regOff(0), uint32(bits.TrailingZeros32(f.U32(c.regOff(1)))))
		return c.next(2), true
	case op.CLZ32:
		f.PutU32(c.regOff(0), uint32(bits.LeadingZeros32(f.U32(c.regOff(1)))))
		return c.next(2), true
	case op.POP32:
		f.PutU32(c.regOff(0), uint32(bits.OnesCount32(f.U32(c.regOff(1)))))
		return c.next(2), true
	case op.CTZ64:
		f.PutU64(c.regOff(0), uint64(bits.TrailingZeros64(f.U64(c.regOff(1)))))
		return c.next(2), true
	case op.CLZ64:
		f.PutU64(c.regOff(0), uint64(bits.LeadingZeros64(f.U64(c.regOff(1)))))
		return c.next(2), true
	case op.POP64:
		f.PutU64(c.regOff(0), uint64(bits.OnesCount64(f.U64(c.regOff(1)))))
		return c.next(2), true

	case op.UADDO32:
		a := f.U32(c.regOff(2))
		b := f.U32(c.regOff(3))
		sum, carry := bits.Add32(a, b, 0)
		f.PutU32(c.regOff(0), sum)
		f.PutU32(c.regOff(1), carry)
		return c.next(4), true

	case op.ABS:
		v := f.S32(c.regOff(1))
		if v < 0 {
			v = -v
		}
		f.PutU32(c.regOff(0), uint32(v))
		return c.next(2), true

	case op.FLOOR:
		f.PutF64(c.regOff(0), math.Floor(f.F64(c.regOff(1))))
		return c.next(2), true
	case op.FLOORF:
		f.PutF32(c.regOff(0), float32(math.Floor(float64(f.F32(c.regOff(1))))))
		return c.next(2), true
	case op.SIN:
		f.PutF64(c.regOff(0), math.Sin(f.F64(c.regOff(1))))
		return c.next(2), true
	case op.SINF:
		f.PutF32(c.regOff(0), float32(math.Sin(float64(f.F32(c.regOff(1))))))
		return c.next(2), true
	case op.COS:
		f.PutF64(c.regOff(0), math.Cos(f.F64(c.regOff(1))))
		return c.next(2), true
	case op.COSF:
		f.PutF32(c.regOff(0), float32(math.Cos(float64(f.F32(c.regOff(1))))))
		return c.next(2), true
	case op.POW:
		f.PutF64(c.regOff(0), math.Pow(f.F64(c.regOff(1)), f.F64(c.regOff(2))))
		return c.next(3), true
	case op.POWF:
		r := math.Pow(float64(f.F32(c.regOff(1))), float64(f.F32(c.regOff(2))))
		f.PutF32(c.regOff(0), float32(r))
		return c.next(3), true
	case op.FABS:
		f.PutF64(c.regOff(0), math.Abs(f.F64(c.regOff(1))))
		return c.next(2), true
	case op.FABSF:
		f.PutF32(c.regOff(0), float32(math.Abs(float64(f.F32(c.regOff(1))))))
		return c.next(2), true
	case op.FMOD:
		f.PutF64(c.regOff(0), math.Mod(f.F64(c.regOff(1)), f.F64(c.regOff(2))))
		return c.next(3), true
	case op.FMODF:
		r := math.Mod(float64(f.F32(c.regOff(1))), float64(f.F32(c.regOff(2))))
		f.PutF32(c.regOff(0), float32(r))
		return c.next(3), true
	case op.LOG10:
		f.PutF64(c.regOff(0), math.Log10(f.F64(c.regOff(1))))
		return c.next(2), true
	case op.LOG10F:
		f.PutF32(c.regOff(0), float32(math.Log10(float64(f.F32(c.regOff(1))))))
		return c.next(2), true
	}
	return 0, false
}

func fillGuest(f Frame, dst uint32, v byte, n uint32) {
	buf := f.Mem[dst : dst+n]
	for i := range buf {
		buf[i] = v
	}
}

func moveGuest(f Frame, dst, src, n uint32) {
	copy(f.Mem[dst:dst+n], f.Mem[src:src+n])
}

// cString returns the NUL-terminated byte slice in guest memory
// starting at addr, not including the terminator.
func cString(mem []byte, addr uint32) []byte {
	end := addr
	for mem[end] != 0 {
		end++
	}
	return mem[addr:end]
}

func boundedPrefix(s []byte, n uint32) []byte {
	if uint32(len(s)) > n {
		return s[:n]
	}
	return s
}

// strIndex mirrors strchr/strrchr, including the C convention that
// searching for the terminator itself matches the NUL byte's position.
func strIndex(mem []byte, addr uint32, ch byte, last bool) uint32 {
	s := cString(mem, addr)
	found := int(-1)
	for i := 0; i <= len(s); i++ {
		var b byte
		if i == len(s) {
			b = 0
		} else {
			b = s[i]
		}
		if b == ch {
			found = i
			if !last {
				break
			}
		}
	}
	if found < 0 {
		return 0
	}
	return addr + uint32(found)
}
