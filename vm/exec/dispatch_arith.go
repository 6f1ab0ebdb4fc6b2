package exec

import (
	op "ssavm/vm/opcode"
)

func (m *Machine) dispatchArith(code op.Op, c cursor, f Frame, allocaptr *uint32) int {
	if pc, ok := execArith(code, c, f); ok {
		return pc
	}
	if pc, ok := execCmp(code, c, f); ok {
		return pc
	}
	if pc, ok := execCmpBranch(code, c, f); ok {
		return pc
	}
	if pc, ok := execMem(code, c, f); ok {
		return pc
	}
	if pc, ok := execCast(code, c, f); ok {
		return pc
	}
	if pc, ok := execMoveSelect(code, c, f); ok {
		return pc
	}
	if pc, ok := execStack(code, c, f, allocaptr); ok {
		return pc
	}
	if pc, ok := execIntrinsic(code, c, f); ok {
		return pc
	}
	stop(StopBadInstruction, int32(code))
	return 0
}

func execArith(code op.Op, c cursor, f Frame) (int, bool) {
	switch code {

	// 8-bit register/register and register/immediate.
	case op.ADD_R8, op.SUB_R8, op.MUL_R8, op.UDIV_R8, op.SDIV_R8,
		op.UREM_R8, op.SREM_R8, op.SHL_R8, op.LSHR_R8, op.ASHR_R8,
		op.AND_R8, op.OR_R8, op.XOR_R8:
		o := binopOf8(code)
		f.PutU8(c.regOff(0), apply8(o, f.U8(c.regOff(1)), f.U8(c.regOff(2))))
		return c.next(3), true
	case op.ADD_R8C, op.SUB_R8C, op.MUL_R8C, op.UDIV_R8C, op.SDIV_R8C,
		op.UREM_R8C, op.SREM_R8C, op.SHL_R8C, op.LSHR_R8C, op.ASHR_R8C,
		op.AND_R8C, op.OR_R8C, op.XOR_R8C:
		o := binopOf8C(code)
		f.PutU8(c.regOff(0), apply8(o, f.U8(c.regOff(1)), c.u8(2)))
		return c.next(3), true

	// 16-bit.
	case op.ADD_R16, op.SUB_R16, op.MUL_R16, op.UDIV_R16, op.SDIV_R16,
		op.UREM_R16, op.SREM_R16, op.SHL_R16, op.LSHR_R16, op.ASHR_R16,
		op.AND_R16, op.OR_R16, op.XOR_R16:
		o := binopOf16(code)
		f.PutU16(c.regOff(0), apply16(o, f.U16(c.regOff(1)), f.U16(c.regOff(2))))
		return c.next(3), true
	case op.ADD_R16C, op.SUB_R16C, op.MUL_R16C, op.UDIV_R16C, op.SDIV_R16C,
		op.UREM_R16C, op.SREM_R16C, op.SHL_R16C, op.LSHR_R16C, op.ASHR_R16C,
		op.AND_R16C, op.OR_R16C, op.XOR_R16C:
		o := binopOf16C(code)
		f.PutU16(c.regOff(0), apply16(o, f.U16(c.regOff(1)), c.u16(2)))
		return c.next(3), true

	// 32-bit base forms.
	case op.ADD_R32, op.SUB_R32, op.MUL_R32, op.UDIV_R32, op.SDIV_R32,
		op.UREM_R32, op.SREM_R32, op.SHL_R32, op.LSHR_R32, op.ASHR_R32,
		op.AND_R32, op.OR_R32, op.XOR_R32:
		o := binopOf32(code)
		f.PutU32(c.regOff(0), apply32(o, f.U32(c.regOff(1)), f.U32(c.regOff(2))))
		return c.next(3), true
	case op.ADD_R32C, op.SUB_R32C, op.MUL_R32C, op.UDIV_R32C, op.SDIV_R32C,
		op.UREM_R32C, op.SREM_R32C, op.SHL_R32C, op.LSHR_R32C, op.ASHR_R32C,
		op.AND_R32C, op.OR_R32C, op.XOR_R32C:
		o := binopOf32C(code)
		f.PutU32(c.regOff(0), apply32(o, f.U32(c.regOff(1)), c.u32(2)))
		return c.next(4), true
	case op.INC_R32:
		f.PutU32(c.regOff(0), f.U32(c.regOff(1))+1)
		return c.next(2), true
	case op.DEC_R32:
		f.PutU32(c.regOff(0), f.U32(c.regOff(1))-1)
		return c.next(2), true

	// 32-bit accumulator specialisations: lhs is always ACC.
	case op.ADD_ACC_R32, op.SUB_ACC_R32, op.MUL_ACC_R32, op.UDIV_ACC_R32,
		op.SDIV_ACC_R32, op.UREM_ACC_R32, op.SREM_ACC_R32, op.SHL_ACC_R32,
		op.LSHR_ACC_R32, op.ASHR_ACC_R32, op.AND_ACC_R32, op.OR_ACC_R32,
		op.XOR_ACC_R32:
		o := binopOfAcc32(code)
		f.PutU32(c.regOff(0), apply32(o, f.AccU32(), f.U32(c.regOff(1))))
		return c.next(2), true
	case op.ADD_ACC_R32C, op.SUB_ACC_R32C, op.MUL_ACC_R32C, op.UDIV_ACC_R32C,
		op.SDIV_ACC_R32C, op.UREM_ACC_R32C, op.SREM_ACC_R32C, op.SHL_ACC_R32C,
		op.LSHR_ACC_R32C, op.ASHR_ACC_R32C, op.AND_ACC_R32C, op.OR_ACC_R32C,
		op.XOR_ACC_R32C:
		o := binopOfAccC32(code)
		f.PutU32(c.regOff(0), apply32(o, f.AccU32(), c.u32(1)))
		return c.next(3), true

	// 32-bit both-ACC specialisations: lhs and dst are both ACC.
	case op.ADD_2ACC_R32, op.SUB_2ACC_R32, op.MUL_2ACC_R32, op.UDIV_2ACC_R32,
		op.SDIV_2ACC_R32, op.UREM_2ACC_R32, op.SREM_2ACC_R32, op.SHL_2ACC_R32,
		op.LSHR_2ACC_R32, op.ASHR_2ACC_R32, op.AND_2ACC_R32, op.OR_2ACC_R32,
		op.XOR_2ACC_R32:
		o := binopOf2Acc32(code)
		f.PutAccU32(apply32(o, f.AccU32(), f.U32(c.regOff(0))))
		return c.next(1), true

	// 64-bit.
	case op.ADD_R64, op.SUB_R64, op.MUL_R64, op.UDIV_R64, op.SDIV_R64,
		op.UREM_R64, op.SREM_R64, op.SHL_R64, op.LSHR_R64, op.ASHR_R64,
		op.AND_R64, op.OR_R64, op.XOR_R64:
		o := binopOf64(code)
		f.PutU64(c.regOff(0), apply64(o, f.U64(c.regOff(1)), f.U64(c.regOff(2))))
		return c.next(3), true
	case op.ADD_R64C, op.SUB_R64C, op.MUL_R64C, op.UDIV_R64C, op.SDIV_R64C,
		op.UREM_R64C, op.SREM_R64C, op.SHL_R64C, op.LSHR_R64C, op.ASHR_R64C,
		op.AND_R64C, op.OR_R64C, op.XOR_R64C:
		o := binopOf64C(code)
		f.PutU64(c.regOff(0), apply64(o, f.U64(c.regOff(1)), c.u64(2)))
		return c.next(6), true

	case op.MLA32:
		a := f.U32(c.regOff(1))
		b := f.U32(c.regOff(2))
		cc := f.U32(c.regOff(3))
		f.PutU32(c.regOff(0), a*b+cc)
		return c.next(4), true

	// Floating point.
	case op.ADD_FLT:
		f.PutF32(c.regOff(0), f.F32(c.regOff(1))+f.F32(c.regOff(2)))
		return c.next(3), true
	case op.SUB_FLT:
		f.PutF32(c.regOff(0), f.F32(c.regOff(1))-f.F32(c.regOff(2)))
		return c.next(3), true
	case op.MUL_FLT:
		f.PutF32(c.regOff(0), f.F32(c.regOff(1))*f.F32(c.regOff(2)))
		return c.next(3), true
	case op.DIV_FLT:
		f.PutF32(c.regOff(0), f.F32(c.regOff(1))/f.F32(c.regOff(2)))
		return c.next(3), true
	case op.ADD_FLTC:
		f.PutF32(c.regOff(0), f.F32(c.regOff(1))+c.f32(2))
		return c.next(4), true
	case op.SUB_FLTC:
		f.PutF32(c.regOff(0), f.F32(c.regOff(1))-c.f32(2))
		return c.next(4), true
	case op.MUL_FLTC:
		f.PutF32(c.regOff(0), f.F32(c.regOff(1))*c.f32(2))
		return c.next(4), true
	case op.DIV_FLTC:
		f.PutF32(c.regOff(0), f.F32(c.regOff(1))/c.f32(2))
		return c.next(4), true

	case op.ADD_DBL:
		f.PutF64(c.regOff(0), f.F64(c.regOff(1))+f.F64(c.regOff(2)))
		return c.next(3), true
	case op.SUB_DBL:
		f.PutF64(c.regOff(0), f.F64(c.regOff(1))-f.F64(c.regOff(2)))
		return c.next(3), true
	case op.MUL_DBL:
		f.PutF64(c.regOff(0), f.F64(c.regOff(1))*f.F64(c.regOff(2)))
		return c.next(3), true
	case op.DIV_DBL:
		f.PutF64(c.regOff(0), f.F64(c.regOff(1))/f.F64(c.regOff(2)))
		return c.next(3), true
	case op.ADD_DBLC:
		f.PutF64(c.regOff(0), f.F64(c.regOff(1))+c.f64(2))
		return c.next(6), true
	case op.SUB_DBLC:
		f.PutF64(c.regOff(0), f.F64(c.regOff(1))-c.f64(2))
		return c.next(6), true
	case op.MUL_DBLC:
		f.PutF64(c.regOff(0), f.F64(c.regOff(1))*c.f64(2))
		return c.next(6), true
	case op.DIV_DBLC:
		f.PutF64(c.regOff(0), f.F64(c.regOff(1))/c.f64(2))
		return c.next(6), true
	}
	return 0, false
}

func binopOf8(code op.Op) binOp {
	switch code {
	case op.ADD_R8:
		return opAdd
	case op.SUB_R8:
		return opSub
	case op.MUL_R8:
		return opMul
	case op.UDIV_R8:
		return opUDiv
	case op.SDIV_R8:
		return opSDiv
	case op.UREM_R8:
		return opURem
	case op.SREM_R8:
		return opSRem
	case op.SHL_R8:
		return opShl
	case op.LSHR_R8:
		return opLShr
	case op.ASHR_R8:
		return opAShr
	case op.AND_R8:
		return opAnd
	case op.OR_R8:
		return opOr
	default:
		return opXor
	}
}

func binopOf8C(code op.Op) binOp {
	switch code {
	case op.ADD_R8C:
		return opAdd
	case op.SUB_R8C:
		return opSub
	case op.MUL_R8C:
		return opMul
	case op.UDIV_R8C:
		return opUDiv
	case op.SDIV_R8C:
		return opSDiv
	case op.UREM_R8C:
		return opURem
	case op.SREM_R8C:
		return opSRem
	case op.SHL_R8C:
		return opShl
	case op.LSHR_R8C:
		return opLShr
	case op.ASHR_R8C:
		return opAShr
	case op.AND_R8C:
		return opAnd
	case op.OR_R8C:
		return opOr
	default:
		return opXor
	}
}

func binopOf16(code op.Op) binOp {
	switch code {
	case op.ADD_R16:
		return opAdd
	case op.SUB_R16:
		return opSub
	case op.MUL_R16:
		return opMul
	case op.UDIV_R16:
		return opUDiv
	case op.SDIV_R16:
		return opSDiv
	case op.UREM_R16:
		return opURem
	case op.SREM_R16:
		return opSRem
	case op.SHL_R16:
		return opShl
	case op.LSHR_R16:
		return opLShr
	case op.ASHR_R16:
		return opAShr
	case op.AND_R16:
		return opAnd
	case op.OR_R16:
		return opOr
	default:
		return opXor
	}
}

func binopOf16C(code op.Op) binOp {
	switch code {
	case op.ADD_R16C:
		return opAdd
	case op.SUB_R16C:
		return opSub
	case op.MUL_R16C:
		return opMul
	case op.UDIV_R16C:
		return opUDiv
	case op.SDIV_R16C:
		return opSDiv
	case op.UREM_R16C:
		return opURem
	case op.SREM_R16C:
		return opSRem
	case op.SHL_R16C:
		return opShl
	case op.LSHR_R16C:
		return opLShr
	case op.ASHR_R16C:
		return opAShr
	case op.AND_R16C:
		return opAnd
	case op.OR_R16C:
		return opOr
	default:
		return opXor
	}
}

func binopOf32(code op.Op) binOp {
	switch code {
	case op.ADD_R32:
		return opAdd
	case op.SUB_R32:
		return opSub
	case op.MUL_R32:
		return opMul
	case op.UDIV_R32:
		return opUDiv
	case op.SDIV_R32:
		return opSDiv
	case op.UREM_R32:
		return opURem
	case op.SREM_R32:
		return opSRem
	case op.SHL_R32:
		return opShl
	case op.LSHR_R32:
		return opLShr
	case op.ASHR_R32:
		return opAShr
	case op.AND_R32:
		return opAnd
	case op.OR_R32:
		return opOr
	default:
		return opXor
	}
}

func binopOf32C(code op.Op) binOp {
	switch code {
	case op.ADD_R32C:
		return opAdd
	case op.SUB_R32C:
		return opSub
	case op.MUL_R32C:
		return opMul
	case op.UDIV_R32C:
		return opUDiv
	case op.SDIV_R32C:
		return opSDiv
	case op.UREM_R32C:
		return opURem
	case op.SREM_R32C:
		return opSRem
	case op.SHL_R32C:
		return opShl
	case op.LSHR_R32C:
		return opLShr
	case op.ASHR_R32C:
		return opAShr
	case op.AND_R32C:
		return opAnd
	case op.OR_R32C:
		return opOr
	default:
		return opXor
	}
}

func binopOfAcc32(code op.Op) binOp {
	switch code {
	case op.ADD_ACC_R32:
		return opAdd
	case op.SUB_ACC_R32:
		return opSub
	case op.MUL_ACC_R32:
		return opMul
	case op.UDIV_ACC_R32:
		return opUDiv
	case op.SDIV_ACC_R32:
		return opSDiv
	case op.UREM_ACC_R32:
		return opURem
	case op.SREM_ACC_R32:
		return opSRem
	case op.SHL_ACC_R32:
		return opShl
	case op.LSHR_ACC_R32:
		return opLShr
	case op.ASHR_ACC_R32:
		return opAShr
	case op.AND_ACC_R32:
		return opAnd
	case op.OR_ACC_R32:
		return opOr
	default:
		return opXor
	}
}

func binopOfAccC32(code op.Op) binOp {
	switch code {
	case op.ADD_ACC_R32C:
		return opAdd
	case op.SUB_ACC_R32C:
		return opSub
	case op.MUL_ACC_R32C:
		return opMul
	case op.UDIV_ACC_R32C:
		return opUDiv
	case op.SDIV_ACC_R32C:
		return opSDiv
	case op.UREM_ACC_R32C:
		return opURem
	case op.SREM_ACC_R32C:
		return opSRem
	case op.SHL_ACC_R32C:
		return opShl
	case op.LSHR_ACC_R32C:
		return opLShr
	case op.ASHR_ACC_R32C:
		return opAShr
	case op.AND_ACC_R32C:
		return opAnd
	case op.OR_ACC_R32C:
		return opOr
	default:
		return opXor
	}
}

func binopOf2Acc32(code op.Op) binOp {
	switch code {
	case op.ADD_2ACC_R32:
		return opAdd
	case op.SUB_2ACC_R32:
		return opSub
	case op.MUL_2ACC_R32:
		return opMul
	case op.UDIV_2ACC_R32:
		return opUDiv
	case op.SDIV_2ACC_R32:
		return opSDiv
	case op.UREM_2ACC_R32:
		return opURem
	case op.SREM_2ACC_R32:
		return opSRem
	case op.SHL_2ACC_R32:
		return opShl
	case op.LSHR_2ACC_R32:
		return opLShr
	case op.ASHR_2ACC_R32:
		return opAShr
	case op.AND_2ACC_R32:
		return opAnd
	case op.OR_2ACC_R32:
		return opOr
	default:
		return opXor
	}
}

func binopOf64(code op.Op) binOp {
	switch code {
	case op.ADD_R64:
		return opAdd
	case op.SUB_R64:
		return opSub
	case op.MUL_R64:
		return opMul
	case op.UDIV_R64:
		return opUDiv
	case op.SDIV_R64:
		return opSDiv
	case op.UREM_R64:
		return opURem
	case op.SREM_R64:
		return opSRem
	case op.SHL_R64:
		return opShl
	case op.LSHR_R64:
		return opLShr
	case op.ASHR_R64:
		return opAShr
	case op.AND_R64:
		return opAnd
	case op.OR_R64:
		return opOr
	default:
		return opXor
	}
}

func binopOf64C(code op.Op) binOp {
	switch code {
	case op.ADD_R64C:
		return opAdd
	case op.SUB_R64C:
		return opSub
	case op.MUL_R64C:
		return opMul
	case op.UDIV_R64C:
		return opUDiv
	case op.SDIV_R64C:
		return opSDiv
	case op.UREM_R64C:
		return opURem
	case op.SREM_R64C:
		return opSRem
	case op.SHL_R64C:
		return opShl
	case op.LSHR_R64C:
		return opLShr
	case op.ASHR_R64C:
		return opAShr
	case op.AND_R64C:
		return opAnd
	case op.OR_R64C:
		return opOr
	default:
		return opXor
	}
}
