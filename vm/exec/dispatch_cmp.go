package exec

import (
	"math"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

// execCmp handles the plain (non-branch-fused) integer and floating
// point compares. Every integer compare widens its boolean result to
// a full 32-bit register (§4.A "results always widen to i32 0/1").
func execCmp(code op.Op, c cursor, f Frame) (int, bool) {
	switch code {
	case op.EQ8, op.NE8, op.UGT8, op.UGE8, op.ULT8, op.ULE8,
		op.SGT8, op.SGE8, op.SLT8, op.SLE8:
		p := predOf8(code)
		r := cmpInt8(p, f.U8(c.regOff(1)), f.U8(c.regOff(2)))
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(3), true
	case op.EQ8C, op.NE8C, op.UGT8C, op.UGE8C, op.ULT8C, op.ULE8C,
		op.SGT8C, op.SGE8C, op.SLT8C, op.SLE8C:
		p := predOf8C(code)
		r := cmpInt8(p, f.U8(c.regOff(1)), c.u8(2))
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(3), true

	case op.EQ16, op.NE16, op.UGT16, op.UGE16, op.ULT16, op.ULE16,
		op.SGT16, op.SGE16, op.SLT16, op.SLE16:
		p := predOf16(code)
		r := cmpInt16(p, f.U16(c.regOff(1)), f.U16(c.regOff(2)))
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(3), true
	case op.EQ16C, op.NE16C, op.UGT16C, op.UGE16C, op.ULT16C, op.ULE16C,
		op.SGT16C, op.SGE16C, op.SLT16C, op.SLE16C:
		p := predOf16C(code)
		r := cmpInt16(p, f.U16(c.regOff(1)), c.u16(2))
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(3), true

	case op.EQ32, op.NE32, op.UGT32, op.UGE32, op.ULT32, op.ULE32,
		op.SGT32, op.SGE32, op.SLT32, op.SLE32:
		p := predOf32(code)
		r := cmpInt32(p, f.U32(c.regOff(1)), f.U32(c.regOff(2)))
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(3), true
	case op.EQ32C, op.NE32C, op.UGT32C, op.UGE32C, op.ULT32C, op.ULE32C,
		op.SGT32C, op.SGE32C, op.SLT32C, op.SLE32C:
		p := predOf32C(code)
		r := cmpInt32(p, f.U32(c.regOff(1)), c.u32(2))
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(4), true

	case op.EQ64, op.NE64, op.UGT64, op.UGE64, op.ULT64, op.ULE64,
		op.SGT64, op.SGE64, op.SLT64, op.SLE64:
		p := predOf64(code)
		r := cmpInt64(p, f.U64(c.regOff(1)), f.U64(c.regOff(2)))
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(3), true
	case op.EQ64C, op.NE64C, op.UGT64C, op.UGE64C, op.ULT64C, op.ULE64C,
		op.SGT64C, op.SGE64C, op.SLT64C, op.SLE64C:
		p := predOf64C(code)
		r := cmpInt64(p, f.U64(c.regOff(1)), c.u64(2))
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(6), true

	case op.FCMP_OEQ_FLT, op.FCMP_OGT_FLT, op.FCMP_OGE_FLT, op.FCMP_OLT_FLT,
		op.FCMP_OLE_FLT, op.FCMP_ONE_FLT, op.FCMP_ORD_FLT, op.FCMP_UNO_FLT,
		op.FCMP_UEQ_FLT, op.FCMP_UGT_FLT, op.FCMP_UGE_FLT, op.FCMP_ULT_FLT,
		op.FCMP_ULE_FLT, op.FCMP_UNE_FLT:
		p := predOfFlt(code)
		a := float64(f.F32(c.regOff(1)))
		b := float64(f.F32(c.regOff(2)))
		r := cmpFloat(p, a, b, math.IsNaN)
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(3), true

	case op.FCMP_OEQ_DBL, op.FCMP_OGT_DBL, op.FCMP_OGE_DBL, op.FCMP_OLT_DBL,
		op.FCMP_OLE_DBL, op.FCMP_ONE_DBL, op.FCMP_ORD_DBL, op.FCMP_UNO_DBL,
		op.FCMP_UEQ_DBL, op.FCMP_UGT_DBL, op.FCMP_UGE_DBL, op.FCMP_ULT_DBL,
		op.FCMP_ULE_DBL, op.FCMP_UNE_DBL:
		p := predOfDbl(code)
		a := f.F64(c.regOff(1))
		b := f.F64(c.regOff(2))
		r := cmpFloat(p, a, b, math.IsNaN)
		f.PutU32(c.regOff(0), boolU32(r))
		return c.next(3), true
	}
	return 0, false
}

// execCmpBranch handles the fused compare-and-branch opcodes. These
// never materialise a 0/1 result; they jump straight to one of two
// displacements (see vm/opcode's FixupShape: slots 0,1 hold the two
// targets, the compared operands start at slot 2).
func execCmpBranch(code op.Op, c cursor, f Frame) (int, bool) {
	switch code {
	case op.EQ8_BR, op.NE8_BR, op.UGT8_BR, op.UGE8_BR, op.ULT8_BR, op.ULE8_BR,
		op.SGT8_BR, op.SGE8_BR, op.SLT8_BR, op.SLE8_BR:
		p := predOf8Br(code)
		r := cmpInt8(p, f.U8(c.regOff(2)), f.U8(c.regOff(3)))
		return branchTaken(c, r), true
	case op.EQ8_C_BR, op.NE8_C_BR, op.UGT8_C_BR, op.UGE8_C_BR, op.ULT8_C_BR,
		op.ULE8_C_BR, op.SGT8_C_BR, op.SGE8_C_BR, op.SLT8_C_BR, op.SLE8_C_BR:
		p := predOf8CBr(code)
		r := cmpInt8(p, f.U8(c.regOff(2)), c.u8(3))
		return branchTaken(c, r), true

	case op.EQ32_BR, op.NE32_BR, op.UGT32_BR, op.UGE32_BR, op.ULT32_BR, op.ULE32_BR,
		op.SGT32_BR, op.SGE32_BR, op.SLT32_BR, op.SLE32_BR:
		p := predOf32Br(code)
		r := cmpInt32(p, f.U32(c.regOff(2)), f.U32(c.regOff(3)))
		return branchTaken(c, r), true
	case op.EQ32_C_BR, op.NE32_C_BR, op.UGT32_C_BR, op.UGE32_C_BR, op.ULT32_C_BR,
		op.ULE32_C_BR, op.SGT32_C_BR, op.SGE32_C_BR, op.SLT32_C_BR, op.SLE32_C_BR:
		p := predOf32CBr(code)
		r := cmpInt32(p, f.U32(c.regOff(2)), c.u32(3))
		return branchTaken(c, r), true
	}
	return 0, false
}

func branchTaken(c cursor, cond bool) int {
	if cond {
		return c.pc + c.disp(0)
	}
	return c.pc + c.disp(1)
}

func predOf8(code op.Op) ir.Pred {
	switch code {
	case op.EQ8:
		return ir.PredEQ
	case op.NE8:
		return ir.PredNE
	case op.UGT8:
		return ir.PredUGT
	case op.UGE8:
		return ir.PredUGE
	case op.ULT8:
		return ir.PredULT
	case op.ULE8:
		return ir.PredULE
	case op.SGT8:
		return ir.PredSGT
	case op.SGE8:
		return ir.PredSGE
	case op.SLT8:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf8C(code op.Op) ir.Pred {
	switch code {
	case op.EQ8C:
		return ir.PredEQ
	case op.NE8C:
		return ir.PredNE
	case op.UGT8C:
		return ir.PredUGT
	case op.UGE8C:
		return ir.PredUGE
	case op.ULT8C:
		return ir.PredULT
	case op.ULE8C:
		return ir.PredULE
	case op.SGT8C:
		return ir.PredSGT
	case op.SGE8C:
		return ir.PredSGE
	case op.SLT8C:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf16(code op.Op) ir.Pred {
	switch code {
	case op.EQ16:
		return ir.PredEQ
	case op.NE16:
		return ir.PredNE
	case op.UGT16:
		return ir.PredUGT
	case op.UGE16:
		return ir.PredUGE
	case op.ULT16:
		return ir.PredULT
	case op.ULE16:
		return ir.PredULE
	case op.SGT16:
		return ir.PredSGT
	case op.SGE16:
		return ir.PredSGE
	case op.SLT16:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf16C(code op.Op) ir.Pred {
	switch code {
	case op.EQ16C:
		return ir.PredEQ
	case op.NE16C:
		return ir.PredNE
	case op.UGT16C:
		return ir.PredUGT
	case op.UGE16C:
		return ir.PredUGE
	case op.ULT16C:
		return ir.PredULT
	case op.ULE16C:
		return ir.PredULE
	case op.SGT16C:
		return ir.PredSGT
	case op.SGE16C:
		return ir.PredSGE
	case op.SLT16C:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf32(code op.Op) ir.Pred {
	switch code {
	case op.EQ32:
		return ir.PredEQ
	case op.NE32:
		return ir.PredNE
	case op.UGT32:
		return ir.PredUGT
	case op.UGE32:
		return ir.PredUGE
	case op.ULT32:
		return ir.PredULT
	case op.ULE32:
		return ir.PredULE
	case op.SGT32:
		return ir.PredSGT
	case op.SGE32:
		return ir.PredSGE
	case op.SLT32:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf32C(code op.Op) ir.Pred {
	switch code {
	case op.EQ32C:
		return ir.PredEQ
	case op.NE32C:
		return ir.PredNE
	case op.UGT32C:
		return ir.PredUGT
	case op.UGE32C:
		return ir.PredUGE
	case op.ULT32C:
		return ir.PredULT
	case op.ULE32C:
		return ir.PredULE
	case op.SGT32C:
		return ir.PredSGT
	case op.SGE32C:
		return ir.PredSGE
	case op.SLT32C:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf64(code op.Op) ir.Pred {
	switch code {
	case op.EQ64:
		return ir.PredEQ
	case op.NE64:
		return ir.PredNE
	case op.UGT64:
		return ir.PredUGT
	case op.UGE64:
		return ir.PredUGE
	case op.ULT64:
		return ir.PredULT
	case op.ULE64:
		return ir.PredULE
	case op.SGT64:
		return ir.PredSGT
	case op.SGE64:
		return ir.PredSGE
	case op.SLT64:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf64C(code op.Op) ir.Pred {
	switch code {
	case op.EQ64C:
		return ir.PredEQ
	case op.NE64C:
		return ir.PredNE
	case op.UGT64C:
		return ir.PredUGT
	case op.UGE64C:
		return ir.PredUGE
	case op.ULT64C:
		return ir.PredULT
	case op.ULE64C:
		return ir.PredULE
	case op.SGT64C:
		return ir.PredSGT
	case op.SGE64C:
		return ir.PredSGE
	case op.SLT64C:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf8Br(code op.Op) ir.Pred {
	switch code {
	case op.EQ8_BR:
		return ir.PredEQ
	case op.NE8_BR:
		return ir.PredNE
	case op.UGT8_BR:
		return ir.PredUGT
	case op.UGE8_BR:
		return ir.PredUGE
	case op.ULT8_BR:
		return ir.PredULT
	case op.ULE8_BR:
		return ir.PredULE
	case op.SGT8_BR:
		return ir.PredSGT
	case op.SGE8_BR:
		return ir.PredSGE
	case op.SLT8_BR:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf8CBr(code op.Op) ir.Pred {
	switch code {
	case op.EQ8_C_BR:
		return ir.PredEQ
	case op.NE8_C_BR:
		return ir.PredNE
	case op.UGT8_C_BR:
		return ir.PredUGT
	case op.UGE8_C_BR:
		return ir.PredUGE
	case op.ULT8_C_BR:
		return ir.PredULT
	case op.ULE8_C_BR:
		return ir.PredULE
	case op.SGT8_C_BR:
		return ir.PredSGT
	case op.SGE8_C_BR:
		return ir.PredSGE
	case op.SLT8_C_BR:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf32Br(code op.Op) ir.Pred {
	switch code {
	case op.EQ32_BR:
		return ir.PredEQ
	case op.NE32_BR:
		return ir.PredNE
	case op.UGT32_BR:
		return ir.PredUGT
	case op.UGE32_BR:
		return ir.PredUGE
	case op.ULT32_BR:
		return ir.PredULT
	case op.ULE32_BR:
		return ir.PredULE
	case op.SGT32_BR:
		return ir.PredSGT
	case op.SGE32_BR:
		return ir.PredSGE
	case op.SLT32_BR:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOf32CBr(code op.Op) ir.Pred {
	switch code {
	case op.EQ32_C_BR:
		return ir.PredEQ
	case op.NE32_C_BR:
		return ir.PredNE
	case op.UGT32_C_BR:
		return ir.PredUGT
	case op.UGE32_C_BR:
		return ir.PredUGE
	case op.ULT32_C_BR:
		return ir.PredULT
	case op.ULE32_C_BR:
		return ir.PredULE
	case op.SGT32_C_BR:
		return ir.PredSGT
	case op.SGE32_C_BR:
		return ir.PredSGE
	case op.SLT32_C_BR:
		return ir.PredSLT
	default:
		return ir.PredSLE
	}
}

func predOfFlt(code op.Op) ir.Pred {
	switch code {
	case op.FCMP_OEQ_FLT:
		return ir.PredOEQ
	case op.FCMP_OGT_FLT:
		return ir.PredOGT
	case op.FCMP_OGE_FLT:
		return ir.PredOGE
	case op.FCMP_OLT_FLT:
		return ir.PredOLT
	case op.FCMP_OLE_FLT:
		return ir.PredOLE
	case op.FCMP_ONE_FLT:
		return ir.PredONE
	case op.FCMP_ORD_FLT:
		return ir.PredORD
	case op.FCMP_UNO_FLT:
		return ir.PredUNO
	case op.FCMP_UEQ_FLT:
		return ir.PredUEQ
	case op.FCMP_UGT_FLT:
		return ir.PredUGTF
	case op.FCMP_UGE_FLT:
		return ir.PredUGEF
	case op.FCMP_ULT_FLT:
		return ir.PredULTF
	case op.FCMP_ULE_FLT:
		return ir.PredULEF
	default:
		return ir.PredUNE
	}
}

func predOfDbl(code op.Op) ir.Pred {
	switch code {
	case op.FCMP_OEQ_DBL:
		return ir.PredOEQ
	case op.FCMP_OGT_DBL:
		return ir.PredOGT
	case op.FCMP_OGE_DBL:
		return ir.PredOGE
	case op.FCMP_OLT_DBL:
		return ir.PredOLT
	case op.FCMP_OLE_DBL:
		return ir.PredOLE
	case op.FCMP_ONE_DBL:
		return ir.PredONE
	case op.FCMP_ORD_DBL:
		return ir.PredORD
	case op.FCMP_UNO_DBL:
		return ir.PredUNO
	case op.FCMP_UEQ_DBL:
		return ir.PredUEQ
	case op.FCMP_UGT_DBL:
		return ir.PredUGTF
	case op.FCMP_UGE_DBL:
		return ir.PredUGEF
	case op.FCMP_ULT_DBL:
		return ir.PredULTF
	case op.FCMP_ULE_DBL:
		return ir.PredULEF
	default:
		return ir.PredUNE
	}
}
