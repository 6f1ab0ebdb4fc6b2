package exec

import op "ssavm/vm/opcode"

// execCast handles the closed set of integer/float conversion
// opcodes. Every variant reads one source operand at slot 1 and
// writes its converted result to slot 0; none carry an immediate, so
// every case advances by exactly 2 slots.
func execCast(code op.Op, c cursor, f Frame) (int, bool) {
	switch code {
	case op.CAST_8_TRUNC_16:
		f.PutU8(c.regOff(0), uint8(f.U16(c.regOff(1))))
	case op.CAST_8_TRUNC_32:
		f.PutU8(c.regOff(0), uint8(f.U32(c.regOff(1))))
	case op.CAST_8_TRUNC_64:
		f.PutU8(c.regOff(0), uint8(f.U64(c.regOff(1))))
	case op.CAST_16_TRUNC_32:
		f.PutU16(c.regOff(0), uint16(f.U32(c.regOff(1))))
	case op.CAST_16_TRUNC_64:
		f.PutU16(c.regOff(0), uint16(f.U64(c.regOff(1))))
	case op.CAST_32_TRUNC_64:
		f.PutU32(c.regOff(0), uint32(f.U64(c.regOff(1))))

	case op.CAST_16_ZEXT_8:
		f.PutU16(c.regOff(0), uint16(f.U8(c.regOff(1))))
	case op.CAST_32_ZEXT_8:
		f.PutU32(c.regOff(0), uint32(f.U8(c.regOff(1))))
	case op.CAST_32_ZEXT_16:
		f.PutU32(c.regOff(0), uint32(f.U16(c.regOff(1))))
	case op.CAST_64_ZEXT_8:
		f.PutU64(c.regOff(0), uint64(f.U8(c.regOff(1))))
	case op.CAST_64_ZEXT_16:
		f.PutU64(c.regOff(0), uint64(f.U16(c.regOff(1))))
	case op.CAST_64_ZEXT_32:
		f.PutU64(c.regOff(0), uint64(f.U32(c.regOff(1))))

	case op.CAST_16_SEXT_8:
		f.PutS16(c.regOff(0), int16(f.S8(c.regOff(1))))
	case op.CAST_32_SEXT_8:
		f.PutS32(c.regOff(0), int32(f.S8(c.regOff(1))))
	case op.CAST_32_SEXT_16:
		f.PutS32(c.regOff(0), int32(f.S16(c.regOff(1))))
	case op.CAST_64_SEXT_8:
		f.PutS64(c.regOff(0), int64(f.S8(c.regOff(1))))
	case op.CAST_64_SEXT_16:
		f.PutS64(c.regOff(0), int64(f.S16(c.regOff(1))))
	case op.CAST_64_SEXT_32:
		f.PutS64(c.regOff(0), int64(f.S32(c.regOff(1))))

	case op.CAST_32_FPTOSI_FLT:
		f.PutS32(c.regOff(0), int32(f.F32(c.regOff(1))))
	case op.CAST_32_FPTOSI_DBL:
		f.PutS32(c.regOff(0), int32(f.F64(c.regOff(1))))
	case op.CAST_64_FPTOSI_FLT:
		f.PutS64(c.regOff(0), int64(f.F32(c.regOff(1))))
	case op.CAST_64_FPTOSI_DBL:
		f.PutS64(c.regOff(0), int64(f.F64(c.regOff(1))))
	case op.CAST_32_FPTOUI_FLT:
		f.PutU32(c.regOff(0), uint32(f.F32(c.regOff(1))))
	case op.CAST_32_FPTOUI_DBL:
		f.PutU32(c.regOff(0), uint32(f.F64(c.regOff(1))))
	case op.CAST_64_FPTOUI_FLT:
		f.PutU64(c.regOff(0), uint64(f.F32(c.regOff(1))))
	case op.CAST_64_FPTOUI_DBL:
		f.PutU64(c.regOff(0), uint64(f.F64(c.regOff(1))))

	case op.CAST_FLT_SITOFP_32:
		f.PutF32(c.regOff(0), float32(f.S32(c.regOff(1))))
	case op.CAST_DBL_SITOFP_32:
		f.PutF64(c.regOff(0), float64(f.S32(c.regOff(1))))
	case op.CAST_FLT_SITOFP_64:
		f.PutF32(c.regOff(0), float32(f.S64(c.regOff(1))))
	case op.CAST_DBL_SITOFP_64:
		f.PutF64(c.regOff(0), float64(f.S64(c.regOff(1))))
	case op.CAST_FLT_UITOFP_32:
		f.PutF32(c.regOff(0), float32(f.U32(c.regOff(1))))
	case op.CAST_DBL_UITOFP_32:
		f.PutF64(c.regOff(0), float64(f.U32(c.regOff(1))))
	case op.CAST_FLT_UITOFP_64:
		f.PutF32(c.regOff(0), float32(f.U64(c.regOff(1))))
	case op.CAST_DBL_UITOFP_64:
		f.PutF64(c.regOff(0), float64(f.U64(c.regOff(1))))

	case op.CAST_DBL_FPEXT_FLT:
		f.PutF64(c.regOff(0), float64(f.F32(c.regOff(1))))
	case op.CAST_FLT_FPTRUNC_DBL:
		f.PutF32(c.regOff(0), float32(f.F64(c.regOff(1))))

	default:
		return 0, false
	}
	return c.next(2), true
}
