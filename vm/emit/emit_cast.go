package emit

import (
	"fmt"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

// emitCast lowers a CastPayload. Three of the twelve CastOp kinds -
// Bitcast, IntToPtr, PtrToInt - have no dedicated CAST_* opcode: a
// pointer and an integer of the same width share one register
// representation, so they lower to a plain MOV instead. The one
// exception is PtrToInt from a 32-bit pointer to a 64-bit integer,
// which widens and so emits CAST_64_ZEXT_32.
func (c *ctx) emitCast(inst ir.Instruction) error {
	p := inst.Cast
	switch p.Op {
	case ir.CastBitcast, ir.CastIntToPtr, ir.CastPtrToInt:
		if p.Op == ir.CastPtrToInt && p.SrcTyp.Width() == 32 && p.DstTyp.Width() == 64 {
			_, err := c.enc.EmitOp2(op.CAST_64_ZEXT_32, uint16(ir.RegOffset(inst.Ret)), uint16(ir.RegOffset(p.Src)))
			return err
		}
		return c.emitCastAsMove(inst)
	}

	dst := uint16(ir.RegOffset(inst.Ret))
	src := uint16(ir.RegOffset(p.Src))
	code, err := castOpcode(p)
	if err != nil {
		return err
	}
	_, emitErr := c.enc.EmitOp2(code, dst, src)
	return emitErr
}

// emitCastAsMove lowers Bitcast/IntToPtr/PtrToInt via the register
// move path, choosing the move by the destination width (the widening
// PtrToInt case is handled by emitCast before it gets here), so the
// same MOV8/MOV32/MOV64 (or MOV32 standing in at width 16 - see
// emitMove) rules apply.
func (c *ctx) emitCastAsMove(inst ir.Instruction) error {
	p := inst.Cast
	dst := uint16(ir.RegOffset(inst.Ret))
	src := uint16(ir.RegOffset(p.Src))
	switch p.DstTyp.Width() {
	case 8:
		_, err := c.enc.EmitOp2(op.MOV8, dst, src)
		return err
	case 16, 32:
		_, err := c.enc.EmitOp2(op.MOV32, dst, src)
		return err
	case 64:
		_, err := c.enc.EmitOp2(op.MOV64, dst, src)
		return err
	}
	return fmt.Errorf("cast: unsupported bitcast/ptr width %d", p.DstTyp.Width())
}

func castOpcode(p ir.CastPayload) (op.Op, error) {
	srcW, dstW := p.SrcTyp.Width(), p.DstTyp.Width()
	dstFloat := p.DstTyp.IsFloat()

	switch p.Op {
	case ir.CastTrunc:
		return truncOpcode(srcW, dstW)
	case ir.CastZExt:
		return zextOpcode(srcW, dstW)
	case ir.CastSExt:
		return sextOpcode(srcW, dstW)
	case ir.CastFPToSI:
		return fpToIntOpcode(dstW, true, int(p.SrcTyp.Bits))
	case ir.CastFPToUI:
		return fpToIntOpcode(dstW, false, int(p.SrcTyp.Bits))
	case ir.CastSIToFP:
		return intToFPOpcode(dstFloat, int(p.DstTyp.Bits), srcW, true)
	case ir.CastUIToFP:
		return intToFPOpcode(dstFloat, int(p.DstTyp.Bits), srcW, false)
	case ir.CastFPExt:
		return op.CAST_DBL_FPEXT_FLT, nil
	case ir.CastFPTrunc:
		return op.CAST_FLT_FPTRUNC_DBL, nil
	}
	return 0, fmt.Errorf("cast: unsupported op %d", p.Op)
}

func truncOpcode(srcW, dstW int) (op.Op, error) {
	switch {
	case dstW == 8 && srcW == 16:
		return op.CAST_8_TRUNC_16, nil
	case dstW == 8 && srcW == 32:
		return op.CAST_8_TRUNC_32, nil
	case dstW == 8 && srcW == 64:
		return op.CAST_8_TRUNC_64, nil
	case dstW == 16 && srcW == 32:
		return op.CAST_16_TRUNC_32, nil
	case dstW == 16 && srcW == 64:
		return op.CAST_16_TRUNC_64, nil
	case dstW == 32 && srcW == 64:
		return op.CAST_32_TRUNC_64, nil
	}
	return 0, fmt.Errorf("cast: no truncate from %d to %d bits", srcW, dstW)
}

func zextOpcode(srcW, dstW int) (op.Op, error) {
	switch {
	case dstW == 16 && srcW == 8:
		return op.CAST_16_ZEXT_8, nil
	case dstW == 32 && srcW == 8:
		return op.CAST_32_ZEXT_8, nil
	case dstW == 32 && srcW == 16:
		return op.CAST_32_ZEXT_16, nil
	case dstW == 64 && srcW == 8:
		return op.CAST_64_ZEXT_8, nil
	case dstW == 64 && srcW == 16:
		return op.CAST_64_ZEXT_16, nil
	case dstW == 64 && srcW == 32:
		return op.CAST_64_ZEXT_32, nil
	}
	return 0, fmt.Errorf("cast: no zero-extend from %d to %d bits", srcW, dstW)
}

func sextOpcode(srcW, dstW int) (op.Op, error) {
	switch {
	case dstW == 16 && srcW == 8:
		return op.CAST_16_SEXT_8, nil
	case dstW == 32 && srcW == 8:
		return op.CAST_32_SEXT_8, nil
	case dstW == 32 && srcW == 16:
		return op.CAST_32_SEXT_16, nil
	case dstW == 64 && srcW == 8:
		return op.CAST_64_SEXT_8, nil
	case dstW == 64 && srcW == 16:
		return op.CAST_64_SEXT_16, nil
	case dstW == 64 && srcW == 32:
		return op.CAST_64_SEXT_32, nil
	}
	return 0, fmt.Errorf("cast: no sign-extend from %d to %d bits", srcW, dstW)
}

// fpToIntOpcode maps a float/double source of the given bit width to
// the matching CAST_{32,64}_FPTO{SI,UI}_{FLT,DBL} opcode.
func fpToIntOpcode(dstW int, signed bool, srcBits int) (op.Op, error) {
	switch {
	case dstW == 32 && signed && srcBits == 32:
		return op.CAST_32_FPTOSI_FLT, nil
	case dstW == 32 && signed && srcBits == 64:
		return op.CAST_32_FPTOSI_DBL, nil
	case dstW == 64 && signed && srcBits == 32:
		return op.CAST_64_FPTOSI_FLT, nil
	case dstW == 64 && signed && srcBits == 64:
		return op.CAST_64_FPTOSI_DBL, nil
	case dstW == 32 && !signed && srcBits == 32:
		return op.CAST_32_FPTOUI_FLT, nil
	case dstW == 32 && !signed && srcBits == 64:
		return op.CAST_32_FPTOUI_DBL, nil
	case dstW == 64 && !signed && srcBits == 32:
		return op.CAST_64_FPTOUI_FLT, nil
	case dstW == 64 && !signed && srcBits == 64:
		return op.CAST_64_FPTOUI_DBL, nil
	}
	return 0, fmt.Errorf("cast: no fp-to-int form for dst width %d src bits %d signed %v", dstW, srcBits, signed)
}

func intToFPOpcode(dstFloat bool, dstBits, srcW int, signed bool) (op.Op, error) {
	if !dstFloat {
		return 0, fmt.Errorf("cast: int-to-fp destination is not a float type")
	}
	switch {
	case dstBits == 32 && signed && srcW == 32:
		return op.CAST_FLT_SITOFP_32, nil
	case dstBits == 64 && signed && srcW == 32:
		return op.CAST_DBL_SITOFP_32, nil
	case dstBits == 32 && signed && srcW == 64:
		return op.CAST_FLT_SITOFP_64, nil
	case dstBits == 64 && signed && srcW == 64:
		return op.CAST_DBL_SITOFP_64, nil
	case dstBits == 32 && !signed && srcW == 32:
		return op.CAST_FLT_UITOFP_32, nil
	case dstBits == 64 && !signed && srcW == 32:
		return op.CAST_DBL_UITOFP_32, nil
	case dstBits == 32 && !signed && srcW == 64:
		return op.CAST_FLT_UITOFP_64, nil
	case dstBits == 64 && !signed && srcW == 64:
		return op.CAST_DBL_UITOFP_64, nil
	}
	return 0, fmt.Errorf("cast: no int-to-fp form for dst bits %d src width %d signed %v", dstBits, srcW, signed)
}
