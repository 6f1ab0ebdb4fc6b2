package emit

import (
	"testing"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

func castInst(o ir.CastOp, srcTyp, dstTyp ir.Type) ir.Instruction {
	return ir.Instruction{
		Class: ir.ClassCast,
		Ret:   reg(dstTyp, 16),
		Cast:  ir.CastPayload{Op: o, Src: reg(srcTyp, 24), SrcTyp: srcTyp, DstTyp: dstTyp},
	}
}

func TestEmitCastTrunc(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastTrunc, ir.Int64(), ir.Int32())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 2)
	if code != op.CAST_32_TRUNC_64 {
		t.Errorf("opcode = %v, want CAST_32_TRUNC_64", code)
	}
	if slots[0] != 16 || slots[1] != 24 {
		t.Errorf("slots = %v, want [16 24]", slots)
	}
}

func TestEmitCastZExt(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastZExt, ir.Int8(), ir.Int64())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.CAST_64_ZEXT_8 {
		t.Errorf("opcode = %v, want CAST_64_ZEXT_8", code)
	}
}

func TestEmitCastSExt(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastSExt, ir.Int32(), ir.Int64())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.CAST_64_SEXT_32 {
		t.Errorf("opcode = %v, want CAST_64_SEXT_32", code)
	}
}

func TestEmitCastFPToSI(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastFPToSI, ir.Float(), ir.Int32())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.CAST_32_FPTOSI_FLT {
		t.Errorf("opcode = %v, want CAST_32_FPTOSI_FLT", code)
	}
}

func TestEmitCastSIToFP(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastSIToFP, ir.Int32(), ir.Double())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.CAST_DBL_SITOFP_32 {
		t.Errorf("opcode = %v, want CAST_DBL_SITOFP_32", code)
	}
}

func TestEmitCastFPExt(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastFPExt, ir.Float(), ir.Double())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.CAST_DBL_FPEXT_FLT {
		t.Errorf("opcode = %v, want CAST_DBL_FPEXT_FLT", code)
	}
}

func TestEmitCastFPTrunc(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastFPTrunc, ir.Double(), ir.Float())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.CAST_FLT_FPTRUNC_DBL {
		t.Errorf("opcode = %v, want CAST_FLT_FPTRUNC_DBL", code)
	}
}

func TestEmitCastBitcastRoutesThroughMov32(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastBitcast, ir.Int32(), ir.Int32())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 2)
	if code != op.MOV32 {
		t.Errorf("opcode = %v, want MOV32 (bitcast has no dedicated opcode)", code)
	}
	if slots[0] != 16 || slots[1] != 24 {
		t.Errorf("slots = %v, want [16 24]", slots)
	}
}

func TestEmitCastBitcastAt16BitRoutesThroughMov32(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastBitcast, ir.Int16(), ir.Int16())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.MOV32 {
		t.Errorf("opcode = %v, want MOV32 (no MOV16 register form exists)", code)
	}
}

func TestEmitCastIntToPtrRoutesThroughMov32(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastIntToPtr, ir.Int32(), ir.Int32())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.MOV32 {
		t.Errorf("opcode = %v, want MOV32", code)
	}
}

func TestEmitCastPtrToIntRoutesThroughMov64(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastPtrToInt, ir.Int64(), ir.Int64())); err != nil {
		t.Fatalf("emitCast: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.MOV64 {
		t.Errorf("opcode = %v, want MOV64", code)
	}
}

func TestEmitCastTruncNoDedicatedForm(t *testing.T) {
	c := newCtx()
	if err := c.emitCast(castInst(ir.CastTrunc, ir.Int32(), ir.Int32())); err == nil {
		t.Fatal("expected error: no truncate from 32 to 32 bits")
	}
}
