package emit

import (
	"testing"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

func TestEmitLoadBase(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassLoad,
		Ret:   reg(ir.Int32(), 16),
		Load:  ir.LoadPayload{Ptr: reg(ir.Int32(), 24), Pointee: ir.Int32()},
	}
	if err := c.emitLoad(inst); err != nil {
		t.Fatalf("emitLoad: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 2)
	if code != op.LOAD32 {
		t.Errorf("opcode = %v, want LOAD32", code)
	}
	if slots[0] != 16 || slots[1] != 24 {
		t.Errorf("slots = %v, want [16 24]", slots)
	}
}

func TestEmitLoadOffset(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassLoad,
		Ret:   reg(ir.Int32(), 16),
		Load:  ir.LoadPayload{Ptr: reg(ir.Int32(), 24), Offset: 12, HasOffset: true, Pointee: ir.Int32()},
	}
	if err := c.emitLoad(inst); err != nil {
		t.Fatalf("emitLoad: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.LOAD32_OFF {
		t.Errorf("opcode = %v, want LOAD32_OFF", code)
	}
	if slots[0] != 16 || slots[1] != 24 || int16(slots[2]) != 12 {
		t.Errorf("slots = %v, want [16 24 12]", slots)
	}
}

func TestEmitLoadIndexed(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassLoad,
		Ret:   reg(ir.Int32(), 16),
		Load: ir.LoadPayload{
			Ptr: reg(ir.Int32(), 24), Offset: 4, HasOffset: true,
			Index: reg(ir.Int32(), 32), Scale: 4, Pointee: ir.Int32(),
		},
	}
	if err := c.emitLoad(inst); err != nil {
		t.Fatalf("emitLoad: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 5)
	if code != op.LOAD32_ROFF {
		t.Errorf("opcode = %v, want LOAD32_ROFF", code)
	}
	if slots[0] != 16 || slots[1] != 24 || int16(slots[2]) != 4 || slots[3] != 32 || slots[4] != 4 {
		t.Errorf("slots = %v, want [16 24 4 32 4]", slots)
	}
}

func TestEmitLoadGlobal(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassLoad,
		Ret:   reg(ir.Int32(), 16),
		Load:  ir.LoadPayload{Ptr: ir.GlobalVar{Typ: ir.Int32(), Addr: 0xdeadbeef}, Pointee: ir.Int32()},
	}
	if err := c.emitLoad(inst); err != nil {
		t.Fatalf("emitLoad: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.LOAD32_G {
		t.Errorf("opcode = %v, want LOAD32_G", code)
	}
	if slots[0] != 16 {
		t.Errorf("dst slot = %d, want 16", slots[0])
	}
	if got := u32At(c.enc.Bytes(), 1); got != 0xdeadbeef {
		t.Errorf("addr = %#x, want 0xdeadbeef", got)
	}
}

func TestEmitLoadFusedZextBase(t *testing.T) {
	c := newCtx()
	cast := ir.CastZExt
	inst := ir.Instruction{
		Class: ir.ClassLoad,
		Ret:   reg(ir.Int32(), 16),
		Load:  ir.LoadPayload{Ptr: reg(ir.Int32(), 24), Pointee: ir.Int8(), FusedCast: &cast},
	}
	if err := c.emitLoad(inst); err != nil {
		t.Fatalf("emitLoad: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.LOAD8_ZEXT_32 {
		t.Errorf("opcode = %v, want LOAD8_ZEXT_32", code)
	}
}

func TestEmitLoadFusedSextOffset16(t *testing.T) {
	c := newCtx()
	cast := ir.CastSExt
	inst := ir.Instruction{
		Class: ir.ClassLoad,
		Ret:   reg(ir.Int32(), 16),
		Load:  ir.LoadPayload{Ptr: reg(ir.Int32(), 24), Offset: 8, HasOffset: true, Pointee: ir.Int16(), FusedCast: &cast},
	}
	if err := c.emitLoad(inst); err != nil {
		t.Fatalf("emitLoad: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 3)
	if code != op.LOAD16_OFF_SEXT_32 {
		t.Errorf("opcode = %v, want LOAD16_OFF_SEXT_32", code)
	}
}

func TestEmitLoadFusedCastRejectedAt32Bit(t *testing.T) {
	c := newCtx()
	cast := ir.CastZExt
	inst := ir.Instruction{
		Class: ir.ClassLoad,
		Ret:   reg(ir.Int32(), 16),
		Load:  ir.LoadPayload{Ptr: reg(ir.Int32(), 24), Pointee: ir.Int32(), FusedCast: &cast},
	}
	if err := c.emitLoad(inst); err == nil {
		t.Fatal("expected error: no fused-cast form at width 32")
	}
}

func TestEmitStoreBase(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassStore,
		Store: ir.StorePayload{Ptr: reg(ir.Int32(), 24), Value: reg(ir.Int32(), 32)},
	}
	if err := c.emitStore(inst); err != nil {
		t.Fatalf("emitStore: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 2)
	if code != op.STORE32 {
		t.Errorf("opcode = %v, want STORE32", code)
	}
	if slots[0] != 24 || slots[1] != 32 {
		t.Errorf("slots = %v, want [24 32]", slots)
	}
}

func TestEmitStoreOffsetRegisterOrderIsBaseValueOffset(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassStore,
		Store: ir.StorePayload{Ptr: reg(ir.Int32(), 24), Value: reg(ir.Int32(), 32), Offset: 20, HasOffset: true},
	}
	if err := c.emitStore(inst); err != nil {
		t.Fatalf("emitStore: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.STORE32_OFF {
		t.Errorf("opcode = %v, want STORE32_OFF", code)
	}
	// base,value,offset - not base,offset,value.
	if slots[0] != 24 || slots[1] != 32 || int16(slots[2]) != 20 {
		t.Errorf("slots = %v, want [24 32 20]", slots)
	}
}

func TestEmitStoreConstOffsetOrderIsBaseOffsetConst(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassStore,
		Store: ir.StorePayload{Ptr: reg(ir.Int32(), 24), Value: constInt(ir.Int32(), 99), Offset: 20, HasOffset: true},
	}
	if err := c.emitStore(inst); err != nil {
		t.Fatalf("emitStore: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 4)
	if code != op.STORE32_C_OFF {
		t.Errorf("opcode = %v, want STORE32_C_OFF", code)
	}
	// base,offset,const - swapped from the register form.
	if slots[0] != 24 || int16(slots[1]) != 20 {
		t.Errorf("base/offset slots = %v, want [24 20]", slots[:2])
	}
	if got := u32At(c.enc.Bytes(), 2); got != 99 {
		t.Errorf("const = %d, want 99", got)
	}
}

func TestEmitStoreGlobal(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassStore,
		Store: ir.StorePayload{Ptr: ir.GlobalVar{Typ: ir.Int32(), Addr: 0x1000}, Value: reg(ir.Int32(), 32)},
	}
	if err := c.emitStore(inst); err != nil {
		t.Fatalf("emitStore: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.STORE32_G {
		t.Errorf("opcode = %v, want STORE32_G", code)
	}
	if slots[0] != 32 {
		t.Errorf("value slot = %d, want 32", slots[0])
	}
	if got := u32At(c.enc.Bytes(), 1); got != 0x1000 {
		t.Errorf("addr = %#x, want 0x1000", got)
	}
}

func TestEmitStoreConstToGlobalRejected(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassStore,
		Store: ir.StorePayload{Ptr: ir.GlobalVar{Typ: ir.Int32(), Addr: 0x1000}, Value: constInt(ir.Int32(), 1)},
	}
	if err := c.emitStore(inst); err == nil {
		t.Fatal("expected error: no global-address opcode accepts a constant value")
	}
}

func TestEmitLeaShl2(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassLea,
		Ret:   reg(ir.Int32(), 16),
		Lea:   ir.LeaPayload{Base: reg(ir.Int32(), 24), Index: reg(ir.Int32(), 32), Mul: 4, Imm: 0},
	}
	if err := c.emitLea(inst); err != nil {
		t.Fatalf("emitLea: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.LEA_R32_SHL2 {
		t.Errorf("opcode = %v, want LEA_R32_SHL2", code)
	}
	if slots[0] != 16 || slots[1] != 24 || slots[2] != 32 {
		t.Errorf("slots = %v, want [16 24 32]", slots)
	}
}

func TestEmitLeaShlGeneral(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassLea,
		Ret:   reg(ir.Int32(), 16),
		Lea:   ir.LeaPayload{Base: reg(ir.Int32(), 24), Index: reg(ir.Int32(), 32), Mul: 8, Imm: 0},
	}
	if err := c.emitLea(inst); err != nil {
		t.Fatalf("emitLea: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 4)
	if code != op.LEA_R32_SHL {
		t.Errorf("opcode = %v, want LEA_R32_SHL", code)
	}
	if slots[3] != 3 {
		t.Errorf("shift amount = %d, want 3", slots[3])
	}
}

func TestEmitLeaShlOffset(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassLea,
		Ret:   reg(ir.Int32(), 16),
		Lea:   ir.LeaPayload{Base: reg(ir.Int32(), 24), Index: reg(ir.Int32(), 32), Mul: 2, Imm: 40},
	}
	if err := c.emitLea(inst); err != nil {
		t.Fatalf("emitLea: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 6)
	if code != op.LEA_R32_SHL_OFF {
		t.Errorf("opcode = %v, want LEA_R32_SHL_OFF", code)
	}
	if slots[3] != 1 {
		t.Errorf("shift amount = %d, want 1", slots[3])
	}
	if got := u32At(c.enc.Bytes(), 4); got != 40 {
		t.Errorf("imm = %d, want 40", got)
	}
}

func TestEmitLeaMulOffsetNonPowerOfTwo(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassLea,
		Ret:   reg(ir.Int32(), 16),
		Lea:   ir.LeaPayload{Base: reg(ir.Int32(), 24), Index: reg(ir.Int32(), 32), Mul: 12, Imm: 0},
	}
	if err := c.emitLea(inst); err != nil {
		t.Fatalf("emitLea: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 7)
	if code != op.LEA_R32_MUL_OFF {
		t.Errorf("opcode = %v, want LEA_R32_MUL_OFF", code)
	}
	if got := u32At(c.enc.Bytes(), 3); got != 12 {
		t.Errorf("scale = %d, want 12", got)
	}
}
