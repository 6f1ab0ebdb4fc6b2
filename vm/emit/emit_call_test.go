package emit

import (
	"testing"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

func TestEmitCallDirectVM(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassCall,
		Call:  ir.CallPayload{Callee: ir.FuncRef{Typ: ir.Function(ir.Int32()), Index: 7}, ArgFrame: 32, RetOffset: 16},
	}
	if err := c.emitCall(nil, inst); err != nil {
		t.Fatalf("emitCall: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.JSR_VM {
		t.Errorf("opcode = %v, want JSR_VM", code)
	}
	if slots[0] != 7 || int16(slots[1]) != 32 || int16(slots[2]) != 16 {
		t.Errorf("slots = %v, want [7 32 16]", slots)
	}
}

func TestEmitCallDirectExternal(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassCall,
		Call:  ir.CallPayload{Callee: ir.FuncRef{Typ: ir.Function(ir.Int32()), Index: 3}, External: true, ArgFrame: 40, RetOffset: 20},
	}
	if err := c.emitCall(nil, inst); err != nil {
		t.Fatalf("emitCall: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.JSR_EXT {
		t.Errorf("opcode = %v, want JSR_EXT", code)
	}
	if slots[0] != 3 {
		t.Errorf("func index slot = %d, want 3", slots[0])
	}
}

func TestEmitCallIndirect(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassCall,
		Call:  ir.CallPayload{Callee: reg(ir.Int32(), 24), ArgFrame: 32, RetOffset: 16},
	}
	if err := c.emitCall(nil, inst); err != nil {
		t.Fatalf("emitCall: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.JSR_R {
		t.Errorf("opcode = %v, want JSR_R", code)
	}
	if slots[0] != 24 {
		t.Errorf("callee reg slot = %d, want 24", slots[0])
	}
}

func TestEmitAllocaConstantCount(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class:  ir.ClassAlloca,
		Ret:    reg(ir.Int32(), 16),
		Alloca: ir.AllocaPayload{ElemSize: 4, Align: 8, ConstantN: 10},
	}
	if err := c.emitAlloca(inst); err != nil {
		t.Fatalf("emitAlloca: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 4)
	if code != op.ALLOCA {
		t.Errorf("opcode = %v, want ALLOCA", code)
	}
	if slots[0] != 16 || slots[1] != 8 {
		t.Errorf("dst/align slots = %v, want [16 8]", slots[:2])
	}
	if got := u32At(c.enc.Bytes(), 2); got != 40 {
		t.Errorf("size = %d, want 40", got)
	}
}

func TestEmitAllocaDynamicCount(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class:  ir.ClassAlloca,
		Ret:    reg(ir.Int32(), 16),
		Alloca: ir.AllocaPayload{ElemSize: 8, Align: 4, Count: reg(ir.Int32(), 24)},
	}
	if err := c.emitAlloca(inst); err != nil {
		t.Fatalf("emitAlloca: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 5)
	if code != op.ALLOCAD {
		t.Errorf("opcode = %v, want ALLOCAD", code)
	}
	if slots[0] != 16 || slots[1] != 4 || slots[2] != 24 {
		t.Errorf("dst/align/count slots = %v, want [16 4 24]", slots[:3])
	}
	if got := u32At(c.enc.Bytes(), 3); got != 8 {
		t.Errorf("elem size = %d, want 8", got)
	}
}

func TestEmitVaarg32(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{Class: ir.ClassVaarg, Ret: reg(ir.Int32(), 16), Vaarg: ir.VaargPayload{VaList: reg(ir.Int32(), 24), Is64: false}}
	if err := c.emitVaarg(inst); err != nil {
		t.Fatalf("emitVaarg: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 2)
	if code != op.VAARG32 {
		t.Errorf("opcode = %v, want VAARG32", code)
	}
	if slots[0] != 16 || slots[1] != 24 {
		t.Errorf("slots = %v, want [16 24]", slots)
	}
}

func TestEmitVaarg64(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{Class: ir.ClassVaarg, Ret: reg(ir.Int64(), 16), Vaarg: ir.VaargPayload{VaList: reg(ir.Int32(), 24), Is64: true}}
	if err := c.emitVaarg(inst); err != nil {
		t.Fatalf("emitVaarg: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.VAARG64 {
		t.Errorf("opcode = %v, want VAARG64", code)
	}
}

func TestEmitStackCopyFromRegister(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassStackCopy,
		Ret:   reg(ir.Int32(), 16),
		SCopy: ir.StackCopyPayload{Src: reg(ir.Int32(), 24), Size: constInt(ir.Int32(), 64)},
	}
	if err := c.emitStackCopy(inst); err != nil {
		t.Fatalf("emitStackCopy: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 4)
	if code != op.STACKCOPYR {
		t.Errorf("opcode = %v, want STACKCOPYR", code)
	}
	if slots[0] != 16 || slots[1] != 24 {
		t.Errorf("dst/srcReg slots = %v, want [16 24]", slots[:2])
	}
	if got := u32At(c.enc.Bytes(), 2); got != 64 {
		t.Errorf("size = %d, want 64", got)
	}
}

func TestEmitStackCopyFromConstant(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassStackCopy,
		Ret:   reg(ir.Int32(), 16),
		SCopy: ir.StackCopyPayload{Src: constInt(ir.Int32(), 0x2000), Size: constInt(ir.Int32(), 128)},
	}
	if err := c.emitStackCopy(inst); err != nil {
		t.Fatalf("emitStackCopy: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 5)
	if code != op.STACKCOPYC {
		t.Errorf("opcode = %v, want STACKCOPYC", code)
	}
	if slots[0] != 16 {
		t.Errorf("dst slot = %d, want 16", slots[0])
	}
	if got := u32At(c.enc.Bytes(), 1); got != 0x2000 {
		t.Errorf("src const = %#x, want 0x2000", got)
	}
	if got := u32At(c.enc.Bytes(), 3); got != 128 {
		t.Errorf("size = %d, want 128", got)
	}
}

func TestEmitStackCopyRejectsNonConstantSize(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassStackCopy,
		Ret:   reg(ir.Int32(), 16),
		SCopy: ir.StackCopyPayload{Src: reg(ir.Int32(), 24), Size: reg(ir.Int32(), 32)},
	}
	if err := c.emitStackCopy(inst); err == nil {
		t.Fatal("expected error: size must be a compile-time constant")
	}
}

func TestEmitStackShrink(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{Class: ir.ClassStackShrink, SShrink: ir.StackShrinkPayload{Size: constInt(ir.Int32(), 256)}}
	if err := c.emitStackShrink(inst); err != nil {
		t.Fatalf("emitStackShrink: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 2)
	if code != op.STACKSHRINK {
		t.Errorf("opcode = %v, want STACKSHRINK", code)
	}
	if got := u32At(c.enc.Bytes(), 0); got != 256 {
		t.Errorf("size = %d, want 256", got)
	}
}

func TestEmitVMOpWithDst(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassVMOp,
		Ret:   reg(ir.Int32(), 16),
		VMOp:  ir.VMOpPayload{Op: "MEMCPY", Args: []ir.Value{reg(ir.Int32(), 24), reg(ir.Int32(), 32), reg(ir.Int32(), 40)}},
	}
	if err := c.emitVMOp(inst); err != nil {
		t.Fatalf("emitVMOp: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 4)
	if code != op.MEMCPY {
		t.Errorf("opcode = %v, want MEMCPY", code)
	}
	if slots[0] != 16 || slots[1] != 24 || slots[2] != 32 || slots[3] != 40 {
		t.Errorf("slots = %v, want [16 24 32 40]", slots)
	}
}

func TestEmitVMOpNoDst(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassVMOp,
		VMOp:  ir.VMOpPayload{Op: "VASTART", Args: []ir.Value{reg(ir.Int32(), 24), reg(ir.Int32(), 32)}},
	}
	if err := c.emitVMOp(inst); err != nil {
		t.Fatalf("emitVMOp: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 2)
	if code != op.VASTART {
		t.Errorf("opcode = %v, want VASTART", code)
	}
	if slots[0] != 24 || slots[1] != 32 {
		t.Errorf("slots = %v, want [24 32]", slots)
	}
}

func TestEmitVMOpSingleArg(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassVMOp,
		Ret:   reg(ir.Int32(), 16),
		VMOp:  ir.VMOpPayload{Op: "STRLEN", Args: []ir.Value{reg(ir.Int32(), 24)}},
	}
	if err := c.emitVMOp(inst); err != nil {
		t.Fatalf("emitVMOp: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 2)
	if code != op.STRLEN {
		t.Errorf("opcode = %v, want STRLEN", code)
	}
	if slots[0] != 16 || slots[1] != 24 {
		t.Errorf("slots = %v, want [16 24]", slots)
	}
}

func TestEmitVMOpWrongArgCountRejected(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassVMOp,
		Ret:   reg(ir.Int32(), 16),
		VMOp:  ir.VMOpPayload{Op: "STRLEN", Args: []ir.Value{reg(ir.Int32(), 24), reg(ir.Int32(), 32)}},
	}
	if err := c.emitVMOp(inst); err == nil {
		t.Fatal("expected error: STRLEN takes exactly one argument")
	}
}

func TestEmitVMOpUnknownNameRejected(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassVMOp,
		Ret:   reg(ir.Int32(), 16),
		VMOp:  ir.VMOpPayload{Op: "NOT_A_REAL_INTRINSIC", Args: nil},
	}
	if err := c.emitVMOp(inst); err == nil {
		t.Fatal("expected error: unknown intrinsic")
	}
}
