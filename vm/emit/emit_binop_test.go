package emit

import (
	"testing"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

func TestEmitBinopRegisterForm(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   reg(ir.Int8(), 16),
		Binop: ir.BinopPayload{Op: ir.OpAdd, Lhs: reg(ir.Int8(), 24), Rhs: reg(ir.Int8(), 32), Typ: ir.Int8()},
	}
	if err := c.emitBinop(inst); err != nil {
		t.Fatalf("emitBinop: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.ADD_R8 {
		t.Errorf("opcode = %v, want ADD_R8", code)
	}
	if slots[0] != 16 || slots[1] != 24 || slots[2] != 32 {
		t.Errorf("slots = %v, want [16 24 32]", slots)
	}
}

func TestEmitBinop32ConstRhs(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   reg(ir.Int32(), 16),
		Binop: ir.BinopPayload{Op: ir.OpMul, Lhs: reg(ir.Int32(), 24), Rhs: constInt(ir.Int32(), 0x12345678), Typ: ir.Int32()},
	}
	if err := c.emitBinop(inst); err != nil {
		t.Fatalf("emitBinop: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 4)
	if code != op.ADD_R32C+op.Op(ir.OpMul) {
		t.Errorf("opcode = %v, want MUL_R32C", code)
	}
	if slots[0] != 16 || slots[1] != 24 {
		t.Errorf("dst/lhs slots = %v, want [16 24]", slots[:2])
	}
	if got := u32At(c.enc.Bytes(), 2); got != 0x12345678 {
		t.Errorf("immediate = %#x, want %#x", got, 0x12345678)
	}
}

func TestEmitBinop32AccLhsNonAccDst(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   reg(ir.Int32(), 24),
		Binop: ir.BinopPayload{Op: ir.OpAdd, Lhs: reg(ir.Int32(), accOffset), Rhs: reg(ir.Int32(), 32), Typ: ir.Int32()},
	}
	if err := c.emitBinop(inst); err != nil {
		t.Fatalf("emitBinop: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 2)
	if code != op.ADD_ACC_R32 {
		t.Errorf("opcode = %v, want ADD_ACC_R32", code)
	}
	if slots[0] != 24 || slots[1] != 32 {
		t.Errorf("slots = %v, want [24 32]", slots)
	}
}

func TestEmitBinop32TwoAcc(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   reg(ir.Int32(), accOffset),
		Binop: ir.BinopPayload{Op: ir.OpXor, Lhs: reg(ir.Int32(), accOffset), Rhs: reg(ir.Int32(), 40), Typ: ir.Int32()},
	}
	if err := c.emitBinop(inst); err != nil {
		t.Fatalf("emitBinop: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 1)
	if code != op.ADD_2ACC_R32+op.Op(ir.OpXor) {
		t.Errorf("opcode = %v, want XOR_2ACC_R32", code)
	}
	if slots[0] != 40 {
		t.Errorf("rhs slot = %d, want 40", slots[0])
	}
}

func TestEmitBinop32AccLhsConstRhs(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   reg(ir.Int32(), 24),
		Binop: ir.BinopPayload{Op: ir.OpAnd, Lhs: reg(ir.Int32(), accOffset), Rhs: constInt(ir.Int32(), 0xff), Typ: ir.Int32()},
	}
	if err := c.emitBinop(inst); err != nil {
		t.Fatalf("emitBinop: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.ADD_ACC_R32C+op.Op(ir.OpAnd) {
		t.Errorf("opcode = %v, want AND_ACC_R32C", code)
	}
	if slots[0] != 24 {
		t.Errorf("dst slot = %d, want 24", slots[0])
	}
	if got := u32At(c.enc.Bytes(), 1); got != 0xff {
		t.Errorf("immediate = %#x, want 0xff", got)
	}
}

func TestEmitBinop32IncDecFold(t *testing.T) {
	cases := []struct {
		op   ir.BinOp
		want op.Op
	}{
		{ir.OpAdd, op.INC_R32},
		{ir.OpSub, op.DEC_R32},
	}
	for _, tc := range cases {
		c := newCtx()
		inst := ir.Instruction{
			Class: ir.ClassBinop,
			Ret:   reg(ir.Int32(), 16),
			Binop: ir.BinopPayload{Op: tc.op, Lhs: reg(ir.Int32(), 24), Rhs: constInt(ir.Int32(), 1), Typ: ir.Int32()},
		}
		if err := c.emitBinop(inst); err != nil {
			t.Fatalf("emitBinop: %v", err)
		}
		code, slots := decode(t, c.enc.Bytes(), 2)
		if code != tc.want {
			t.Errorf("op %v: opcode = %v, want %v", tc.op, code, tc.want)
		}
		if slots[0] != 16 || slots[1] != 24 {
			t.Errorf("op %v: slots = %v, want [16 24]", tc.op, slots)
		}
	}
}

func TestEmitBinop64ConstRhs(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   reg(ir.Int64(), 16),
		Binop: ir.BinopPayload{Op: ir.OpOr, Lhs: reg(ir.Int64(), 24), Rhs: constInt(ir.Int64(), 0x0102030405060708), Typ: ir.Int64()},
	}
	if err := c.emitBinop(inst); err != nil {
		t.Fatalf("emitBinop: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 6)
	if code != op.ADD_R64C+op.Op(ir.OpOr) {
		t.Errorf("opcode = %v, want OR_R64C", code)
	}
	if slots[0] != 16 || slots[1] != 24 {
		t.Errorf("dst/lhs slots = %v, want [16 24]", slots[:2])
	}
	if got := u64At(c.enc.Bytes(), 2); got != 0x0102030405060708 {
		t.Errorf("immediate = %#x, want %#x", got, uint64(0x0102030405060708))
	}
}

func TestEmitFloatBinop(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   reg(ir.Double(), 16),
		Binop: ir.BinopPayload{Op: ir.OpSub, Lhs: reg(ir.Double(), 24), Rhs: reg(ir.Double(), 32), Typ: ir.Double()},
	}
	if err := c.emitBinop(inst); err != nil {
		t.Fatalf("emitBinop: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.ADD_DBL+1 {
		t.Errorf("opcode = %v, want SUB_DBL", code)
	}
	if slots[0] != 16 || slots[1] != 24 || slots[2] != 32 {
		t.Errorf("slots = %v, want [16 24 32]", slots)
	}
}

func TestEmitMla(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{
		Class: ir.ClassMla,
		Ret:   reg(ir.Int32(), 16),
		Mla:   ir.MlaPayload{A: reg(ir.Int32(), 24), B: reg(ir.Int32(), 32), C: reg(ir.Int32(), 40)},
	}
	if err := c.emitMla(inst); err != nil {
		t.Fatalf("emitMla: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 4)
	if code != op.MLA32 {
		t.Errorf("opcode = %v, want MLA32", code)
	}
	if slots[0] != 16 || slots[1] != 24 || slots[2] != 32 || slots[3] != 40 {
		t.Errorf("slots = %v, want [16 24 32 40]", slots)
	}
}
