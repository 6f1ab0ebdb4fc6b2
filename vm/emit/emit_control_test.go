package emit

import (
	"testing"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

func TestEmitRetVoid(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{Class: ir.ClassRet, Ret_: ir.RetPayload{Value: nil}}
	if err := c.emitRet(inst); err != nil {
		t.Fatalf("emitRet: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 0)
	if code != op.RET_VOID {
		t.Errorf("opcode = %v, want RET_VOID", code)
	}
}

func TestEmitRetRegister(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{Class: ir.ClassRet, Ret_: ir.RetPayload{Value: reg(ir.Int32(), 24)}}
	if err := c.emitRet(inst); err != nil {
		t.Fatalf("emitRet: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 1)
	if code != op.RET_R32 {
		t.Errorf("opcode = %v, want RET_R32", code)
	}
	if slots[0] != 24 {
		t.Errorf("reg slot = %d, want 24", slots[0])
	}
}

func TestEmitRetConst64(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{Class: ir.ClassRet, Ret_: ir.RetPayload{Value: constInt(ir.Int64(), 0x1122334455667788)}}
	if err := c.emitRet(inst); err != nil {
		t.Fatalf("emitRet: %v", err)
	}
	code, _ := decode(t, c.enc.Bytes(), 4)
	if code != op.RET_R64C {
		t.Errorf("opcode = %v, want RET_R64C", code)
	}
	if got := u64At(c.enc.Bytes(), 0); got != 0x1122334455667788 {
		t.Errorf("immediate = %#x, want %#x", got, uint64(0x1122334455667788))
	}
}

func TestEmitBrUnconditionalRecordsFixup(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{Class: ir.ClassBr, Br: ir.BrPayload{Cond: nil, TrueBlock: 5}}
	if err := c.emitBr(inst); err != nil {
		t.Fatalf("emitBr: %v", err)
	}
	if len(c.fixups.Sites) != 1 {
		t.Fatalf("fixup sites = %d, want 1", len(c.fixups.Sites))
	}
	site := c.fixups.Sites[0]
	if site.Op != op.B || len(site.Targets) != 1 || site.Targets[0] != 5 {
		t.Errorf("site = %+v, want {Op:B Targets:[5]}", site)
	}
}

func TestEmitBrConditionalRecordsFixup(t *testing.T) {
	c := newCtx()
	inst := ir.Instruction{Class: ir.ClassBr, Br: ir.BrPayload{Cond: reg(ir.Int32(), 16), TrueBlock: 1, FalseBlock: 2}}
	if err := c.emitBr(inst); err != nil {
		t.Fatalf("emitBr: %v", err)
	}
	code, slots := decode(t, c.enc.Bytes(), 3)
	if code != op.BCOND {
		t.Errorf("opcode = %v, want BCOND", code)
	}
	if slots[0] != 16 {
		t.Errorf("cond slot = %d, want 16", slots[0])
	}
	site := c.fixups.Sites[0]
	if len(site.Targets) != 2 || site.Targets[0] != 1 || site.Targets[1] != 2 {
		t.Errorf("targets = %v, want [1 2]", site.Targets)
	}
}

// buildTwoWayFunction makes a 3-block function: block 0 branches on
// cond to block 1 or block 2, both of which RET_VOID.
func buildTwoWayFunction(sw ir.Instruction) *ir.Function {
	entry := &ir.Block{ID: 0, Insts: []ir.Instruction{sw}}
	b1 := &ir.Block{ID: 1, Insts: []ir.Instruction{{Class: ir.ClassRet}}}
	b2 := &ir.Block{ID: 2, Insts: []ir.Instruction{{Class: ir.ClassRet}}}
	return &ir.Function{Name: "f", Blocks: []*ir.Block{entry, b1, b2}}
}

func TestEmitSwitchDenseUsesJumptable(t *testing.T) {
	fn := buildTwoWayFunction(ir.Instruction{
		Class: ir.ClassSwitch,
		Switch: ir.SwitchPayload{
			Selector: reg(ir.Int8(), 16),
			Typ:      ir.Int8(),
			Cases:    []ir.SwitchCase{{Key: 0, Block: 1}, {Key: 1, Block: 2}},
			Default:  2,
		},
	})
	if err := Function(fn); err != nil {
		t.Fatalf("Function: %v", err)
	}
	code, slots := decode(t, fn.Text, 2)
	if code != op.JUMPTABLE {
		t.Errorf("opcode = %v, want JUMPTABLE", code)
	}
	if slots[0] != 16 {
		t.Errorf("selector slot = %d, want 16", slots[0])
	}
	if slots[1] != 2 {
		t.Errorf("table size = %d, want 2", slots[1])
	}
}

func TestEmitSwitchSparseUsesBinarySearch(t *testing.T) {
	fn := buildTwoWayFunction(ir.Instruction{
		Class: ir.ClassSwitch,
		Switch: ir.SwitchPayload{
			Selector: reg(ir.Int32(), 16),
			Typ:      ir.Int32(),
			Cases:    []ir.SwitchCase{{Key: 10, Block: 1}, {Key: 200, Block: 2}},
			Default:  2,
		},
	})
	if err := Function(fn); err != nil {
		t.Fatalf("Function: %v", err)
	}
	code, slots := decode(t, fn.Text, 2)
	if code != op.SWITCH32_BS {
		t.Errorf("opcode = %v, want SWITCH32_BS", code)
	}
	if slots[1] != 2 {
		t.Errorf("case count = %d, want 2", slots[1])
	}
}

func TestEmitSwitch8NonDenseUsesBinarySearch(t *testing.T) {
	fn := buildTwoWayFunction(ir.Instruction{
		Class: ir.ClassSwitch,
		Switch: ir.SwitchPayload{
			Selector: reg(ir.Int8(), 16),
			Typ:      ir.Int8(),
			Cases:    []ir.SwitchCase{{Key: 3, Block: 1}, {Key: 9, Block: 2}},
			Default:  2,
		},
	})
	if err := Function(fn); err != nil {
		t.Fatalf("Function: %v", err)
	}
	code, _ := decode(t, fn.Text, 2)
	if code != op.SWITCH8_BS {
		t.Errorf("opcode = %v, want SWITCH8_BS (non-dense keys must not use JUMPTABLE)", code)
	}
}

func TestEmitFunctionResolvesBranchDisplacement(t *testing.T) {
	fn := buildTwoWayFunction(ir.Instruction{
		Class: ir.ClassBr,
		Br:    ir.BrPayload{Cond: reg(ir.Int32(), 16), TrueBlock: 1, FalseBlock: 2},
	})
	if err := Function(fn); err != nil {
		t.Fatalf("Function: %v", err)
	}
	b1 := fn.BlockByID(1)
	b2 := fn.BlockByID(2)
	// BCOND's displacement slots sit at operand slots 1 and 2 (0-based
	// from the opcode header), i.e. byte offsets 2+1*2=4 and 2+2*2=6.
	gotTrue := int16(uint16(fn.Text[4]) | uint16(fn.Text[5])<<8)
	gotFalse := int16(uint16(fn.Text[6]) | uint16(fn.Text[7])<<8)
	operandStart := 2
	wantTrue := int16(b1.TextOffset - operandStart)
	wantFalse := int16(b2.TextOffset - operandStart)
	if gotTrue != wantTrue {
		t.Errorf("true displacement = %d, want %d", gotTrue, wantTrue)
	}
	if gotFalse != wantFalse {
		t.Errorf("false displacement = %d, want %d", gotFalse, wantFalse)
	}
}
