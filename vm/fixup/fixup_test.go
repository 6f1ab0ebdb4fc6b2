package fixup

import (
	"testing"

	"ssavm/ir"
	"ssavm/vm/encoder"
	op "ssavm/vm/opcode"
)

// buildTwoBlockJump emits: block 0 is a bare B to block 1; block 1 is
// RET_VOID. Block 1's TextOffset is set after the whole thing is laid
// out, the way emit.Function would.
func buildTwoBlockJump(t *testing.T) (*encoder.Encoder, *ir.Function, []Site) {
	t.Helper()
	enc := encoder.New()
	var sites []Site

	pos, err := enc.EmitOp1(op.B, 0)
	if err != nil {
		t.Fatalf("emit B: %v", err)
	}
	sites = append(sites, Site{InstrPos: pos, Op: op.B, Targets: []int{1}})

	block1Off := enc.Len()
	if _, err := enc.EmitOp0(op.RET_VOID); err != nil {
		t.Fatalf("emit RET_VOID: %v", err)
	}

	fn := &ir.Function{
		Name: "f",
		Blocks: []*ir.Block{
			{ID: 0, TextOffset: 0},
			{ID: 1, TextOffset: block1Off},
		},
	}
	return enc, fn, sites
}

func TestResolveUnconditionalBranch(t *testing.T) {
	enc, fn, sites := buildTwoBlockJump(t)
	if err := Resolve(enc, fn, sites); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	text := enc.Bytes()
	// B's operand slot sits right after its 2-byte opcode header.
	operandStart := sites[0].InstrPos + 2
	gotDisp := int16(text[operandStart]) | int16(text[operandStart+1])<<8
	wantDisp := int16(fn.Blocks[1].TextOffset - operandStart)
	if gotDisp != wantDisp {
		t.Errorf("displacement = %d, want %d", gotDisp, wantDisp)
	}
}

func TestResolveCondBranchOrdering(t *testing.T) {
	enc := encoder.New()
	pos, err := enc.EmitOp3(op.BCOND, 0 /* cond reg */, 0, 0)
	if err != nil {
		t.Fatalf("emit BCOND: %v", err)
	}
	trueOff := enc.Len()
	enc.EmitOp0(op.RET_VOID)
	falseOff := enc.Len()
	enc.EmitOp0(op.RET_VOID)

	fn := &ir.Function{
		Name: "f",
		Blocks: []*ir.Block{
			{ID: 10, TextOffset: trueOff},
			{ID: 20, TextOffset: falseOff},
		},
	}
	sites := []Site{{InstrPos: pos, Op: op.BCOND, Targets: []int{10, 20}}}
	if err := Resolve(enc, fn, sites); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	operandStart := pos + 2
	readDisp := func(slot int) int16 {
		o := operandStart + slot*2
		b := enc.Bytes()
		return int16(b[o]) | int16(b[o+1])<<8
	}
	if got, want := readDisp(1), int16(trueOff-operandStart); got != want {
		t.Errorf("true-branch displacement = %d, want %d", got, want)
	}
	if got, want := readDisp(2), int16(falseOff-operandStart); got != want {
		t.Errorf("false-branch displacement = %d, want %d", got, want)
	}
}

func TestResolveJumptable(t *testing.T) {
	enc := encoder.New()
	// selector reg, count=4, four placeholder displacements.
	pos, err := enc.EmitOp2(op.JUMPTABLE, 0, 4)
	if err != nil {
		t.Fatalf("emit JUMPTABLE header: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := enc.Append16(0); err != nil {
			t.Fatalf("append disp slot: %v", err)
		}
	}
	offs := make([]int, 4)
	blocks := make([]*ir.Block, 4)
	for i := range offs {
		offs[i] = enc.Len()
		enc.EmitOp0(op.RET_VOID)
		blocks[i] = &ir.Block{ID: i, TextOffset: offs[i]}
	}
	fn := &ir.Function{Name: "f", Blocks: blocks}
	sites := []Site{{InstrPos: pos, Op: op.JUMPTABLE, Targets: []int{0, 1, 2, 3}}}
	if err := Resolve(enc, fn, sites); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	operandStart := pos + 2
	b := enc.Bytes()
	for i, off := range offs {
		o := operandStart + (2+i)*2
		got := int16(b[o]) | int16(b[o+1])<<8
		want := int16(off - operandStart)
		if got != want {
			t.Errorf("case %d displacement = %d, want %d", i, got, want)
		}
	}
}

func TestResolveSwitch32BS(t *testing.T) {
	enc := encoder.New()
	keys := []uint32{5, 100, 900}
	pos, err := enc.EmitOp2(op.SWITCH32_BS, 0, uint16(len(keys)))
	if err != nil {
		t.Fatalf("emit SWITCH32_BS header: %v", err)
	}
	for _, k := range keys {
		if err := enc.Append32(k); err != nil {
			t.Fatalf("append key: %v", err)
		}
	}
	// p real-case placeholders plus one trailing default placeholder.
	for i := 0; i < len(keys)+1; i++ {
		if err := enc.Append16(0); err != nil {
			t.Fatalf("append disp placeholder: %v", err)
		}
	}
	blocks := make([]*ir.Block, len(keys)+1)
	for i := range blocks {
		off := enc.Len()
		enc.EmitOp0(op.RET_VOID)
		blocks[i] = &ir.Block{ID: i, TextOffset: off}
	}
	fn := &ir.Function{Name: "f", Blocks: blocks}
	// blocks[3] (id 3) stands in for the default target.
	sites := []Site{{InstrPos: pos, Op: op.SWITCH32_BS, Targets: []int{0, 1, 2, 3}}}
	if err := Resolve(enc, fn, sites); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	operandStart := pos + 2
	dispStart := 2 + len(keys)*2
	b := enc.Bytes()
	for i, blk := range blocks {
		o := operandStart + (dispStart+i)*2
		got := int16(b[o]) | int16(b[o+1])<<8
		want := int16(blk.TextOffset - operandStart)
		if got != want {
			t.Errorf("case %d displacement = %d, want %d", i, got, want)
		}
	}
}

func TestResolveUnknownBlockErrors(t *testing.T) {
	enc, fn, _ := buildTwoBlockJump(t)
	sites := []Site{{InstrPos: 0, Op: op.B, Targets: []int{99}}}
	if err := Resolve(enc, fn, sites); err == nil {
		t.Fatal("expected error for unknown block id, got nil")
	}
}

func TestResolveDisplacementOverflow(t *testing.T) {
	enc, _, _ := buildTwoBlockJump(t)
	fn := &ir.Function{
		Name: "f",
		Blocks: []*ir.Block{
			{ID: 0, TextOffset: 0},
			{ID: 1, TextOffset: 1 << 20},
		},
	}
	sites := []Site{{InstrPos: 0, Op: op.B, Targets: []int{1}}}
	if err := Resolve(enc, fn, sites); err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}
