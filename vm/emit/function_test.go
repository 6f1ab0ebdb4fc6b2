package emit

import (
	"bytes"
	"testing"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

func buildAddFunction() *ir.Function {
	typ := ir.Function(ir.Int32(), ir.Int32(), ir.Int32())
	b := ir.NewBuilder("add", typ, 0)
	a := ir.Reg{Typ: ir.Int32(), Offset: -4}
	bb := ir.Reg{Typ: ir.Int32(), Offset: -8}

	entry := b.Block()
	sum := b.Alloc(ir.Int32())
	ir.Append(entry, ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   sum,
		Binop: ir.BinopPayload{Op: ir.OpAdd, Lhs: a, Rhs: bb, Typ: ir.Int32()},
	})
	ir.Append(entry, ir.Instruction{Class: ir.ClassRet, Ret_: ir.RetPayload{Value: sum}})
	return b.Finish()
}

// TestFunctionIdempotentReEmission is Testable Property 7: running
// Function twice on the same ir.Function, starting from the same
// scratch buffer state each time, produces byte-identical output.
// Function always starts from a fresh encoder internally, so the only
// question is whether the *input* function is left in a state that
// changes the second run's output - it isn't, since Function only
// writes to blk.TextOffset and fn.Text, both fully overwritten on
// each call.
func TestFunctionIdempotentReEmission(t *testing.T) {
	fn := buildAddFunction()
	if err := Function(fn); err != nil {
		t.Fatalf("first Function: %v", err)
	}
	first := append([]byte(nil), fn.Text...)
	firstOffsets := make([]int, len(fn.Blocks))
	for i, blk := range fn.Blocks {
		firstOffsets[i] = blk.TextOffset
	}

	if err := Function(fn); err != nil {
		t.Fatalf("second Function: %v", err)
	}
	if !bytes.Equal(first, fn.Text) {
		t.Errorf("re-emission produced different bytes:\n first=%v\nsecond=%v", first, fn.Text)
	}
	for i, blk := range fn.Blocks {
		if blk.TextOffset != firstOffsets[i] {
			t.Errorf("block %d TextOffset = %d, want %d (from first emission)", blk.ID, blk.TextOffset, firstOffsets[i])
		}
	}
}

// TestFunctionEmptyFunctionLowersToSingleOpcode is the §8 boundary
// behaviour: a function with one block holding only RET_VOID lowers to
// exactly one opcode (two bytes, no operands).
func TestFunctionEmptyFunctionLowersToSingleOpcode(t *testing.T) {
	typ := ir.Function(ir.Int32())
	b := ir.NewBuilder("empty", typ, 0)
	entry := b.Block()
	ir.Append(entry, ir.Instruction{Class: ir.ClassRet, Ret_: ir.RetPayload{Value: nil}})
	fn := b.Finish()

	if err := Function(fn); err != nil {
		t.Fatalf("Function: %v", err)
	}
	if len(fn.Text) != 2 {
		t.Fatalf("text length = %d, want 2 (one bare opcode)", len(fn.Text))
	}
	code, _ := decode(t, fn.Text, 0)
	if code != op.RET_VOID {
		t.Errorf("opcode = %v, want RET_VOID", code)
	}
}
