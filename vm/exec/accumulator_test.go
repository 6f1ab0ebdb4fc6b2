package exec_test

// TestAccumulatorEquivalence is Testable Property 6: for any i32
// binop, executing the *_ACC_R32 specialisation (lhs pinned to the
// reserved ACC slot) and the plain *_R32 form with the same operand
// values must write the same bit pattern to the destination. Each
// case builds one function that computes both forms internally -
// moving one operand into ACC first, then comparing - and returns
// whether they agreed, so a single exec.Machine.Call exercises both
// opcodes under identical operand values in one pass.

import (
	"testing"

	"ssavm/ir"
	"ssavm/vm/exec"
)

func buildAccEquivalence(t *testing.T, op ir.BinOp) *exec.CompiledFunction {
	t.Helper()
	typ := ir.Function(ir.Int32(), ir.Int32(), ir.Int32())
	b := ir.NewBuilder("acc_eq", typ, 0)
	a := ir.Reg{Typ: ir.Int32(), Offset: -4}
	bb := ir.Reg{Typ: ir.Int32(), Offset: -8}

	entry := b.Block()
	acc := b.Acc(ir.Int32())
	ir.Append(entry, ir.Instruction{
		Class: ir.ClassMove,
		Ret:   acc,
		Move:  ir.MovePayload{Src: a, Typ: ir.Int32()},
	})

	accForm := b.Alloc(ir.Int32())
	ir.Append(entry, ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   accForm,
		Binop: ir.BinopPayload{Op: op, Lhs: acc, Rhs: bb, Typ: ir.Int32()},
	})

	plainForm := b.Alloc(ir.Int32())
	ir.Append(entry, ir.Instruction{
		Class: ir.ClassBinop,
		Ret:   plainForm,
		Binop: ir.BinopPayload{Op: op, Lhs: a, Rhs: bb, Typ: ir.Int32()},
	})

	agree := b.Alloc(ir.Int32())
	ir.Append(entry, ir.Instruction{
		Class: ir.ClassCmp2,
		Ret:   agree,
		Cmp2:  ir.Cmp2Payload{Lhs: accForm, Rhs: plainForm, Typ: ir.Int32(), Pred: ir.PredEQ},
	})
	ir.Append(entry, ret32(agree))

	return compile(t, b.Finish())
}

func TestAccumulatorEquivalence(t *testing.T) {
	ops := []ir.BinOp{
		ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpAnd, ir.OpOr, ir.OpXor,
		ir.OpUDiv, ir.OpSDiv, ir.OpShl, ir.OpLShr, ir.OpAShr,
	}
	operandPairs := [][2]int32{
		{3, 4}, {-7, 2}, {0, 0}, {1 << 30, 3}, {-1, 1}, {100, -5},
	}

	m := exec.NewMachine(1 << 12)
	for _, op := range ops {
		fn := buildAccEquivalence(t, op)
		m.VMFuncs = []*exec.CompiledFunction{fn}
		for _, p := range operandPairs {
			if p[1] == 0 && (op == ir.OpUDiv || op == ir.OpSDiv) {
				continue
			}
			got := runCall(t, m, fn, []uint32{uint32(p[0]), uint32(p[1])})
			if got != 1 {
				t.Errorf("op %d: ACC_R32 and R32 forms disagree for operands (%d,%d)", op, p[0], p[1])
			}
		}
	}
}
