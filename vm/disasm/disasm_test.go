package disasm

import (
	"strings"
	"testing"

	"ssavm/vm/encoder"
	op "ssavm/vm/opcode"
)

func TestDisassembleSimpleArith(t *testing.T) {
	e := encoder.New()
	if _, err := e.EmitOp3(op.ADD_R32, 16, 24, 32); err != nil {
		t.Fatalf("EmitOp3: %v", err)
	}
	text := e.Bytes()

	out, n := Disassemble(text, 0)
	if n != len(text) {
		t.Errorf("n = %d, want %d", n, len(text))
	}
	if !strings.HasPrefix(out, "ADD_R32") {
		t.Errorf("out = %q, want ADD_R32 prefix", out)
	}
	if !strings.Contains(out, "16") || !strings.Contains(out, "24") || !strings.Contains(out, "32") {
		t.Errorf("out = %q, missing an operand", out)
	}
}

func TestDisassembleUnconditionalBranchResolvesTarget(t *testing.T) {
	e := encoder.New()
	// B's single operand is a displacement relative to operandStart
	// (pos+2); a displacement of 10 from operandStart=2 lands at 12.
	if _, err := e.EmitOp1(op.B, 10); err != nil {
		t.Fatalf("EmitOp1: %v", err)
	}
	text := e.Bytes()

	out, n := Disassemble(text, 0)
	if n != 4 {
		t.Errorf("n = %d, want 4", n)
	}
	if !strings.Contains(out, "0xc") {
		t.Errorf("out = %q, want a resolved target of 0xc", out)
	}
}

func TestDisassembleBcondShowsBothTargets(t *testing.T) {
	e := encoder.New()
	if _, err := e.EmitOp3(op.BCOND, 16, 4, 8); err != nil {
		t.Fatalf("EmitOp3: %v", err)
	}
	text := e.Bytes()

	out, n := Disassemble(text, 0)
	if n != 8 {
		t.Errorf("n = %d, want 8", n)
	}
	if strings.Count(out, "->") != 2 {
		t.Errorf("out = %q, want two resolved targets", out)
	}
}

func TestDisassembleRetVoidHasNoOperands(t *testing.T) {
	e := encoder.New()
	if _, err := e.EmitOp0(op.RET_VOID); err != nil {
		t.Fatalf("EmitOp0: %v", err)
	}
	text := e.Bytes()

	out, n := Disassemble(text, 0)
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
	if out != "RET_VOID" {
		t.Errorf("out = %q, want bare mnemonic", out)
	}
}

func TestDisassembleJumptableEnumeratesCases(t *testing.T) {
	e := encoder.New()
	// selector reg=16, 2-entry table, displacements 6 and 10 from
	// operandStart (=2).
	if _, err := e.EmitOpN(op.JUMPTABLE, 16, 2, 6, 10); err != nil {
		t.Fatalf("EmitOpN: %v", err)
	}
	text := e.Bytes()

	out, n := Disassemble(text, 0)
	if n != len(text) {
		t.Errorf("n = %d, want %d", n, len(text))
	}
	if strings.Count(out, "case") != 2 {
		t.Errorf("out = %q, want 2 cases", out)
	}
	if !strings.Contains(out, "0x8") || !strings.Contains(out, "0xc") {
		t.Errorf("out = %q, want targets 0x8 and 0xc", out)
	}
}

func TestDisassembleSwitch32BSEnumeratesKeysAndDefault(t *testing.T) {
	e := encoder.New()
	// selector reg=16, 2 cases, keys 100 and 200 (32-bit each, 2 slots),
	// then 3 displacements (2 match + 1 default).
	if _, err := e.EmitOpN(op.SWITCH32_BS, 16, 2,
		0x0064, 0x0000, // key 100
		0x00c8, 0x0000, // key 200
		20, 24, 28); err != nil {
		t.Fatalf("EmitOpN: %v", err)
	}
	text := e.Bytes()

	out, n := Disassemble(text, 0)
	if n != len(text) {
		t.Errorf("n = %d, want %d", n, len(text))
	}
	if !strings.Contains(out, "key 100") || !strings.Contains(out, "key 200") {
		t.Errorf("out = %q, missing a key", out)
	}
	if !strings.Contains(out, "default") {
		t.Errorf("out = %q, missing default case", out)
	}
}

func TestDisassembleUnknownOpcodeFallsBackGracefully(t *testing.T) {
	text := []byte{0xff, 0xff, 0, 0}
	out, n := Disassemble(text, 0)
	if n <= 0 {
		t.Fatalf("n = %d, want a positive fallback length", n)
	}
	if !strings.Contains(out, "??") {
		t.Errorf("out = %q, want the unknown-opcode marker", out)
	}
}

func TestDisassembleTruncatedTextDoesNotPanic(t *testing.T) {
	text := []byte{0x01}
	out, n := Disassemble(text, 0)
	if n != 0 {
		t.Errorf("n = %d, want 0 for truncated input", n)
	}
	if out == "" {
		t.Error("expected a non-empty diagnostic string")
	}
}

func TestFunctionWalksWholeText(t *testing.T) {
	e := encoder.New()
	e.EmitOp0(op.NOP)
	e.EmitOp3(op.ADD_R32, 16, 24, 32)
	e.EmitOp0(op.RET_VOID)
	text := e.Bytes()

	lines := Function(text)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "0000: NOP") {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "000a: RET_VOID") {
		t.Errorf("lines[2] = %q, want offset 000a", lines[2])
	}
}
