package emit

import (
	"fmt"

	"ssavm/ir"
	op "ssavm/vm/opcode"
)

// emitCall lowers a direct or indirect call. Direct calls address the
// callee by its function-table index (JSR_VM for a VM-defined callee,
// JSR_EXT when CallPayload.External routes it through the host table
// instead); an indirect callee (a register holding the index) always
// goes through JSR_R, which probes the VM table then the host table at
// run time. ArgFrame/RetOffset are frame-relative byte offsets, not
// register reads - vm/exec decodes slots 1 and 2 as raw int16 offsets
// added to the current frame base, for every one of the three forms.
func (c *ctx) emitCall(fn *ir.Function, inst ir.Instruction) error {
	p := inst.Call
	_ = fn

	if p.Callee.Class() == ir.ClassRegFrame {
		reg := uint16(ir.RegOffset(p.Callee))
		_, err := c.enc.EmitOp3(op.JSR_R, reg, uint16(p.ArgFrame), uint16(p.RetOffset))
		return err
	}

	idx := uint16(ir.FunctionAddr(p.Callee))
	code := op.JSR_VM
	if p.External {
		code = op.JSR_EXT
	}
	_, err := c.enc.EmitOp3(code, idx, uint16(p.ArgFrame), uint16(p.RetOffset))
	return err
}

// emitAlloca lowers a constant-count alloca to ALLOCA (size folded to
// a single immediate at emit time) or a dynamic-count alloca to
// ALLOCAD (count read from a register, per-element size carried as an
// immediate).
func (c *ctx) emitAlloca(inst ir.Instruction) error {
	p := inst.Alloca
	dst := uint16(ir.RegOffset(inst.Ret))
	align := uint16(p.Align)

	if p.Count == nil {
		size := p.ElemSize * p.ConstantN
		lo, hi := split32(size)
		_, err := c.enc.EmitOp4(op.ALLOCA, dst, align, lo, hi)
		return err
	}

	countReg := uint16(ir.RegOffset(p.Count))
	lo, hi := split32(p.ElemSize)
	_, err := c.enc.EmitOpN(op.ALLOCAD, dst, align, countReg, lo, hi)
	return err
}

// emitVaarg lowers the "fetch next vararg" step (VASTART and VACOPY
// are plain VMOp intrinsics, not this class - see vmOpSpecs).
func (c *ctx) emitVaarg(inst ir.Instruction) error {
	p := inst.Vaarg
	dst := uint16(ir.RegOffset(inst.Ret))
	cell := uint16(ir.RegOffset(p.VaList))
	code := op.VAARG32
	if p.Is64 {
		code = op.VAARG64
	}
	_, err := c.enc.EmitOp2(code, dst, cell)
	return err
}

// emitStackCopy lowers a bump-allocated copy: STACKCOPYR when the
// source address is a register, STACKCOPYC when it is a compile-time
// constant (e.g. a rodata literal). The size is always an emit-time
// constant for both forms - vm/exec reads it as a raw immediate, never
// from a register. Both forms let vm/exec assign the destination
// address itself (the next bump-allocator position), written to
// inst.Ret.
func (c *ctx) emitStackCopy(inst ir.Instruction) error {
	p := inst.SCopy
	dst := uint16(ir.RegOffset(inst.Ret))
	if p.Size.Class() != ir.ClassConstant {
		return fmt.Errorf("stackcopy: size must be a compile-time constant")
	}
	sizeLo, sizeHi := split32(ir.Const32(p.Size))

	if p.Src.Class() == ir.ClassConstant {
		srcLo, srcHi := split32(ir.Const32(p.Src))
		_, err := c.enc.EmitOpN(op.STACKCOPYC, dst, srcLo, srcHi, sizeLo, sizeHi)
		return err
	}

	srcReg := uint16(ir.RegOffset(p.Src))
	_, err := c.enc.EmitOpN(op.STACKCOPYR, dst, srcReg, sizeLo, sizeHi)
	return err
}

// emitStackShrink lowers STACKSHRINK: the amount to release is always
// an emit-time constant (vm/exec reads it as a raw 32-bit immediate,
// not a register).
func (c *ctx) emitStackShrink(inst ir.Instruction) error {
	p := inst.SShrink
	if p.Size.Class() != ir.ClassConstant {
		return fmt.Errorf("stackshrink: size must be a compile-time constant")
	}
	lo, hi := split32(ir.Const32(p.Size))
	_, err := c.enc.EmitOp2(op.STACKSHRINK, lo, hi)
	return err
}

// vmOpSpec describes one intrinsic's operand shape: whether slot 0 is
// a result register (written by vm/exec, not read), followed by
// numArgs plain register operands in order.
type vmOpSpec struct {
	hasDst  bool
	numArgs int
}

var vmOpSpecs = map[string]vmOpSpec{
	"MEMCPY":      {true, 3},
	"MEMSET":      {true, 3},
	"MEMMOVE":     {true, 3},
	"MEMCPY_LLVM": {false, 3},
	"MEMSET_LLVM": {false, 3},
	"MEMMOVE_LLVM": {false, 3},
	"MEMCMP":      {true, 3},
	"STRCPY":      {true, 2},
	"STRNCPY":     {true, 3},
	"STRCMP":      {true, 2},
	"STRNCMP":     {true, 3},
	"STRCHR":      {true, 2},
	"STRRCHR":     {true, 2},
	"STRLEN":      {true, 1},
	"VASTART":     {false, 2},
	"VACOPY":      {false, 2},
	"CTZ32":       {true, 1},
	"CLZ32":       {true, 1},
	"POP32":       {true, 1},
	"CTZ64":       {true, 1},
	"CLZ64":       {true, 1},
	"POP64":       {true, 1},
	"UADDO32":     {true, 3},
	"ABS":         {true, 1},
	"FLOOR":       {true, 1},
	"FLOORF":      {true, 1},
	"SIN":         {true, 1},
	"SINF":        {true, 1},
	"COS":         {true, 1},
	"COSF":        {true, 1},
	"POW":         {true, 2},
	"POWF":        {true, 2},
	"FABS":        {true, 1},
	"FABSF":       {true, 1},
	"FMOD":        {true, 2},
	"FMODF":       {true, 2},
	"LOG10":       {true, 1},
	"LOG10F":      {true, 1},
}

// emitVMOp lowers a direct intrinsic pass-through by name, looking up
// both its opcode (package vm/opcode's name table) and its operand
// shape (vmOpSpecs, hand-derived from vm/exec/dispatch_intrinsic.go -
// every one of these opcodes reads/writes plain register operands with
// no immediates, so the shape is one destination slot when the op has
// a result, plus one slot per Arg).
func (c *ctx) emitVMOp(inst ir.Instruction) error {
	p := inst.VMOp
	code, ok := op.ByName(p.Op)
	if !ok {
		return fmt.Errorf("vmop: unknown intrinsic %q", p.Op)
	}
	spec, ok := vmOpSpecs[p.Op]
	if !ok {
		return fmt.Errorf("vmop: no operand-shape entry for %q", p.Op)
	}
	if len(p.Args) != spec.numArgs {
		return fmt.Errorf("vmop: %q expects %d args, got %d", p.Op, spec.numArgs, len(p.Args))
	}

	slots := make([]uint16, 0, spec.numArgs+1)
	if spec.hasDst {
		slots = append(slots, uint16(ir.RegOffset(inst.Ret)))
	}
	for _, a := range p.Args {
		slots = append(slots, uint16(ir.RegOffset(a)))
	}
	_, err := c.enc.EmitOpN(code, slots...)
	return err
}
