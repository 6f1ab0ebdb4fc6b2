package opcode

// FixupShape describes how many block-id operands an opcode carries
// for the branch-fixup pass (§4.D), and at what 16-bit-slot offset
// from the opcode header they start. SWITCH*_BS's displacement array
// length depends on the case count recorded at emit time, so its
// shape is resolved dynamically by the fixup pass rather than here.
type FixupShape struct {
	NumTargets int // -1 means "dynamic, consult the emitted case count"
	SlotOffset int // operand slot index (0-based) where targets begin
}

// fixupShapes enumerates every opcode the branch-fixup pass rewrites.
var fixupShapes = map[Op]FixupShape{
	B:     {NumTargets: 1, SlotOffset: 0},
	BCOND: {NumTargets: 2, SlotOffset: 1},

	// Every fused compare-and-branch opcode reads its two displacements
	// from slots 0,1 (the ternary `cond ? I[0] : I[1]` in the original),
	// with the compared operands starting at slot 2 regardless of
	// whether the rhs is a register or an embedded immediate.
	EQ8_BR: {2, 0}, NE8_BR: {2, 0}, UGT8_BR: {2, 0}, UGE8_BR: {2, 0},
	ULT8_BR: {2, 0}, ULE8_BR: {2, 0}, SGT8_BR: {2, 0}, SGE8_BR: {2, 0},
	SLT8_BR: {2, 0}, SLE8_BR: {2, 0},
	EQ8_C_BR: {2, 0}, NE8_C_BR: {2, 0}, UGT8_C_BR: {2, 0}, UGE8_C_BR: {2, 0},
	ULT8_C_BR: {2, 0}, ULE8_C_BR: {2, 0}, SGT8_C_BR: {2, 0}, SGE8_C_BR: {2, 0},
	SLT8_C_BR: {2, 0}, SLE8_C_BR: {2, 0},

	EQ32_BR: {2, 0}, NE32_BR: {2, 0}, UGT32_BR: {2, 0}, UGE32_BR: {2, 0},
	ULT32_BR: {2, 0}, ULE32_BR: {2, 0}, SGT32_BR: {2, 0}, SGE32_BR: {2, 0},
	SLT32_BR: {2, 0}, SLE32_BR: {2, 0},
	EQ32_C_BR: {2, 0}, NE32_C_BR: {2, 0}, UGT32_C_BR: {2, 0}, UGE32_C_BR: {2, 0},
	ULT32_C_BR: {2, 0}, ULE32_C_BR: {2, 0}, SGT32_C_BR: {2, 0}, SGE32_C_BR: {2, 0},
	SLT32_C_BR: {2, 0}, SLE32_C_BR: {2, 0},

	JUMPTABLE:   {NumTargets: -1, SlotOffset: 2},
	SWITCH8_BS:  {NumTargets: -1, SlotOffset: -1},
	SWITCH32_BS: {NumTargets: -1, SlotOffset: -1},
	SWITCH64_BS: {NumTargets: -1, SlotOffset: -1},
}

// FixupShapeOf returns the fixup shape for op and whether op carries
// branch operands at all.
func FixupShapeOf(op Op) (FixupShape, bool) {
	s, ok := fixupShapes[op]
	return s, ok
}

// IsCmpBranchFusion reports whether op is one of the fused
// compare-and-branch opcodes (EQ8_BR .. SLE32_C_BR).
func IsCmpBranchFusion(op Op) bool {
	_, ok := fixupShapes[op]
	return ok && op != B && op != BCOND && op != JUMPTABLE &&
		op != SWITCH8_BS && op != SWITCH32_BS && op != SWITCH64_BS
}
