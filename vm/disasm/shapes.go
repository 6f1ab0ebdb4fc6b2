package disasm

import op "ssavm/vm/opcode"

// operandSlots returns the number of 16-bit operand slots that follow
// an opcode's header, for every opcode whose length does not depend
// on its own operands. JUMPTABLE and SWITCH8/32/64_BS are excluded -
// their slot count depends on a case-count field carried in the
// instruction itself, so dynamicLen handles those separately, the same
// split vm/fixup/fixup.go's Resolve uses.
//
// The ranges below follow opcode.go's declaration order exactly;
// within each family width8/16 const and register forms share a slot
// count because an 8/16-bit immediate fits a single raw slot, while
// width32/64 immediates need extra slots to carry a split 32 or 64-bit
// value.
func operandSlots(code op.Op) (int, bool) {
	switch {
	case code == op.NOP:
		return 0, true
	case code == op.B:
		return 1, true
	case code == op.BCOND:
		return 3, true
	case code == op.JUMPTABLE, code == op.SWITCH8_BS, code == op.SWITCH32_BS, code == op.SWITCH64_BS:
		return 0, false
	case code == op.RET_VOID, code == op.UNREACHABLE:
		return 0, true
	case code == op.RET_R8, code == op.RET_R16, code == op.RET_R32, code == op.RET_R64:
		return 1, true
	case code == op.RET_R32C:
		return 2, true
	case code == op.RET_R64C:
		return 4, true
	case code == op.JSR_VM, code == op.JSR_EXT, code == op.JSR_R:
		return 3, true

	// fused compare+branch
	case code >= op.EQ8_BR && code <= op.SLE8_BR:
		return 4, true
	case code >= op.EQ8_C_BR && code <= op.SLE8_C_BR:
		return 4, true
	case code >= op.EQ32_BR && code <= op.SLE32_BR:
		return 4, true
	case code >= op.EQ32_C_BR && code <= op.SLE32_C_BR:
		return 5, true

	// arithmetic/bitwise width 8 and 16 (register and const forms alike)
	case code >= op.ADD_R8 && code <= op.XOR_R8C:
		return 3, true
	case code >= op.ADD_R16 && code <= op.XOR_R16C:
		return 3, true

	// arithmetic/bitwise width 32
	case code >= op.ADD_R32 && code <= op.XOR_R32:
		return 3, true
	case code >= op.ADD_R32C && code <= op.XOR_R32C:
		return 4, true
	case code >= op.ADD_ACC_R32 && code <= op.XOR_ACC_R32:
		return 2, true
	case code >= op.ADD_ACC_R32C && code <= op.XOR_ACC_R32C:
		return 3, true
	case code >= op.ADD_2ACC_R32 && code <= op.XOR_2ACC_R32:
		return 1, true
	case code == op.INC_R32, code == op.DEC_R32:
		return 2, true

	// arithmetic/bitwise width 64
	case code >= op.ADD_R64 && code <= op.XOR_R64:
		return 3, true
	case code >= op.ADD_R64C && code <= op.XOR_R64C:
		return 6, true

	// floating point arithmetic
	case code >= op.ADD_FLT && code <= op.DIV_FLT:
		return 3, true
	case code >= op.ADD_FLTC && code <= op.DIV_FLTC:
		return 4, true
	case code >= op.ADD_DBL && code <= op.DIV_DBL:
		return 3, true
	case code >= op.ADD_DBLC && code <= op.DIV_DBLC:
		return 6, true

	// floating point compare (no const forms)
	case code >= op.FCMP_OEQ_FLT && code <= op.FCMP_UNE_DBL:
		return 3, true

	// integer compare, widths 8/16/32 register forms and 8/16 const forms
	case code >= op.EQ8 && code <= op.SLE8C:
		return 3, true
	case code >= op.EQ16 && code <= op.SLE16C:
		return 3, true
	case code >= op.EQ32 && code <= op.SLE32:
		return 3, true
	case code >= op.EQ32C && code <= op.SLE32C:
		return 4, true
	case code >= op.EQ64 && code <= op.SLE64:
		return 3, true
	case code >= op.EQ64C && code <= op.SLE64C:
		return 6, true

	// memory loads, width 8
	case code == op.LOAD8, code == op.LOAD8_ZEXT_32, code == op.LOAD8_SEXT_32:
		return 2, true
	case code == op.LOAD8_OFF, code == op.LOAD8_G,
		code == op.LOAD8_OFF_ZEXT_32, code == op.LOAD8_OFF_SEXT_32:
		return 3, true
	case code == op.LOAD8_ROFF:
		return 5, true

	// memory loads, width 16
	case code == op.LOAD16, code == op.LOAD16_ZEXT_32, code == op.LOAD16_SEXT_32:
		return 2, true
	case code == op.LOAD16_OFF, code == op.LOAD16_G,
		code == op.LOAD16_OFF_ZEXT_32, code == op.LOAD16_OFF_SEXT_32:
		return 3, true
	case code == op.LOAD16_ROFF:
		return 5, true

	// memory loads, width 32/64
	case code == op.LOAD32, code == op.LOAD64:
		return 2, true
	case code == op.LOAD32_OFF, code == op.LOAD32_G, code == op.LOAD64_OFF, code == op.LOAD64_G:
		return 3, true
	case code == op.LOAD32_ROFF, code == op.LOAD64_ROFF:
		return 5, true

	// memory stores, widths 8/16
	case code == op.STORE8, code == op.STORE16:
		return 2, true
	case code == op.STORE8_OFF, code == op.STORE8_C_OFF, code == op.STORE8_G,
		code == op.STORE16_OFF, code == op.STORE16_C_OFF, code == op.STORE16_G:
		return 3, true

	// memory stores, width 32
	case code == op.STORE32:
		return 2, true
	case code == op.STORE32_OFF, code == op.STORE32_G:
		return 3, true
	case code == op.STORE32_C_OFF:
		return 4, true

	// memory stores, width 64
	case code == op.STORE64:
		return 2, true
	case code == op.STORE64_OFF, code == op.STORE64_G:
		return 3, true
	case code == op.STORE64_C_OFF:
		return 6, true

	// address computation
	case code == op.LEA_R32_SHL2:
		return 3, true
	case code == op.LEA_R32_SHL:
		return 4, true
	case code == op.LEA_R32_SHL_OFF:
		return 6, true
	case code == op.LEA_R32_MUL_OFF:
		return 7, true

	// casts: every CAST_* opcode is a plain dst,src pair
	case code >= op.CAST_8_TRUNC_16 && code <= op.CAST_FLT_FPTRUNC_DBL:
		return 2, true

	// moves
	case code == op.MOV8, code == op.MOV32, code == op.MOV64,
		code == op.MOV8_C, code == op.MOV16_C:
		return 2, true
	case code == op.MOV32_C:
		return 3, true
	case code == op.MOV64_C:
		return 5, true

	// selects, widths 8/16: every RR/RC/CR/CC shape is 4 slots
	case code == op.SELECT8_RR, code == op.SELECT8_RC, code == op.SELECT8_CR, code == op.SELECT8_CC,
		code == op.SELECT16_RR, code == op.SELECT16_RC, code == op.SELECT16_CR, code == op.SELECT16_CC:
		return 4, true

	// selects, width 32
	case code == op.SELECT32_RR:
		return 4, true
	case code == op.SELECT32_RC, code == op.SELECT32_CR:
		return 5, true
	case code == op.SELECT32_CC:
		return 6, true

	// selects, width 64
	case code == op.SELECT64_RR:
		return 4, true
	case code == op.SELECT64_RC, code == op.SELECT64_CR:
		return 7, true
	case code == op.SELECT64_CC:
		return 10, true

	// stack
	case code == op.ALLOCA:
		return 4, true
	case code == op.ALLOCAD:
		return 5, true
	case code == op.STACKSAVE, code == op.STACKRESTORE:
		return 1, true
	case code == op.STACKSHRINK:
		return 2, true
	case code == op.STACKCOPYR:
		return 4, true
	case code == op.STACKCOPYC:
		return 5, true

	// intrinsics & libc-ish, looked up by the same table emit_call.go
	// builds calls through
	case code == op.MEMCPY, code == op.MEMSET, code == op.MEMMOVE, code == op.MEMCMP,
		code == op.STRNCPY, code == op.STRNCMP, code == op.UADDO32:
		return 4, true
	case code == op.STRCPY, code == op.STRCMP, code == op.STRCHR, code == op.STRRCHR,
		code == op.POW, code == op.POWF, code == op.FMOD, code == op.FMODF:
		return 3, true
	case code == op.MEMCPY_LLVM, code == op.MEMSET_LLVM, code == op.MEMMOVE_LLVM:
		return 3, true
	case code == op.STRLEN, code == op.CTZ32, code == op.CLZ32, code == op.POP32,
		code == op.CTZ64, code == op.CLZ64, code == op.POP64, code == op.ABS,
		code == op.FLOOR, code == op.FLOORF, code == op.SIN, code == op.SINF,
		code == op.COS, code == op.COSF, code == op.FABS, code == op.FABSF,
		code == op.LOG10, code == op.LOG10F:
		return 2, true
	case code == op.MLA32:
		return 4, true

	// varargs
	case code == op.VASTART, code == op.VACOPY, code == op.VAARG32, code == op.VAARG64:
		return 2, true

	// special
	case code == op.JIT_CALL:
		return 0, true
	case code == op.INSTRUMENT_COUNT:
		return 2, true
	}
	return 0, false
}

// switchKeyWidth mirrors vm/fixup/fixup.go's helper of the same name:
// how many 16-bit slots one sorted case key occupies for a given
// SWITCH*_BS opcode.
func switchKeyWidth(code op.Op) int {
	switch code {
	case op.SWITCH8_BS:
		return 1
	case op.SWITCH32_BS:
		return 2
	case op.SWITCH64_BS:
		return 4
	}
	return 0
}
