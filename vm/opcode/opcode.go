/*
 * ssavm - Opcode table.
 *
 * Copyright 2026, ssavm contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package opcode defines the closed bytecode opcode set that package
// vm/exec dispatches and package vm/emit writes. The set is grouped
// into families exactly as laid out in the design: control, per-width
// arithmetic/bitwise, floating point, integer compare, memory, address
// computation, casts, moves/selects, stack, intrinsics, varargs, and a
// handful of special opcodes. Every opcode is a uint16 so it fits a
// single operand slot in the instruction text.
package opcode

// Op is one opcode. The text stream stores either the raw enum value
// (switched dispatch, see vm/exec) or a resolved 16-bit handle
// (threaded dispatch). This module implements the switched variant;
// Op doubles as its own handle in that mode (see ResolveOpcode).
type Op uint16

const (
	NOP Op = iota

	// --- Control ---
	B
	BCOND
	JUMPTABLE
	SWITCH8_BS
	SWITCH32_BS
	SWITCH64_BS
	RET_VOID
	RET_R8
	RET_R16
	RET_R32
	RET_R64
	RET_R32C
	RET_R64C
	JSR_VM
	JSR_EXT
	JSR_R
	UNREACHABLE

	// --- Fused integer compare + branch, i8 and i32 only ---
	EQ8_BR
	NE8_BR
	UGT8_BR
	UGE8_BR
	ULT8_BR
	ULE8_BR
	SGT8_BR
	SGE8_BR
	SLT8_BR
	SLE8_BR
	EQ8_C_BR
	NE8_C_BR
	UGT8_C_BR
	UGE8_C_BR
	ULT8_C_BR
	ULE8_C_BR
	SGT8_C_BR
	SGE8_C_BR
	SLT8_C_BR
	SLE8_C_BR
	EQ32_BR
	NE32_BR
	UGT32_BR
	UGE32_BR
	ULT32_BR
	ULE32_BR
	SGT32_BR
	SGE32_BR
	SLT32_BR
	SLE32_BR
	EQ32_C_BR
	NE32_C_BR
	UGT32_C_BR
	UGE32_C_BR
	ULT32_C_BR
	ULE32_C_BR
	SGT32_C_BR
	SGE32_C_BR
	SLT32_C_BR
	SLE32_C_BR

	// --- Arithmetic/bitwise, width 8 ---
	ADD_R8
	SUB_R8
	MUL_R8
	UDIV_R8
	SDIV_R8
	UREM_R8
	SREM_R8
	SHL_R8
	LSHR_R8
	ASHR_R8
	AND_R8
	OR_R8
	XOR_R8
	ADD_R8C
	SUB_R8C
	MUL_R8C
	UDIV_R8C
	SDIV_R8C
	UREM_R8C
	SREM_R8C
	SHL_R8C
	LSHR_R8C
	ASHR_R8C
	AND_R8C
	OR_R8C
	XOR_R8C

	// --- Arithmetic/bitwise, width 16 ---
	ADD_R16
	SUB_R16
	MUL_R16
	UDIV_R16
	SDIV_R16
	UREM_R16
	SREM_R16
	SHL_R16
	LSHR_R16
	ASHR_R16
	AND_R16
	OR_R16
	XOR_R16
	ADD_R16C
	SUB_R16C
	MUL_R16C
	UDIV_R16C
	SDIV_R16C
	UREM_R16C
	SREM_R16C
	SHL_R16C
	LSHR_R16C
	ASHR_R16C
	AND_R16C
	OR_R16C
	XOR_R16C

	// --- Arithmetic/bitwise, width 32 (plus accumulator forms) ---
	ADD_R32
	SUB_R32
	MUL_R32
	UDIV_R32
	SDIV_R32
	UREM_R32
	SREM_R32
	SHL_R32
	LSHR_R32
	ASHR_R32
	AND_R32
	OR_R32
	XOR_R32
	ADD_R32C
	SUB_R32C
	MUL_R32C
	UDIV_R32C
	SDIV_R32C
	UREM_R32C
	SREM_R32C
	SHL_R32C
	LSHR_R32C
	ASHR_R32C
	AND_R32C
	OR_R32C
	XOR_R32C
	ADD_ACC_R32
	SUB_ACC_R32
	MUL_ACC_R32
	UDIV_ACC_R32
	SDIV_ACC_R32
	UREM_ACC_R32
	SREM_ACC_R32
	SHL_ACC_R32
	LSHR_ACC_R32
	ASHR_ACC_R32
	AND_ACC_R32
	OR_ACC_R32
	XOR_ACC_R32
	ADD_ACC_R32C
	SUB_ACC_R32C
	MUL_ACC_R32C
	UDIV_ACC_R32C
	SDIV_ACC_R32C
	UREM_ACC_R32C
	SREM_ACC_R32C
	SHL_ACC_R32C
	LSHR_ACC_R32C
	ASHR_ACC_R32C
	AND_ACC_R32C
	OR_ACC_R32C
	XOR_ACC_R32C
	ADD_2ACC_R32
	SUB_2ACC_R32
	MUL_2ACC_R32
	UDIV_2ACC_R32
	SDIV_2ACC_R32
	UREM_2ACC_R32
	SREM_2ACC_R32
	SHL_2ACC_R32
	LSHR_2ACC_R32
	ASHR_2ACC_R32
	AND_2ACC_R32
	OR_2ACC_R32
	XOR_2ACC_R32
	INC_R32
	DEC_R32

	// --- Arithmetic/bitwise, width 64 ---
	ADD_R64
	SUB_R64
	MUL_R64
	UDIV_R64
	SDIV_R64
	UREM_R64
	SREM_R64
	SHL_R64
	LSHR_R64
	ASHR_R64
	AND_R64
	OR_R64
	XOR_R64
	ADD_R64C
	SUB_R64C
	MUL_R64C
	UDIV_R64C
	SDIV_R64C
	UREM_R64C
	SREM_R64C
	SHL_R64C
	LSHR_R64C
	ASHR_R64C
	AND_R64C
	OR_R64C
	XOR_R64C

	// --- Floating point arithmetic ---
	ADD_FLT
	SUB_FLT
	MUL_FLT
	DIV_FLT
	ADD_FLTC
	SUB_FLTC
	MUL_FLTC
	DIV_FLTC
	ADD_DBL
	SUB_DBL
	MUL_DBL
	DIV_DBL
	ADD_DBLC
	SUB_DBLC
	MUL_DBLC
	DIV_DBLC

	// --- Floating point compare, ordered/unordered ---
	FCMP_OEQ_FLT
	FCMP_OGT_FLT
	FCMP_OGE_FLT
	FCMP_OLT_FLT
	FCMP_OLE_FLT
	FCMP_ONE_FLT
	FCMP_ORD_FLT
	FCMP_UNO_FLT
	FCMP_UEQ_FLT
	FCMP_UGT_FLT
	FCMP_UGE_FLT
	FCMP_ULT_FLT
	FCMP_ULE_FLT
	FCMP_UNE_FLT
	FCMP_OEQ_DBL
	FCMP_OGT_DBL
	FCMP_OGE_DBL
	FCMP_OLT_DBL
	FCMP_OLE_DBL
	FCMP_ONE_DBL
	FCMP_ORD_DBL
	FCMP_UNO_DBL
	FCMP_UEQ_DBL
	FCMP_UGT_DBL
	FCMP_UGE_DBL
	FCMP_ULT_DBL
	FCMP_ULE_DBL
	FCMP_UNE_DBL

	// --- Integer compare, widths 8/16/32/64, widen to i32 0/1 ---
	EQ8
	NE8
	UGT8
	UGE8
	ULT8
	ULE8
	SGT8
	SGE8
	SLT8
	SLE8
	EQ8C
	NE8C
	UGT8C
	UGE8C
	ULT8C
	ULE8C
	SGT8C
	SGE8C
	SLT8C
	SLE8C
	EQ16
	NE16
	UGT16
	UGE16
	ULT16
	ULE16
	SGT16
	SGE16
	SLT16
	SLE16
	EQ16C
	NE16C
	UGT16C
	UGE16C
	ULT16C
	ULE16C
	SGT16C
	SGE16C
	SLT16C
	SLE16C
	EQ32
	NE32
	UGT32
	UGE32
	ULT32
	ULE32
	SGT32
	SGE32
	SLT32
	SLE32
	EQ32C
	NE32C
	UGT32C
	UGE32C
	ULT32C
	ULE32C
	SGT32C
	SGE32C
	SLT32C
	SLE32C
	EQ64
	NE64
	UGT64
	UGE64
	ULT64
	ULE64
	SGT64
	SGE64
	SLT64
	SLE64
	EQ64C
	NE64C
	UGT64C
	UGE64C
	ULT64C
	ULE64C
	SGT64C
	SGE64C
	SLT64C
	SLE64C

	// --- Memory: loads ---
	LOAD8
	LOAD8_OFF
	LOAD8_ROFF
	LOAD8_G
	LOAD8_ZEXT_32
	LOAD8_SEXT_32
	LOAD8_OFF_ZEXT_32
	LOAD8_OFF_SEXT_32
	LOAD16
	LOAD16_OFF
	LOAD16_ROFF
	LOAD16_G
	LOAD16_ZEXT_32
	LOAD16_SEXT_32
	LOAD16_OFF_ZEXT_32
	LOAD16_OFF_SEXT_32
	LOAD32
	LOAD32_OFF
	LOAD32_ROFF
	LOAD32_G
	LOAD64
	LOAD64_OFF
	LOAD64_ROFF
	LOAD64_G

	// --- Memory: stores ---
	STORE8
	STORE8_OFF
	STORE8_C_OFF
	STORE8_G
	STORE16
	STORE16_OFF
	STORE16_C_OFF
	STORE16_G
	STORE32
	STORE32_OFF
	STORE32_C_OFF
	STORE32_G
	STORE64
	STORE64_OFF
	STORE64_C_OFF
	STORE64_G

	// --- Address computation ---
	LEA_R32_SHL
	LEA_R32_SHL2
	LEA_R32_SHL_OFF
	LEA_R32_MUL_OFF

	// --- Casts ---
	CAST_8_TRUNC_16
	CAST_8_TRUNC_32
	CAST_8_TRUNC_64
	CAST_16_TRUNC_32
	CAST_16_TRUNC_64
	CAST_32_TRUNC_64
	CAST_16_ZEXT_8
	CAST_32_ZEXT_8
	CAST_32_ZEXT_16
	CAST_64_ZEXT_8
	CAST_64_ZEXT_16
	CAST_64_ZEXT_32
	CAST_16_SEXT_8
	CAST_32_SEXT_8
	CAST_32_SEXT_16
	CAST_64_SEXT_8
	CAST_64_SEXT_16
	CAST_64_SEXT_32
	CAST_32_FPTOSI_FLT
	CAST_32_FPTOSI_DBL
	CAST_64_FPTOSI_FLT
	CAST_64_FPTOSI_DBL
	CAST_32_FPTOUI_FLT
	CAST_32_FPTOUI_DBL
	CAST_64_FPTOUI_FLT
	CAST_64_FPTOUI_DBL
	CAST_FLT_SITOFP_32
	CAST_DBL_SITOFP_32
	CAST_FLT_SITOFP_64
	CAST_DBL_SITOFP_64
	CAST_FLT_UITOFP_32
	CAST_DBL_UITOFP_32
	CAST_FLT_UITOFP_64
	CAST_DBL_UITOFP_64
	CAST_DBL_FPEXT_FLT
	CAST_FLT_FPTRUNC_DBL

	// --- Moves & selects ---
	MOV8
	MOV32
	MOV64
	MOV8_C
	MOV16_C
	MOV32_C
	MOV64_C
	SELECT8_RR
	SELECT8_RC
	SELECT8_CR
	SELECT8_CC
	SELECT16_RR
	SELECT16_RC
	SELECT16_CR
	SELECT16_CC
	SELECT32_RR
	SELECT32_RC
	SELECT32_CR
	SELECT32_CC
	SELECT64_RR
	SELECT64_RC
	SELECT64_CR
	SELECT64_CC

	// --- Stack ---
	ALLOCA
	ALLOCAD
	STACKSAVE
	STACKRESTORE
	STACKSHRINK
	STACKCOPYR
	STACKCOPYC

	// --- Intrinsics & libc-ish ---
	MEMCPY
	MEMSET
	MEMMOVE
	MEMCMP
	STRCPY
	STRNCPY
	STRCMP
	STRNCMP
	STRCHR
	STRRCHR
	STRLEN
	MEMCPY_LLVM
	MEMSET_LLVM
	MEMMOVE_LLVM
	CTZ32
	CTZ64
	CLZ32
	CLZ64
	POP32
	POP64
	UADDO32
	FLOOR
	FLOORF
	SIN
	SINF
	COS
	COSF
	POW
	POWF
	FABS
	FABSF
	FMOD
	FMODF
	LOG10
	LOG10F
	ABS
	MLA32

	// --- Varargs ---
	VASTART
	VAARG32
	VAARG64
	VACOPY

	// --- Special ---
	JIT_CALL
	INSTRUMENT_COUNT

	// numOpcodes must stay last; it is the size of the dispatch table.
	numOpcodes
)

// Count is the number of distinct opcodes in the closed set.
const Count = int(numOpcodes)

// Valid reports whether op is one of the enumerated opcodes.
func Valid(op Op) bool { return op < numOpcodes }
