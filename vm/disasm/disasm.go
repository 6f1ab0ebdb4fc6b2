// Package disasm pretty-prints finished function text back to
// mnemonic form, the same job rcornwell-S370/emu/disassemble does for
// S/370 channel programs: a type-keyed opcode table drives both the
// operand formatting and the byte length consumed, with a safe
// fallback for anything the table doesn't recognize so a corrupt or
// truncated stream never hangs the caller.
package disasm

import (
	"encoding/binary"
	"fmt"
	"strings"

	op "ssavm/vm/opcode"
)

func slot16(text []byte, byteOff int) uint16 {
	return binary.LittleEndian.Uint16(text[byteOff : byteOff+2])
}

func slot32(text []byte, byteOff int) uint32 {
	return binary.LittleEndian.Uint32(text[byteOff : byteOff+4])
}

// dynamicLen computes the operand slot count for the variable-length
// opcode families, mirroring vm/fixup/fixup.go's Resolve: JUMPTABLE
// carries a case count at slot 1 followed by that many displacement
// slots; the SWITCH*_BS family carries a case count at slot 1,
// followed by that many sorted keys (key width set by switchKeyWidth)
// and one extra trailing displacement for the no-match default.
func dynamicLen(code op.Op, text []byte, operandStart int) int {
	switch code {
	case op.JUMPTABLE:
		n := int(slot16(text, operandStart+2))
		return 2 + n
	case op.SWITCH8_BS, op.SWITCH32_BS, op.SWITCH64_BS:
		p := int(slot16(text, operandStart+2))
		return 2 + p*switchKeyWidth(code) + (p + 1)
	}
	return 0
}

// undefined mirrors disassemble.go's undefined(): when the opcode
// handle doesn't name anything in the closed set (corrupt text, or a
// stream produced by a newer/older encoder version), guess a length
// long enough to keep decoding moving instead of looping forever.
func undefined(text []byte, pc int) (string, int) {
	remaining := len(text) - pc
	n := 2
	if remaining < n {
		n = remaining
	}
	return fmt.Sprintf("?? (0x%04x)", slot16(text, pc)), n
}

// Disassemble decodes the single instruction at byte offset pc in
// text, returning its mnemonic form and the number of bytes it
// occupies (header plus operands). pc must point at an opcode
// header, not into the middle of an instruction's operands.
func Disassemble(text []byte, pc int) (string, int) {
	if pc < 0 || pc+2 > len(text) {
		return "<truncated>", 0
	}
	code := op.Op(slot16(text, pc))
	if !op.Valid(code) {
		return undefined(text, pc)
	}

	operandStart := pc + 2
	var n int
	if isDynamic(code) {
		n = dynamicLen(code, text, operandStart)
	} else {
		var ok bool
		n, ok = operandSlots(code)
		if !ok {
			return undefined(text, pc)
		}
	}

	total := 2 + n*2
	if operandStart+n*2 > len(text) {
		return undefined(text, pc)
	}

	mnemonic := code.String()
	body := formatOperands(code, text, operandStart, n, pc)
	if body == "" {
		return mnemonic, total
	}
	return mnemonic + " " + body, total
}

// isDynamic reports whether code belongs to the variable-length
// family (its slot count needs dynamicLen rather than operandSlots).
func isDynamic(code op.Op) bool {
	switch code {
	case op.JUMPTABLE, op.SWITCH8_BS, op.SWITCH32_BS, op.SWITCH64_BS:
		return true
	}
	return false
}

// formatOperands renders an instruction's operand slots as text.
// Branch-carrying opcodes show the resolved absolute target address
// (operandStart + the slot's signed displacement, the same rule
// vm/fixup/fixup.go's patchDisp applies); every other opcode falls
// back to a plain signed-slot dump, which is enough to read a frame
// offset or an embedded immediate half back out.
func formatOperands(code op.Op, text []byte, operandStart, n, pc int) string {
	switch code {
	case op.JUMPTABLE:
		return formatJumptable(text, operandStart, n)
	case op.SWITCH8_BS, op.SWITCH32_BS, op.SWITCH64_BS:
		return formatSwitch(code, text, operandStart, n)
	}

	if shape, ok := op.FixupShapeOf(code); ok {
		return formatBranchy(shape, text, operandStart, n)
	}

	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v := int16(slot16(text, operandStart+i*2))
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return strings.Join(parts, ", ")
}

func target(operandStart int, dispSlot int16) int {
	return operandStart + int(dispSlot)
}

func formatBranchy(shape op.FixupShape, text []byte, operandStart, n int) string {
	parts := make([]string, 0, n)
	targets := map[int]bool{}
	for i := 0; i < shape.NumTargets; i++ {
		targets[shape.SlotOffset+i] = true
	}
	for i := 0; i < n; i++ {
		v := int16(slot16(text, operandStart+i*2))
		if targets[i] {
			parts = append(parts, fmt.Sprintf("-> 0x%x", target(operandStart, v)))
		} else {
			parts = append(parts, fmt.Sprintf("%d", v))
		}
	}
	return strings.Join(parts, ", ")
}

func formatJumptable(text []byte, operandStart, n int) string {
	selector := int16(slot16(text, operandStart))
	count := int(slot16(text, operandStart+2))
	parts := []string{fmt.Sprintf("sel=%d", selector)}
	for i := 0; i < count; i++ {
		d := int16(slot16(text, operandStart+4+i*2))
		parts = append(parts, fmt.Sprintf("case %d -> 0x%x", i, target(operandStart, d)))
	}
	return strings.Join(parts, ", ")
}

func formatSwitch(code op.Op, text []byte, operandStart, n int) string {
	selector := int16(slot16(text, operandStart))
	p := int(slot16(text, operandStart+2))
	kw := switchKeyWidth(code)
	keysStart := operandStart + 4
	dispStart := keysStart + p*kw*2

	parts := []string{fmt.Sprintf("sel=%d", selector)}
	for i := 0; i < p; i++ {
		var key uint64
		switch kw {
		case 1:
			key = uint64(slot16(text, keysStart+i*2))
		case 2:
			key = uint64(slot32(text, keysStart+i*4))
		case 4:
			lo := slot32(text, keysStart+i*8)
			hi := slot32(text, keysStart+i*8+4)
			key = uint64(hi)<<32 | uint64(lo)
		}
		d := int16(slot16(text, dispStart+i*2))
		parts = append(parts, fmt.Sprintf("key %d -> 0x%x", key, target(operandStart, d)))
	}
	def := int16(slot16(text, dispStart+p*2))
	parts = append(parts, fmt.Sprintf("default -> 0x%x", target(operandStart, def)))
	return strings.Join(parts, ", ")
}

// Function disassembles an entire function's text into one line per
// instruction, each prefixed with its byte offset, for the debug
// console's "disas" command.
func Function(text []byte) []string {
	var lines []string
	pc := 0
	for pc < len(text) {
		mnemonic, n := Disassemble(text, pc)
		lines = append(lines, fmt.Sprintf("%04x: %s", pc, mnemonic))
		if n <= 0 {
			break
		}
		pc += n
	}
	return lines
}
