/*
 * ssavm - IR type system.
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

// Package ir provides a minimal, concrete SSA-style intermediate
// representation: the closed type set, the four value classes, and
// function/block/instruction traversal. It stands in for the real IR
// builder and parser, which are out of this module's scope; it
// supplies just enough surface for the bytecode lowering engine in
// package vm to consume.
package ir

// Kind is the closed set of IR type kinds.
type Kind uint8

const (
	KindInt1 Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat
	KindDouble
	KindPointer
	KindFunction
	KindIntX // generic small integer, bit width carried separately
)

func (k Kind) String() string {
	switch k {
	case KindInt1:
		return "int1"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindPointer:
		return "pointer"
	case KindFunction:
		return "function"
	case KindIntX:
		return "intX"
	default:
		return "unknown"
	}
}

// Type describes an IR value's static type: kind, bit width, and (for
// function types) the parameter shape.
type Type struct {
	Kind   Kind
	Bits   uint8 // bit width; 32 for pointer
	Params []Type
	Ret    *Type
}

// Bits for the fixed-width kinds.
func bitsForKind(k Kind) uint8 {
	switch k {
	case KindInt1:
		return 1
	case KindInt8:
		return 8
	case KindInt16:
		return 16
	case KindInt32:
		return 32
	case KindInt64:
		return 64
	case KindFloat:
		return 32
	case KindDouble:
		return 64
	case KindPointer:
		return 32
	default:
		return 0
	}
}

// Int1, Int8, ... construct the fixed-width types.
func Int1() Type    { return Type{Kind: KindInt1, Bits: bitsForKind(KindInt1)} }
func Int8() Type    { return Type{Kind: KindInt8, Bits: bitsForKind(KindInt8)} }
func Int16() Type   { return Type{Kind: KindInt16, Bits: bitsForKind(KindInt16)} }
func Int32() Type   { return Type{Kind: KindInt32, Bits: bitsForKind(KindInt32)} }
func Int64() Type   { return Type{Kind: KindInt64, Bits: bitsForKind(KindInt64)} }
func Float() Type   { return Type{Kind: KindFloat, Bits: bitsForKind(KindFloat)} }
func Double() Type  { return Type{Kind: KindDouble, Bits: bitsForKind(KindDouble)} }
func Pointer() Type { return Type{Kind: KindPointer, Bits: bitsForKind(KindPointer)} }

// IntX constructs a generic small integer type of the given bit width.
func IntX(bits uint8) Type { return Type{Kind: KindIntX, Bits: bits} }

// Function constructs a function type.
func Function(ret Type, params ...Type) Type {
	r := ret
	return Type{Kind: KindFunction, Bits: bitsForKind(KindPointer), Ret: &r, Params: params}
}

// IsFloat reports whether the type is float or double.
func (t Type) IsFloat() bool { return t.Kind == KindFloat || t.Kind == KindDouble }

// IsInteger reports whether the type is one of the integer kinds.
func (t Type) IsInteger() bool {
	switch t.Kind {
	case KindInt1, KindInt8, KindInt16, KindInt32, KindInt64, KindIntX:
		return true
	default:
		return false
	}
}

// Width rounds an integer type's bit width up to the nearest opcode
// family width (8, 16, 32, 64). int1 is treated as 8 for storage and
// dispatch purposes, matching how the teacher's register file packs
// sub-byte flags into a full register.
func (t Type) Width() int {
	switch {
	case t.Bits <= 1:
		return 8
	case t.Bits <= 8:
		return 8
	case t.Bits <= 16:
		return 16
	case t.Bits <= 32:
		return 32
	default:
		return 64
	}
}
