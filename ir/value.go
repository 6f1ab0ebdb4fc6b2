package ir

// ValueClass is the closed set of operand classes every IR value
// belongs to.
type ValueClass uint8

const (
	ClassRegFrame ValueClass = iota
	ClassConstant
	ClassGlobalVar
	ClassFunction
)

func (c ValueClass) String() string {
	switch c {
	case ClassRegFrame:
		return "regframe"
	case ClassConstant:
		return "constant"
	case ClassGlobalVar:
		return "globalvar"
	case ClassFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is any operand an emitter may encounter. Every Value reports
// its type and its class; the typed accessors below panic if called
// against the wrong class, mirroring how the teacher's value-table
// accessors assume the caller already switched on value_class.
type Value interface {
	Type() Type
	Class() ValueClass
}

// Reg is a regframe-class value: it lives at a signed 16-bit frame
// offset assigned by a prior register-allocation pass.
type Reg struct {
	Typ    Type
	Offset int16
}

func (r Reg) Type() Type        { return r.Typ }
func (r Reg) Class() ValueClass { return ClassRegFrame }

// Const is a constant-class value: literal bits known at emit time.
// Bits holds the raw pattern (sign/zero-extended as appropriate by the
// caller); Float64 holds the decoded floating value when Typ is float
// or double, so NaN can be tested without bit-twiddling at every call
// site.
type Const struct {
	Typ     Type
	Bits    uint64
	Float64 float64
}

func (c Const) Type() Type        { return c.Typ }
func (c Const) Class() ValueClass { return ClassConstant }

// ConstInt builds an integer constant from a signed 64-bit value,
// truncated to the type's width.
func ConstInt(t Type, v int64) Const {
	mask := uint64(1)<<uint(t.Bits) - 1
	if t.Bits >= 64 {
		mask = ^uint64(0)
	}
	return Const{Typ: t, Bits: uint64(v) & mask}
}

// ConstFloat builds a float or double constant.
func ConstFloat(t Type, v float64) Const {
	return Const{Typ: t, Float64: v}
}

// GlobalVar is a globalvar-class value: a 32-bit guest address known
// at emit time.
type GlobalVar struct {
	Typ  Type
	Addr uint32
	Name string
}

func (g GlobalVar) Type() Type        { return g.Typ }
func (g GlobalVar) Class() ValueClass { return ClassGlobalVar }

// FuncRef is a function-class value: an index into the function
// table, materialised as a 32-bit address at load time.
type FuncRef struct {
	Typ   Type
	Index uint32
	Name  string
}

func (f FuncRef) Type() Type        { return f.Typ }
func (f FuncRef) Class() ValueClass { return ClassFunction }

// TypeOf is the §6 type query, trivial here since every Value already
// carries its Type.
func TypeOf(v Value) Type { return v.Type() }

// RegOffset is the §6 value_reg query.
func RegOffset(v Value) int16 {
	return v.(Reg).Offset
}

// Const32 is the §6 value_const32 query.
func Const32(v Value) uint32 {
	return uint32(v.(Const).Bits)
}

// Const64 is the §6 value_const64 query.
func Const64(v Value) uint64 {
	return v.(Const).Bits
}

// FunctionAddr is the §6 value_function_addr query: the function's
// table index, which the call-frame driver and loader materialise as
// a guest address.
func FunctionAddr(v Value) uint32 {
	switch val := v.(type) {
	case FuncRef:
		return val.Index
	case GlobalVar:
		return val.Addr
	default:
		panic("ir: FunctionAddr of non-function/global value")
	}
}
