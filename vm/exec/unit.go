package exec

import "log/slog"

// CompiledFunction is a function after emission and branch-fixup: a
// flat text buffer ready for direct dispatch, plus the frame layout
// the caller needs to build an argument area (§4.E).
type CompiledFunction struct {
	Name      string
	Text      []byte
	FrameSize int16
	NumParams int
	IsVararg  bool
}

// HostFunc is a JSR_EXT/table-resolved JSR_R callee: a host binding
// invoked with (return slot, argument frame, owning machine), popping
// its arguments in the same descending order the callee driver used to
// push them (§4.E, "Host functions ... pop their arguments in the same
// descending order using helper accessors").
type HostFunc func(ret, args Frame, m *Machine)

// Machine holds one unit's run-time state: a guest memory image plus the function and
// host-binding tables indexed the way JSR_VM/JSR_EXT/JSR_R address
// them. One Machine belongs to a single goroutine; nothing here is
// synchronized (§5).
type Machine struct {
	Mem       []byte
	VMFuncs   []*CompiledFunction
	ExtFuncs  []HostFunc
	Logger    *slog.Logger
	Trace     bool
	allocaTop uint32
}

// NewMachine allocates a Machine over a guest memory image of the
// given size.
func NewMachine(memSize int) *Machine {
	return &Machine{Mem: make([]byte, memSize)}
}

// SetAllocaBase sets the address ALLOCA/ALLOCAD start bumping from for
// the next Call, letting a config-sized static/data region sit below
// it undisturbed. Only takes effect between calls: Call restores
// allocaTop to whatever it was on entry once the call unwinds, so this
// is meant to be set once at startup, not mid-run.
func (m *Machine) SetAllocaBase(base uint32) {
	m.allocaTop = base
}

func (m *Machine) traceOp(name string, pc int, rf int32) {
	if !m.Trace || m.Logger == nil {
		return
	}
	m.Logger.Debug("op", "opcode", name, "pc", pc, "rf", rf)
}
