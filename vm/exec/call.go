package exec

import "fmt"

// Call is the public entry point of §4.E: it builds the argument area
// directly above the caller's frame top, pushes each argument at
// descending addresses (first argument highest), installs a resumption
// point for the stop-reason non-local exit, and enters the callee's
// text. args are raw 32-bit words - one per parameter, matching the
// original driver's `n_params * sizeof(uint32_t)` argument area and its
// restriction to word-sized parameters (int8/16/32, pointer).
//
// frameTop is the byte offset, relative to guest memory address 0,
// above which the argument area is built; callers with no other frame
// in flight pass 0.
func (m *Machine) Call(fn *CompiledFunction, frameTop int32, args []uint32, out Frame) (reason StopReason, code int32, err error) {
	if fn == nil {
		return StopBadFunction, -1, fmt.Errorf("exec: call to nil function")
	}
	if len(args) != fn.NumParams && !fn.IsVararg {
		return 0, 0, fmt.Errorf("exec: %s expects %d arguments, got %d", fn.Name, fn.NumParams, len(args))
	}

	argAreaSize := int32(len(args)) * 4
	rfa := frameTop + argAreaSize

	argpos := argAreaSize
	for _, a := range args {
		argpos -= 4
		m.putWord(frameTop+argpos, a)
	}

	return m.enter(fn, rfa, out)
}

func (m *Machine) putWord(addr int32, v uint32) {
	Frame{Mem: m.Mem, RF: addr}.PutU32(0, v)
}

// enter installs the non-local-exit resumption point and runs fn's
// text to completion, restoring the alloca pointer on unwind the way
// the original's setjmp-protected vm_function_call leaves iu_alloca_ptr
// for the next top-level call.
func (m *Machine) enter(fn *CompiledFunction, rf int32, out Frame) (reason StopReason, code int32, err error) {
	savedAlloca := m.allocaTop

	defer func() {
		if r := recover(); r != nil {
			s, ok := r.(Stop)
			if !ok {
				panic(r)
			}
			reason = s.Reason
			code = s.Code
			m.allocaTop = savedAlloca
		}
	}()

	final := m.run(fn.Text, rf, out, m.allocaTop)
	m.allocaTop = final
	return StopExit, 0, nil
}
