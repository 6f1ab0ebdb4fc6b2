/*
 * ssavm - Debug console session state.
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

// Package session holds the state one interactive debug console talks
// to: the machine a unit's functions were loaded into, plus the bits
// of console-only bookkeeping (selected function, disassembly cursor,
// breakpoint set, last call's return frame) that don't belong on
// exec.Machine itself. Machine.Call runs a function to completion with
// no yield point (single-threaded, non-preemptive per §5), so "step"
// and "break" here walk the disassembly listing rather than pausing a
// live execution - there is no partial-execution state to resume from.
package session

import (
	"sort"

	"ssavm/vm/exec"
)

// Session is everything the parser and reader packages share across
// one console invocation.
type Session struct {
	Machine *exec.Machine
	Funcs   map[string]*exec.CompiledFunction
	Names   []string // Funcs' keys, sorted once at New for completion.

	Cur    *exec.CompiledFunction // Function "disas"/"step" are walking.
	PC     int                    // Byte offset into Cur.Text.
	Breaks map[int]bool           // Addresses "break" has marked, keyed by byte offset.

	LastOut exec.Frame // Return frame of the most recent "call", for "regs".
}

// New builds a Session over a machine and its loaded functions.
func New(m *exec.Machine, funcs []*exec.CompiledFunction) *Session {
	s := &Session{
		Machine: m,
		Funcs:   map[string]*exec.CompiledFunction{},
		Breaks:  map[int]bool{},
	}
	for _, fn := range funcs {
		s.Funcs[fn.Name] = fn
		s.Names = append(s.Names, fn.Name)
	}
	sort.Strings(s.Names)
	return s
}
