package host

import (
	"bufio"
	"fmt"
	"os"

	"ssavm/vm/exec"
)

// stdin is buffered once so getcharFn doesn't pay a syscall per
// character; the bindings in this file aren't reentrant across
// goroutines, matching exec.Machine's own single-goroutine contract.
var stdin = bufio.NewReader(os.Stdin)

// A host binding's arguments arrive in the same frame Call built for
// them, addressed by the descending convention Call.go documents:
// with N parameters, parameter i sits at offset (N-1-i)*4. Every
// binding below has at most one argument, so that's always offset 0.
const arg0 int16 = 0

// exitFn implements exit(status): unwinds the call stack via the same
// Stop panic dispatch.go's RET/trap paths use, carrying the guest's
// status code through as-is.
func exitFn(ret, args exec.Frame, m *exec.Machine) {
	status := args.S32(arg0)
	panic(exec.Stop{Reason: exec.StopExit, Code: status})
}

// abortFn implements abort(): takes no arguments, always reports
// StopAbort with code 0.
func abortFn(ret, args exec.Frame, m *exec.Machine) {
	panic(exec.Stop{Reason: exec.StopAbort, Code: 0})
}

// putcharFn implements putchar(c): writes one byte to the unit's
// stdout and echoes it back as the return value, matching libc's
// putchar semantics.
func putcharFn(ret, args exec.Frame, m *exec.Machine) {
	c := byte(args.U32(arg0))
	fmt.Fprintf(os.Stdout, "%c", c)
	ret.PutU32(0, uint32(c))
}

// getcharFn implements getchar(): returns the next byte from stdin as
// an unsigned value, or 0xFFFFFFFF (EOF, matching int -1) on read
// failure.
func getcharFn(ret, args exec.Frame, m *exec.Machine) {
	b, err := stdin.ReadByte()
	if err != nil {
		ret.PutU32(0, 0xFFFFFFFF)
		return
	}
	ret.PutU32(0, uint32(b))
}

// putsFn implements puts(s): writes the guest NUL-terminated string at
// address s to stdout followed by a newline, and always returns 0
// (C's puts only promises a non-negative value on success, and every
// binding in the table returns a 32-bit word, so 0 fits the shape
// without inventing a new signature).
func putsFn(ret, args exec.Frame, m *exec.Machine) {
	addr := args.U32(arg0)
	s := readCString(m.Mem, addr)
	fmt.Fprintln(os.Stdout, string(s))
	ret.PutU32(0, 0)
}

// memsetFn implements memset(dst, c, n) as a host-side fallback for
// units that didn't lower it to the in-VM MEMSET opcode (§4.A); same
// semantics, just reached through the external-call path instead of
// dispatch_intrinsic.go's fast path.
func memsetFn(ret, args exec.Frame, m *exec.Machine) {
	// Three parameters: dst, c, n - descending order puts dst at the
	// highest offset, n at offset 0.
	n := args.U32(0)
	c := byte(args.U32(4))
	dst := args.U32(8)
	for i := uint32(0); i < n; i++ {
		m.Mem[dst+i] = c
	}
	ret.PutU32(0, dst)
}

func readCString(mem []byte, addr uint32) []byte {
	end := addr
	for end < uint32(len(mem)) && mem[end] != 0 {
		end++
	}
	return mem[addr:end]
}
