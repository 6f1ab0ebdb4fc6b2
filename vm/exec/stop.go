package exec

import "fmt"

// StopReason is one of the five non-local exit reasons §4.A/§7 define.
type StopReason int

const (
	StopExit StopReason = iota
	StopAbort
	StopUnreachable
	StopBadInstruction
	StopBadFunction
)

func (r StopReason) String() string {
	switch r {
	case StopExit:
		return "exit"
	case StopAbort:
		return "abort"
	case StopUnreachable:
		return "unreachable"
	case StopBadInstruction:
		return "bad instruction"
	case StopBadFunction:
		return "bad function"
	default:
		return "unknown stop reason"
	}
}

// Stop is the non-local exit carried by panic/recover, standing in for
// the original's vm_stop -> longjmp. Code is the exit/abort code, or
// the bad opcode/function id for the diagnostic reasons.
type Stop struct {
	Reason StopReason
	Code   int32
}

func (s Stop) Error() string {
	return fmt.Sprintf("vm stop: %s (code %d)", s.Reason, s.Code)
}

func stop(reason StopReason, code int32) {
	panic(Stop{Reason: reason, Code: code})
}
