package opcode

import "testing"

// TestResolveOpcodeRoundTrip is Testable Property 1 as this module's
// single (switched) dispatch strategy expresses it: ResolveOpcode's
// resolved handle must equal the opcode's own enum value for every
// member of the closed set, so the switch in vm/exec and the handle
// resolve.go hands back key off the same number. A threaded dispatch
// would memoise a distinct handle per opcode here instead; under the
// switched variant the round trip is the identity map.
func TestResolveOpcodeRoundTrip(t *testing.T) {
	for o := Op(0); o < numOpcodes; o++ {
		if got := ResolveOpcode(o); got != int16(o) {
			t.Errorf("ResolveOpcode(%d) = %d, want %d", o, got, int16(o))
		}
	}
}

func TestValidBoundary(t *testing.T) {
	if !Valid(0) {
		t.Error("Valid(0) = false, want true")
	}
	if !Valid(numOpcodes - 1) {
		t.Errorf("Valid(%d) = false, want true", numOpcodes-1)
	}
	if Valid(numOpcodes) {
		t.Errorf("Valid(%d) = true, want false", numOpcodes)
	}
}

func TestCountMatchesEnumSize(t *testing.T) {
	if Count != int(numOpcodes) {
		t.Errorf("Count = %d, want %d", Count, numOpcodes)
	}
}
