package exec

import (
	"math"
	"testing"

	"ssavm/ir"
)

// TestCmpFloatNaNLaws is Testable Property 5, quantified over a table
// of ordinary and NaN doubles: ORD(x,y) = !UNO(x,y); OEQ(x,x) =
// !isnan(x); UEQ(NaN, anything) = true.
func TestCmpFloatNaNLaws(t *testing.T) {
	nan := math.NaN()
	values := []float64{0, 1, -1, 3.5, -3.5, math.Inf(1), math.Inf(-1), nan}
	isNaN := math.IsNaN

	for _, x := range values {
		for _, y := range values {
			ord := cmpFloat(ir.PredORD, x, y, isNaN)
			uno := cmpFloat(ir.PredUNO, x, y, isNaN)
			if ord == uno {
				t.Errorf("ORD(%v,%v)=%v, UNO(%v,%v)=%v: ORD must equal !UNO", x, y, ord, x, y, uno)
			}
		}
		oeq := cmpFloat(ir.PredOEQ, x, x, isNaN)
		if want := !isNaN(x); oeq != want {
			t.Errorf("OEQ(%v,%v) = %v, want %v (!isnan(x))", x, x, oeq, want)
		}
	}

	for _, y := range values {
		if !cmpFloat(ir.PredUEQ, nan, y, isNaN) {
			t.Errorf("UEQ(NaN,%v) = false, want true", y)
		}
		if !cmpFloat(ir.PredUEQ, y, nan, isNaN) {
			t.Errorf("UEQ(%v,NaN) = false, want true", y)
		}
	}
}

// TestCmpFloatOrderedPredicatesRejectNaN sweeps every ordered
// predicate against every NaN-involving pair to confirm none of them
// can return true when either operand is NaN - the runtime
// counterpart to vm/emit's emit-time rejection of NaN constant
// operands.
func TestCmpFloatOrderedPredicatesRejectNaN(t *testing.T) {
	ordered := []ir.Pred{ir.PredOEQ, ir.PredOGT, ir.PredOGE, ir.PredOLT, ir.PredOLE, ir.PredONE, ir.PredORD}
	nan := math.NaN()
	pairs := [][2]float64{{nan, 1}, {1, nan}, {nan, nan}}
	for _, p := range ordered {
		for _, pair := range pairs {
			if cmpFloat(p, pair[0], pair[1], math.IsNaN) {
				t.Errorf("ordered predicate %d true for NaN pair %v", p, pair)
			}
		}
	}
}
