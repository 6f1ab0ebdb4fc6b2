package exec

import "ssavm/ir"

func cmpInt8(p ir.Pred, a, b uint8) bool {
	switch p {
	case ir.PredEQ:
		return a == b
	case ir.PredNE:
		return a != b
	case ir.PredUGT:
		return a > b
	case ir.PredUGE:
		return a >= b
	case ir.PredULT:
		return a < b
	case ir.PredULE:
		return a <= b
	case ir.PredSGT:
		return int8(a) > int8(b)
	case ir.PredSGE:
		return int8(a) >= int8(b)
	case ir.PredSLT:
		return int8(a) < int8(b)
	case ir.PredSLE:
		return int8(a) <= int8(b)
	}
	panic("exec: bad integer predicate")
}

func cmpInt16(p ir.Pred, a, b uint16) bool {
	switch p {
	case ir.PredEQ:
		return a == b
	case ir.PredNE:
		return a != b
	case ir.PredUGT:
		return a > b
	case ir.PredUGE:
		return a >= b
	case ir.PredULT:
		return a < b
	case ir.PredULE:
		return a <= b
	case ir.PredSGT:
		return int16(a) > int16(b)
	case ir.PredSGE:
		return int16(a) >= int16(b)
	case ir.PredSLT:
		return int16(a) < int16(b)
	case ir.PredSLE:
		return int16(a) <= int16(b)
	}
	panic("exec: bad integer predicate")
}

func cmpInt32(p ir.Pred, a, b uint32) bool {
	switch p {
	case ir.PredEQ:
		return a == b
	case ir.PredNE:
		return a != b
	case ir.PredUGT:
		return a > b
	case ir.PredUGE:
		return a >= b
	case ir.PredULT:
		return a < b
	case ir.PredULE:
		return a <= b
	case ir.PredSGT:
		return int32(a) > int32(b)
	case ir.PredSGE:
		return int32(a) >= int32(b)
	case ir.PredSLT:
		return int32(a) < int32(b)
	case ir.PredSLE:
		return int32(a) <= int32(b)
	}
	panic("exec: bad integer predicate")
}

func cmpInt64(p ir.Pred, a, b uint64) bool {
	switch p {
	case ir.PredEQ:
		return a == b
	case ir.PredNE:
		return a != b
	case ir.PredUGT:
		return a > b
	case ir.PredUGE:
		return a >= b
	case ir.PredULT:
		return a < b
	case ir.PredULE:
		return a <= b
	case ir.PredSGT:
		return int64(a) > int64(b)
	case ir.PredSGE:
		return int64(a) >= int64(b)
	case ir.PredSLT:
		return int64(a) < int64(b)
	case ir.PredSLE:
		return int64(a) <= int64(b)
	}
	panic("exec: bad integer predicate")
}

// cmpFloat implements §4.A's ordered/unordered NaN table for both
// float and double (the two share identical predicate semantics once
// NaN-ness is known).
func cmpFloat(p ir.Pred, a, b float64, isNaN func(float64) bool) bool {
	aNaN, bNaN := isNaN(a), isNaN(b)
	switch p {
	case ir.PredOEQ:
		return !aNaN && !bNaN && a == b
	case ir.PredOGT:
		return !aNaN && !bNaN && a > b
	case ir.PredOGE:
		return !aNaN && !bNaN && a >= b
	case ir.PredOLT:
		return !aNaN && !bNaN && a < b
	case ir.PredOLE:
		return !aNaN && !bNaN && a <= b
	case ir.PredONE:
		return !aNaN && !bNaN && a != b
	case ir.PredORD:
		return !aNaN && !bNaN
	case ir.PredUNO:
		return aNaN || bNaN
	case ir.PredUEQ:
		return aNaN || bNaN || a == b
	case ir.PredUGTF:
		return aNaN || bNaN || a > b
	case ir.PredUGEF:
		return aNaN || bNaN || a >= b
	case ir.PredULTF:
		return aNaN || bNaN || a < b
	case ir.PredULEF:
		return aNaN || bNaN || a <= b
	case ir.PredUNE:
		return a != b
	}
	panic("exec: bad float predicate")
}
