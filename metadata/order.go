package metadata

import (
	"math"
	"sort"
)

// rank orders kinds for the cross-kind part of the total order.
// Int and Float share one numeric rank and are compared by numeric value.
func rank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindString:
		return 3
	default:
		return -1
	}
}

// Compare defines the total order over values:
// Null < Bool < numeric < String.
//
// Booleans order false before true, strings lexicographically. Ints and
// floats compare by numeric value; when an int and a float are numerically
// equal the int orders first so that structurally distinct values never tie.
// Floats use an IEEE total order, so NaN sorts deterministically too.
func Compare(a, b Value) int {
	ra, rb := rank(a.Kind), rank(b.Kind)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	switch a.Kind {
	case KindNull:
		return 0
	case KindBool:
		return cmpBool(a.B, b.B)
	case KindInt, KindFloat:
		if a.Kind == KindInt && b.Kind == KindInt {
			return cmpInt64(a.I64, b.I64)
		}
		if a.Kind == KindFloat && b.Kind == KindFloat {
			return cmpFloatTotal(a.F64, b.F64)
		}
		af, _ := a.Numeric()
		bf, _ := b.Numeric()
		if c := cmpFloatTotal(af, bf); c != 0 {
			return c
		}
		// Numeric tie across kinds: Int before Float.
		if a.Kind == KindInt {
			return -1
		}
		return 1
	case KindString:
		as, bs := a.s.Value(), b.s.Value()
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// Equal reports structural, exact equality: kinds must match and payloads
// must be identical. There is no numeric/string coercion; Int(1) is not
// equal to Float(1). Float payloads compare by bit pattern so NaN equals
// itself.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.B == b.B
	case KindInt:
		return a.I64 == b.I64
	case KindFloat:
		return math.Float64bits(a.F64) == math.Float64bits(b.F64)
	case KindString:
		return a.s == b.s
	default:
		return false
	}
}

// Sort sorts values in place by the total order.
func Sort(values []Value) {
	sort.Slice(values, func(i, j int) bool {
		return Compare(values[i], values[j]) < 0
	})
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// cmpFloatTotal compares floats under the IEEE 754 total order, mapping the
// bit pattern to a monotonically ordered integer. -NaN sorts below -Inf and
// +NaN above +Inf; every float has a defined position.
func cmpFloatTotal(a, b float64) int {
	ai := int64(math.Float64bits(a))
	bi := int64(math.Float64bits(b))
	ai ^= (ai >> 63) & math.MaxInt64
	bi ^= (bi >> 63) & math.MaxInt64
	return cmpInt64(ai, bi)
}
