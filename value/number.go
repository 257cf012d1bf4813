package value

import (
	"fmt"
	"math"
	"strconv"
)

// numberRep identifies which representation a Number holds.
type numberRep uint8

const (
	repUint numberRep = iota
	repInt
	repFloat
)

// Number is a finite JSON number.
//
// A Number remembers whether it was written as an unsigned integer, a signed
// integer or a float so it can be serialized the way it was read, but all
// comparisons are by numeric value: Int(2), Uint(2) and Float(2.0) are equal.
// The zero value is the unsigned integer 0.
type Number struct {
	rep numberRep
	u   uint64
	i   int64
	f   float64
}

// Uint returns a Number holding an unsigned integer.
func Uint(u uint64) Number {
	return Number{rep: repUint, u: u}
}

// Int returns a Number holding a signed integer.
// Non-negative values are stored as unsigned, matching how they are parsed.
func Int(i int64) Number {
	if i >= 0 {
		return Number{rep: repUint, u: uint64(i)}
	}
	return Number{rep: repInt, i: i}
}

// Float returns a Number holding a float.
// It panics if f is NaN or infinite; JSON cannot represent either.
func Float(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic(fmt.Sprintf("value: non-finite number %v", f))
	}
	return Number{rep: repFloat, f: f}
}

// ParseNumber parses a JSON number literal.
// Unsigned integers are tried first, then signed integers, then floats.
func ParseNumber(literal string) (Number, error) {
	if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return Uint(u), nil
	}
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Number{}, fmt.Errorf("value: invalid number %q: %w", literal, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, fmt.Errorf("value: non-finite number %q", literal)
	}
	return Float(f), nil
}

// IsInteger reports whether n was written as an integer.
func (n Number) IsInteger() bool {
	return n.rep != repFloat
}

// Uint64 returns n as a uint64 and whether the conversion is exact.
func (n Number) Uint64() (uint64, bool) {
	switch n.rep {
	case repUint:
		return n.u, true
	case repInt:
		return 0, false
	default:
		if n.f >= 0 && n.f < 1<<64 && n.f == math.Trunc(n.f) {
			return uint64(n.f), true
		}
		return 0, false
	}
}

// Int64 returns n as an int64 and whether the conversion is exact.
func (n Number) Int64() (int64, bool) {
	switch n.rep {
	case repUint:
		if n.u > math.MaxInt64 {
			return 0, false
		}
		return int64(n.u), true
	case repInt:
		return n.i, true
	default:
		if n.f >= math.MinInt64 && n.f < math.MaxInt64 && n.f == math.Trunc(n.f) {
			return int64(n.f), true
		}
		return 0, false
	}
}

// Float64 returns n as a float64. Large integers may lose precision.
func (n Number) Float64() float64 {
	switch n.rep {
	case repUint:
		return float64(n.u)
	case repInt:
		return float64(n.i)
	default:
		return n.f
	}
}

// CanonicalNumber is a representation-independent form of a Number.
// Two Numbers are equal exactly when their canonical forms are equal, which
// makes it suitable as hash input.
type CanonicalNumber struct {
	// Integral is true when the value has no fractional part and its
	// magnitude fits in a uint64.
	Integral bool
	// Negative is the sign of an integral value. Zero is never negative.
	Negative bool
	// Magnitude is the absolute value of an integral value.
	Magnitude uint64
	// Bits holds math.Float64bits of a non-integral value.
	Bits uint64
}

// Canonical returns the canonical form of n.
func (n Number) Canonical() CanonicalNumber {
	switch n.rep {
	case repUint:
		return CanonicalNumber{Integral: true, Magnitude: n.u}
	case repInt:
		// n.i is always negative here; see Int.
		return CanonicalNumber{Integral: true, Negative: true, Magnitude: uint64(-(n.i + 1)) + 1}
	}
	f := n.f
	if f == math.Trunc(f) {
		abs := math.Abs(f)
		if abs < 1<<64 {
			mag := uint64(abs)
			return CanonicalNumber{Integral: true, Negative: f < 0 && mag != 0, Magnitude: mag}
		}
	}
	return CanonicalNumber{Bits: math.Float64bits(f)}
}

// Equal reports whether n and other hold the same numeric value.
func (n Number) Equal(other Number) bool {
	return n.Canonical() == other.Canonical()
}

// String formats n as a JSON number literal, using the same float layout
// as encoding/json.
func (n Number) String() string {
	switch n.rep {
	case repUint:
		return strconv.FormatUint(n.u, 10)
	case repInt:
		return strconv.FormatInt(n.i, 10)
	}
	format := byte('f')
	if abs := math.Abs(n.f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, n.f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		if l := len(b); l >= 4 && b[l-4] == 'e' && b[l-3] == '-' && b[l-2] == '0' {
			b[l-2] = b[l-1]
			b = b[:l-1]
		}
	}
	return string(b)
}
