package math

import (
	m "math"
)

// EPSILON is added to the scaled value before rounding to the nearest integer so
// that values sitting on a .5 boundary round up even when their binary
// representation lands just below it (e.g. 0.35/0.1).
const EPSILON = 1e-9

// RoundingBase returns 10^(Magnitude(x)+shift) * fraction for the decomposed offset.
// x must be nonzero and finite.
func RoundingBase(x, offset float64) float64 {
	shift, fraction := Decompose(offset)
	return m.Pow10(Magnitude(x)+shift) * fraction
}

// RoundWithOffset rounds x to a granularity derived from its own order of
// magnitude and offset. x must be nonzero and finite; zero, missing and
// non-finite values are the caller's business.
//
// Ties round half away from zero (math.Round); combined with EPSILON, positive
// .5 ties round up and negative ones round towards zero. A result of zero is
// always +0, whatever the sign of x.
func RoundWithOffset(x, offset float64) float64 {
	base := RoundingBase(x, offset)
	if base == 0 {
		return x // granularity finer than float64 can represent
	}
	if m.IsInf(base, 0) {
		return 0
	}
	res := m.Round(x/base+EPSILON) * base
	if res == 0 {
		return 0
	}
	return res
}
