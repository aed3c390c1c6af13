/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	m "math"
)

// Usable reports whether x has an order of magnitude, i.e. is nonzero and finite.
func Usable(x float64) bool {
	return x != 0 && !m.IsNaN(x) && !m.IsInf(x, 0)
}

// Magnitude returns floor(log10(|x|)). x must be nonzero and finite (see Usable).
func Magnitude(x float64) int {
	a := m.Abs(x)
	mag := int(m.Floor(m.Log10(a)))

	// Log10 can land a hair below an exact power of ten (and, less often, above
	// a value just under one); pin the result to the decimal boundaries
	if m.Pow10(mag+1) <= a {
		mag++
	} else if m.Pow10(mag) > a {
		mag--
	}
	return mag
}

// MaxMagnitude reduces samples to the largest order of magnitude among the usable ones.
// ok is false when no sample is usable (all zero, NaN or infinite, or no samples at all).
func MaxMagnitude(samples ...float64) (max int, ok bool) {
	for _, x := range samples {
		if !Usable(x) {
			continue
		}
		mag := Magnitude(x)
		if !ok || mag > max {
			max = mag
			ok = true
		}
	}
	return max, ok
}
