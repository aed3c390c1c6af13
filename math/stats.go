/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	m "math"
)

func Min(samples ...float64) float64 {
	min := m.NaN()
	for _, val := range samples {
		if m.IsNaN(val) || m.IsInf(val, 0) {
			continue
		}
		if m.IsNaN(min) || val < min {
			min = val
		}
	}
	return min // will return NaN for empty slice or slice that has no valid values
}

func Max(samples ...float64) float64 {
	max := m.NaN()
	for _, val := range samples {
		if m.IsNaN(val) || m.IsInf(val, 0) {
			continue
		}
		if m.IsNaN(max) || val > max {
			max = val
		}
	}
	return max // NaN if there are no valid values
}

func Sum(samples ...float64) float64 {
	total := 0.0
	for _, val := range samples {
		if m.IsNaN(val) || m.IsInf(val, 0) {
			continue
		}
		total += val
	}
	return total
}

// Avg averages the finite samples; 0 if there are none.
func Avg(samples ...float64) float64 {
	total := 0.0
	count := 0
	for _, val := range samples {
		if m.IsNaN(val) || m.IsInf(val, 0) {
			continue
		}
		total += val
		count += 1
	}

	if count == 0 {
		return 0.0
	}
	return total / float64(count)
}

// RelativeError returns |rounded-x|/|x|, or 0 when x is not usable.
func RelativeError(x, rounded float64) float64 {
	if !Usable(x) {
		return 0
	}
	return m.Abs(rounded-x) / m.Abs(x)
}

// MaxRelativeError returns the largest RelativeError across pairs of original and
// rounded values. Pairs beyond the shorter slice are ignored.
func MaxRelativeError(original, rounded []float64) float64 {
	n := len(original)
	if len(rounded) < n {
		n = len(rounded)
	}
	worst := 0.0
	for i := 0; i < n; i++ {
		if e := RelativeError(original[i], rounded[i]); e > worst {
			worst = e
		}
	}
	return worst
}
