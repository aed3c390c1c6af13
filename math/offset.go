/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	m "math"
)

// OFFSET_LIMIT bounds every offset parameter, inclusive on both ends.
const OFFSET_LIMIT = 20

// ValidateOffset checks that offset lies within [-OFFSET_LIMIT, OFFSET_LIMIT].
// param names the option in the returned *OffsetError (e.g. "offset_top").
func ValidateOffset(param string, offset float64) error {
	// written as a negated range check so that NaN is rejected too
	if !(offset >= -OFFSET_LIMIT && offset <= OFFSET_LIMIT) {
		return &OffsetError{Param: param, Value: offset}
	}
	return nil
}

// Decompose splits an offset into an integer order-of-magnitude shift and a
// fractional sub-division of the target order.
//
//	 0   -> (0, 1)    current OoM
//	-1   -> (-1, 1)   one OoM finer
//	 1   -> (1, 1)    one OoM coarser
//	±0.5 -> (0, 0.5)  half of current OoM
//	-1.5 -> (-1, 0.5) half of one OoM finer
func Decompose(offset float64) (shift int, fraction float64) {
	whole := m.Trunc(offset)
	fraction = m.Abs(offset - whole)
	if fraction == 0 {
		fraction = 1.0
	}
	return int(whole), fraction
}
