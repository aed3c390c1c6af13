/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOffset is returned when an offset lies outside [-OFFSET_LIMIT, OFFSET_LIMIT].
	ErrInvalidOffset = errors.New("invalid offset")
	// ErrNonNumeric is returned for a present, nonzero value that is not a finite real number.
	ErrNonNumeric = errors.New("cannot round non-numeric value")
)

// OffsetError reports which offset parameter failed validation.
type OffsetError struct {
	Param string
	Value float64
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%v must be between %v and %v, got %v", e.Param, -OFFSET_LIMIT, OFFSET_LIMIT, e.Value)
}

func (e *OffsetError) Unwrap() error {
	return ErrInvalidOffset
}
