package math

import (
	"errors"
	m "math"
	"testing"
)

func errorIs(err, target error) bool {
	return errors.Is(err, target)
}

func TestDecompose(t *testing.T) {
	cases := []struct {
		offset   float64
		shift    int
		fraction float64
	}{
		{0, 0, 1},
		{-1, -1, 1},
		{1, 1, 1},
		{0.5, 0, 0.5},
		{-0.5, 0, 0.5},
		{-1.5, -1, 0.5},
		{2.25, 2, 0.25},
		{-2.5, -2, 0.5},
		{20, 20, 1},
		{-20, -20, 1},
	}
	for _, c := range cases {
		shift, fraction := Decompose(c.offset)
		if shift != c.shift || fraction != c.fraction {
			t.Errorf("Decompose(%g) should return (%d, %g), got (%d, %g)", c.offset, c.shift, c.fraction, shift, fraction)
		}
	}
}

func TestValidateOffset(t *testing.T) {
	for _, o := range []float64{-20, -19.999, -0.5, 0, 0.5, 20} {
		if err := ValidateOffset("offset", o); err != nil {
			t.Errorf("ValidateOffset(%g) should succeed, got %v", o, err)
		}
	}
	for _, o := range []float64{-20.0001, 20.0001, 21, -21, m.Inf(1), m.NaN()} {
		err := ValidateOffset("offset_top", o)
		if !errors.Is(err, ErrInvalidOffset) {
			t.Errorf("ValidateOffset(%g) should fail with ErrInvalidOffset, got %v", o, err)
			continue
		}
		var oe *OffsetError
		if !errors.As(err, &oe) || oe.Param != "offset_top" {
			t.Errorf("ValidateOffset(%g) should report the parameter name, got %v", o, err)
		}
	}
}

func TestOffsetErrorMessage(t *testing.T) {
	err := ValidateOffset("offset", 21)
	want := "offset must be between -20 and 20, got 21"
	if err == nil || err.Error() != want {
		t.Errorf("unexpected error message: %v (want %q)", err, want)
	}
}
