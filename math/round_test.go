package math

import (
	m "math"
	"testing"
)

type roundCase struct {
	x, offset, y float64
}

func getExactTestCases() []roundCase {
	return []roundCase{
		{87654321, -0.5, 90000000},
		{87654321, 0, 90000000},
		{87654321, 1, 100000000},
		{87654321, -1, 88000000},
		{87654321, -2, 87700000},
		{87654321, 0.5, 90000000},
		{87654321, -1.5, 87500000},
		{87654321, -2.5, 87650000},

		{4308910, 0, 4000000},
		{4308910, -0.5, 4500000},
		{42109, 0, 40000},
		{42109, -0.5, 40000},
		{4321, -0.5, 4500},
		{1234, 0, 1000},
		{1234, -1, 1200},

		{-87654321, -0.5, -90000000},
		{-4321, -0.5, -4500},
		{-4308910, 0, -4000000},
		{-42.66, 0, -40},

		// magnitude boundaries
		{1000, 0, 1000},
		{1000, -1, 1000},
		{1000, -0.5, 1000},
		{10000000, 0, 10000000},
		{999, 0, 1000},
		{1001, 0, 1000},
		{9999, 0, 10000},
		{10001, 0, 10000},
		{999999999, 0, 1000000000},
		{1000000001, 0, 1000000000},
		{-999, 0, -1000},
		{-1001, 0, -1000},
		{1e15, -0.5, 1e15},
		{1.5e6, 0, 2000000},

		// coarser than the value itself
		{1234, 1, 0},
		{1000, 20, 0},
	}
}

func getApproxTestCases() []roundCase {
	return []roundCase{
		{0.35, 0, 0.4},
		{0.35, -0.5, 0.35},
		{0.35, -1, 0.35},
		{0.047, 0, 0.05},
		{0.0083, 0, 0.008},
		{0.45, 0, 0.5},
		{0.25, 0, 0.3},
		{0.001, 0, 0.001},
		{0.0015, 0, 0.002},
		{0.00099, 0, 0.001},
		{0.087654321, -0.5, 0.09},
		{0.0004321, -0.5, 0.00045},
		{4e-4, 0, 0.0004},
		{1e-10, -0.5, 1e-10},
	}
}

func TestRoundWithOffset(t *testing.T) {
	for _, c := range getExactTestCases() {
		res := RoundWithOffset(c.x, c.offset)
		if res != c.y {
			t.Errorf("RoundWithOffset(%g, %g) should return %g, got %g", c.x, c.offset, c.y, res)
		}
	}
}

func TestRoundWithOffsetDecimals(t *testing.T) {
	for _, c := range getApproxTestCases() {
		res := RoundWithOffset(c.x, c.offset)
		if m.Abs(res-c.y) > m.Abs(c.y)*1e-9 {
			t.Errorf("RoundWithOffset(%g, %g) should return ~%g, got %g", c.x, c.offset, c.y, res)
		}
	}
}

func TestRoundWithOffsetExtremes(t *testing.T) {
	// granularity below float64 resolution leaves the value alone
	if res := RoundWithOffset(1e-310, -20); res != 1e-310 {
		t.Errorf("RoundWithOffset(1e-310, -20) should return the value unchanged, got %g", res)
	}
	// base overflows to +Inf
	if res := RoundWithOffset(1e300, 20); res != 0 {
		t.Errorf("RoundWithOffset(1e300, 20) should return 0, got %g", res)
	}
	if res := RoundWithOffset(1000, -20); m.IsNaN(res) || m.Abs(res-1000) > 1e-9 {
		t.Errorf("RoundWithOffset(1000, -20) should return ~1000, got %g", res)
	}
}

func TestRoundWithOffsetNegativeZero(t *testing.T) {
	cases := []struct{ x, offset float64 }{
		{-311.85, 1},
		{-1234, 1},
		{-4321, 1.9},
		{-0.0083, 2},
	}
	for _, c := range cases {
		if res := RoundWithOffset(c.x, c.offset); res != 0 || m.Signbit(res) {
			t.Errorf("RoundWithOffset(%g, %g) should return +0, got %g (signbit %v)", c.x, c.offset, res, m.Signbit(res))
		}
	}
	if res := RoundWithOffset(-4321, -0.5); res != -4500 {
		t.Errorf("RoundWithOffset(-4321, -0.5) should return -4500, got %g", res)
	}
}

func TestOffsetSymmetry(t *testing.T) {
	values := []float64{87654321, 4428910, 0.0083, -42.66, 1, 999}
	for _, f := range []float64{0.1, 0.25, 0.3, 0.5, 0.75, 0.9} {
		for _, x := range values {
			pos, neg := RoundWithOffset(x, f), RoundWithOffset(x, -f)
			if pos != neg {
				t.Errorf("RoundWithOffset(%g, ±%g) should be symmetric, got %g and %g", x, f, pos, neg)
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	// offsets >= 1 are not idempotent: 983321 -> 1e6 -> 0 at offset 1
	values := []float64{87654321, 4428910, 983321, 42109, 1234, 999, 1001, -4321}
	for _, o := range []float64{-2, -1.5, -1, -0.5, 0, 0.5} {
		for _, x := range values {
			once := RoundWithOffset(x, o)
			twice := RoundWithOffset(once, o)
			if once != twice {
				t.Errorf("rounding %g with offset %g is not idempotent: %g then %g", x, o, once, twice)
			}
		}
	}
}

func TestMonotonicFineness(t *testing.T) {
	// each grid in the ladder is contained in the previous (finer) one
	ladder := []float64{-2, -1.5, -1, -0.5, 0, 1}
	values := []float64{87654321, 4428910, 983321, 42109, 1001, 999, -4321, 0.0083}
	for _, x := range values {
		prev := -1.0
		for _, o := range ladder {
			e := RelativeError(x, RoundWithOffset(x, o))
			if e < prev-1e-12 {
				t.Errorf("relative error for %g decreased at offset %g: %g < %g", x, o, e, prev)
			}
			prev = e
		}
	}
}
