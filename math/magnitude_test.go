package math

import (
	m "math"
	"testing"
)

func TestMagnitude(t *testing.T) {
	cases := []struct {
		x   float64
		mag int
	}{
		{1, 0},
		{9.99, 0},
		{10, 1},
		{100, 2},
		{1000, 3},
		{999, 2},
		{87654321, 7},
		{1e15, 15},
		{1e308, 308},
		{0.1, -1},
		{0.001, -3},
		{0.00099, -4},
		{0.35, -1},
		{1e-10, -10},
		{-1234, 3},
		{-0.047, -2},
	}
	for _, c := range cases {
		if mag := Magnitude(c.x); mag != c.mag {
			t.Errorf("Magnitude(%g) should return %d, got %d", c.x, c.mag, mag)
		}
	}
}

func TestPowersOfTen(t *testing.T) {
	for n := -300; n <= 300; n++ {
		x := m.Pow10(n)
		if mag := Magnitude(x); mag != n {
			t.Errorf("Magnitude(1e%d) should return %d, got %d", n, n, mag)
		}
	}
}

func TestMaxMagnitude(t *testing.T) {
	if mag, ok := MaxMagnitude(4428910, 983321, 42109); !ok || mag != 6 {
		t.Errorf("MaxMagnitude should return 6, got %d (ok=%v)", mag, ok)
	}
	if mag, ok := MaxMagnitude(0.0083, -0.35, 0, m.NaN(), m.Inf(1)); !ok || mag != -1 {
		t.Errorf("MaxMagnitude should skip unusable samples and return -1, got %d (ok=%v)", mag, ok)
	}
	if _, ok := MaxMagnitude(0, m.NaN(), m.Inf(-1)); ok {
		t.Errorf("MaxMagnitude of unusable samples should be absent")
	}
	if _, ok := MaxMagnitude(); ok {
		t.Errorf("MaxMagnitude of no samples should be absent")
	}
}
