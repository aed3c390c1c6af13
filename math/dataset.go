/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package math

// Classifier selects offsetTop for values within the top NumTop orders of
// magnitude of a collection, and offsetOther for everything else. A single
// classifier applies one offset to every value, whatever its magnitude.
type Classifier struct {
	OffsetTop   float64
	OffsetOther float64
	NumTop      int

	single bool
	maxMag int
	hasMax bool
}

// Rounding is the outcome of rounding one nonzero finite value.
type Rounding struct {
	Magnitude int
	Offset    float64
	Top       bool
	Value     float64
}

// NewClassifier validates both offsets and returns a classifier with no
// maximum magnitude yet; feed it with Reduce.
func NewClassifier(offsetTop, offsetOther float64, numTop int) (*Classifier, error) {
	if err := ValidateOffset("offset_top", offsetTop); err != nil {
		return nil, err
	}
	if err := ValidateOffset("offset_other", offsetOther); err != nil {
		return nil, err
	}
	return &Classifier{OffsetTop: offsetTop, OffsetOther: offsetOther, NumTop: numTop}, nil
}

// NewSingleClassifier validates offset and returns a classifier that rounds
// every value relative to its own magnitude with it.
func NewSingleClassifier(offset float64) (*Classifier, error) {
	if err := ValidateOffset("offset", offset); err != nil {
		return nil, err
	}
	return &Classifier{OffsetTop: offset, OffsetOther: offset, single: true}, nil
}

func (c *Classifier) Single() bool {
	return c.single
}

// Reduce folds samples into the running maximum magnitude. Unusable samples are skipped.
func (c *Classifier) Reduce(samples ...float64) {
	mag, ok := MaxMagnitude(samples...)
	if !ok {
		return
	}
	if !c.hasMax || mag > c.maxMag {
		c.maxMag = mag
		c.hasMax = true
	}
}

// MaxMagnitude returns the reduced maximum; ok is false if nothing usable was seen.
func (c *Classifier) MaxMagnitude() (int, bool) {
	return c.maxMag, c.hasMax
}

// IsTop reports whether a value of magnitude mag falls within the top NumTop levels.
// Nothing is top when no maximum is known, or for a single classifier.
func (c *Classifier) IsTop(mag int) bool {
	return !c.single && c.hasMax && c.maxMag-mag < c.NumTop
}

// Select picks the offset for x, which must be nonzero and finite.
func (c *Classifier) Select(x float64) (offset float64, top bool) {
	if c.IsTop(Magnitude(x)) {
		return c.OffsetTop, true
	}
	return c.OffsetOther, false
}

// Round classifies x and rounds it with the selected offset. x must be nonzero
// and finite.
func (c *Classifier) Round(x float64) Rounding {
	offset, top := c.Select(x)
	return Rounding{
		Magnitude: Magnitude(x),
		Offset:    offset,
		Top:       top,
		Value:     RoundWithOffset(x, offset),
	}
}
