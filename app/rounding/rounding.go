/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

// Package rounding is the public entry point for dynamic rounding: single values
// are rounded relative to their own order of magnitude, sequences with the
// dataset heuristic that rounds the largest magnitudes more precisely.
package rounding

import (
	"fmt"

	appmodel "dynamic-rounding/app/model"
	opsmath "dynamic-rounding/math"
)

// NonNumericError reports a present, nonzero value that is not a finite number.
// Index is the position within a sequence, or -1 for a scalar.
type NonNumericError struct {
	Index int
	Value appmodel.Value
}

func (e *NonNumericError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %q", opsmath.ErrNonNumeric, e.Value.String())
	}
	return fmt.Sprintf("%v at index %d: %q", opsmath.ErrNonNumeric, e.Index, e.Value.String())
}

func (e *NonNumericError) Unwrap() error {
	return opsmath.ErrNonNumeric
}

// Round rounds data and returns the same shape: a Scalar for a Scalar, a
// Sequence of the same length and order for a Sequence.
func Round(data appmodel.Data, opts appmodel.Options) (appmodel.Data, error) {
	rows, err := Detail(data, opts)
	if err != nil {
		return nil, err
	}
	if _, ok := data.(appmodel.Scalar); ok {
		return appmodel.Scalar{Value: rows[0].Output}, nil
	}
	return appmodel.Sequence{Values: appmodel.Outputs(rows)}, nil
}

// Detail is Round with a per-entry account of magnitude, offset and group.
// A Scalar always yields exactly one row.
func Detail(data appmodel.Data, opts appmodel.Options) ([]appmodel.Rounded, error) {
	switch d := data.(type) {
	case appmodel.Scalar:
		row, err := RoundSingle(d.Value, opts)
		if err != nil {
			return nil, err
		}
		return []appmodel.Rounded{row}, nil
	case appmodel.Sequence:
		return RoundDataset(d.Values, opts)
	default:
		return nil, fmt.Errorf("unsupported data shape %T", data)
	}
}

// RoundSingle rounds v relative to its own magnitude using opts.Offset
// (default -0.5). Null and zero round to exactly 0.
func RoundSingle(v appmodel.Value, opts appmodel.Options) (appmodel.Rounded, error) {
	c, err := opsmath.NewSingleClassifier(opts.ResolvedOffset())
	if err != nil {
		return appmodel.Rounded{}, err
	}
	return classify(c, -1, v, opts.Policy)
}

// RoundDataset rounds values with the dataset heuristic: values within the top
// opts.NumTop magnitude levels of the collection get opts.OffsetTop, the rest
// opts.OffsetOther. Output has the same length and order as values.
func RoundDataset(values []appmodel.Value, opts appmodel.Options) ([]appmodel.Rounded, error) {
	c, err := newClassifier(opts)
	if err != nil {
		return nil, err
	}
	rows := make([]appmodel.Rounded, len(values))
	if len(values) == 0 {
		return rows, nil
	}

	c.Reduce(samples(values)...)
	for i, v := range values {
		if rows[i], err = classify(c, i, v, opts.Policy); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// RoundAgainst rounds a single value with the dataset heuristic, taking the
// maximum magnitude from reference rather than from the value itself. The
// result does not depend on where v sits in (or whether it belongs to) reference,
// so a sorted or filtered view can round its cells independently.
func RoundAgainst(v appmodel.Value, reference []appmodel.Value, opts appmodel.Options) (appmodel.Rounded, error) {
	c, err := newClassifier(opts)
	if err != nil {
		return appmodel.Rounded{}, err
	}
	c.Reduce(samples(reference)...)
	return classify(c, -1, v, opts.Policy)
}

// MaxMagnitude is the dataset reduction: the largest magnitude among the
// nonzero finite numbers in values; ok is false if there are none.
func MaxMagnitude(values []appmodel.Value) (mag int, ok bool) {
	return opsmath.MaxMagnitude(samples(values)...)
}

// Apply rounds the nonzero finite number x with c and records the outcome on
// row: output, magnitude, selected offset and group.
func Apply(c *opsmath.Classifier, row *appmodel.Rounded, x float64) {
	r := c.Round(x)
	row.Magnitude = &r.Magnitude
	row.Offset = &r.Offset
	switch {
	case c.Single():
		row.Group = appmodel.GROUP_SINGLE
	case r.Top:
		row.Group = appmodel.GROUP_TOP
	default:
		row.Group = appmodel.GROUP_OTHER
	}
	row.Output = appmodel.Number(r.Value)
}

func newClassifier(opts appmodel.Options) (*opsmath.Classifier, error) {
	return opsmath.NewClassifier(opts.ResolvedOffsetTop(), opts.ResolvedOffsetOther(), opts.ResolvedNumTop())
}

// samples extracts the numbers; unusable ones are skipped by the reduction anyway.
func samples(values []appmodel.Value) []float64 {
	res := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := v.Float(); ok {
			res = append(res, f)
		}
	}
	return res
}

func classify(c *opsmath.Classifier, index int, v appmodel.Value, policy appmodel.Policy) (appmodel.Rounded, error) {
	row := appmodel.Rounded{Input: v}
	if v.IsNull() || v.IsZero() {
		row.Output = appmodel.Number(0)
		return row, nil
	}
	if !v.IsFinite() {
		return rejected(row, index, policy)
	}

	x, _ := v.Float()
	Apply(c, &row, x)
	return row, nil
}

func rejected(row appmodel.Rounded, index int, policy appmodel.Policy) (appmodel.Rounded, error) {
	if policy.Or(appmodel.POLICY_FAIL_FAST) == appmodel.POLICY_PASS_THROUGH_INVALID {
		row.Output = row.Input
		return row, nil
	}
	return appmodel.Rounded{}, &NonNumericError{Index: index, Value: row.Input}
}
