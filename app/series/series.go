/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

// Package series adapts dynamic rounding to labeled columns of values.
//
// Unlike the rounding package, entries are never coerced: a null stays null,
// a zero keeps its own representation, and by default a non-numeric entry is
// passed through unchanged instead of failing the whole column. Set
// Options.Policy to POLICY_FAIL_FAST to get the rounding package behavior.
package series

import (
	"fmt"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/app/rounding"
	"dynamic-rounding/log"
	opsmath "dynamic-rounding/math"
)

// Series is a named column of values, each with a label. Labels may be empty
// but, when present, must have one entry per value.
type Series struct {
	Name   string
	Labels []string
	Values []appmodel.Value
}

// New builds a series, checking that labels and values line up.
func New(name string, labels []string, values []appmodel.Value) (Series, error) {
	if labels != nil && len(labels) != len(values) {
		return Series{}, fmt.Errorf("series %q has %d labels for %d values", name, len(labels), len(values))
	}
	return Series{Name: name, Labels: labels, Values: values}, nil
}

func (s Series) Len() int {
	return len(s.Values)
}

func (s Series) label(i int) string {
	if s.Labels == nil {
		return ""
	}
	return s.Labels[i]
}

// Round returns a new series with the same name and labels and rounded values.
// s is not modified.
func Round(s Series, opts appmodel.Options) (Series, error) {
	rows, err := RoundDetailed(s, opts)
	if err != nil {
		return Series{}, err
	}
	var labels []string
	if s.Labels != nil {
		labels = append([]string{}, s.Labels...)
	}
	return Series{Name: s.Name, Labels: labels, Values: appmodel.Outputs(rows)}, nil
}

// RoundDetailed rounds every entry of s and describes each one.
//
// Dataset mode is used if opts carries OffsetTop, OffsetOther or NumTop;
// otherwise every entry is rounded relative to its own magnitude with Offset.
func RoundDetailed(s Series, opts appmodel.Options) ([]appmodel.Rounded, error) {
	if opts.DatasetRequested() {
		return roundDataset(s, opts)
	}
	return roundSingle(s, opts)
}

func roundSingle(s Series, opts appmodel.Options) ([]appmodel.Rounded, error) {
	c, err := opsmath.NewSingleClassifier(opts.ResolvedOffset())
	if err != nil {
		return nil, err
	}
	return roundWith(s, c, opts.Policy)
}

func roundDataset(s Series, opts appmodel.Options) ([]appmodel.Rounded, error) {
	c, err := opsmath.NewClassifier(opts.ResolvedOffsetTop(), opts.ResolvedOffsetOther(), opts.ResolvedNumTop())
	if err != nil {
		return nil, err
	}

	// reduction over the usable numbers only; nulls and text are skipped
	for _, v := range s.Values {
		if f, ok := v.Float(); ok {
			c.Reduce(f)
		}
	}
	if maxMag, ok := c.MaxMagnitude(); ok {
		log.Tracef("series %q: max magnitude %d over %d values", s.Name, maxMag, s.Len())
	}
	return roundWith(s, c, opts.Policy)
}

func roundWith(s Series, c *opsmath.Classifier, policy appmodel.Policy) ([]appmodel.Rounded, error) {
	rows := make([]appmodel.Rounded, s.Len())
	for i, v := range s.Values {
		row, ok, err := passThrough(s, i, policy)
		if err != nil {
			return nil, err
		}
		if !ok {
			x, _ := v.Float()
			rounding.Apply(c, &row, x)
		}
		rows[i] = row
	}
	return rows, nil
}

// passThrough handles entries that are not rounded: nulls and zeros are kept
// as they are, invalid entries are kept or rejected according to policy.
// ok is true if row is final.
func passThrough(s Series, i int, policy appmodel.Policy) (row appmodel.Rounded, ok bool, err error) {
	v := s.Values[i]
	row = appmodel.Rounded{Label: s.label(i), Input: v, Output: v}
	if v.IsNull() || v.IsZero() {
		return row, true, nil
	}
	if v.IsFinite() {
		return row, false, nil
	}
	if policy.Or(appmodel.POLICY_PASS_THROUGH_INVALID) == appmodel.POLICY_FAIL_FAST {
		return row, true, fmt.Errorf("series %q, entry %d (%q): %w", s.Name, i, s.label(i), opsmath.ErrNonNumeric)
	}
	log.Tracef("series %q: passing through non-numeric entry %d (%q): %q", s.Name, i, s.label(i), v.String())
	return row, true, nil
}
