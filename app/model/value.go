/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package model

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KIND_NULL = iota
	KIND_NUMBER
	KIND_TEXT
)

func (k ValueKind) String() string {
	return []string{"null", "number", "text"}[k]
}

// Value is a possibly missing, possibly non-numeric entry of a data set.
// The zero Value is null.
type Value struct {
	kind ValueKind
	num  float64
	raw  string
}

func Null() Value {
	return Value{kind: KIND_NULL}
}

func Number(f float64) Value {
	return Value{kind: KIND_NUMBER, num: f}
}

// Text wraps a value that could not be read as a number.
func Text(s string) Value {
	return Value{kind: KIND_TEXT, raw: s}
}

func Numbers(samples ...float64) []Value {
	values := make([]Value, len(samples))
	for i, f := range samples {
		values[i] = Number(f)
	}
	return values
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KIND_NULL
}

// Float returns the numeric value; ok is false for null and text values.
func (v Value) Float() (f float64, ok bool) {
	return v.num, v.kind == KIND_NUMBER
}

// IsZero reports whether v is the number zero.
func (v Value) IsZero() bool {
	return v.kind == KIND_NUMBER && v.num == 0
}

// IsFinite reports whether v is a number other than NaN or ±Inf.
func (v Value) IsFinite() bool {
	return v.kind == KIND_NUMBER && !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
}

func (v Value) String() string {
	switch v.kind {
	case KIND_NUMBER:
		return strconv.FormatFloat(v.num, 'g', 15, 64)
	case KIND_TEXT:
		return v.raw
	default:
		return ""
	}
}

func (v Value) GoString() string {
	return fmt.Sprintf("%v(%v)", v.kind, v.String())
}

func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case KIND_NUMBER:
		return v.num, nil
	case KIND_TEXT:
		return v.raw, nil
	default:
		return nil, nil
	}
}

var (
	numberNoise = regexp.MustCompile(`[$€£¥,\s]`)
	accounting  = regexp.MustCompile(`^\((.+)\)$`)
)

// ParseValue reads a value the way it would appear in a spreadsheet cell:
// currency symbols, thousands separators and whitespace are ignored, and an
// accounting-style "(500)" is read as -500. Blank cells and the usual missing
// markers (null, NaN, NA) are null; anything else that is not a finite number
// is kept as text.
func ParseValue(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Null()
	}
	switch strings.ToLower(trimmed) {
	case "null", "nan", "na", "n/a", "none":
		return Null()
	}

	cleaned := numberNoise.ReplaceAllString(trimmed, "")
	cleaned = accounting.ReplaceAllString(cleaned, "-$1")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Text(s)
	}
	return Number(f)
}

// ParseValues parses every string with ParseValue.
func ParseValues(ss []string) []Value {
	values := make([]Value, len(ss))
	for i, s := range ss {
		values[i] = ParseValue(s)
	}
	return values
}
