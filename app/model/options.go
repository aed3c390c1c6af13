/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_OFFSET       = -0.5
	DEFAULT_OFFSET_TOP   = -0.5
	DEFAULT_OFFSET_OTHER = 0.0
	DEFAULT_NUM_TOP      = 1
)

// Policy decides what happens to present, nonzero values that are not finite numbers.
type Policy int

const (
	POLICY_DEFAULT              = iota // whatever the caller considers its default
	POLICY_FAIL_FAST                   // abort the whole operation
	POLICY_PASS_THROUGH_INVALID        // return the offending value unchanged
)

// constant table - policy names, keep in sync with POLICY_xxx constants above
func getPolicyNames() []string {
	return []string{"default", "fail-fast", "pass-through"}
}

func (p Policy) String() string {
	return getPolicyNames()[p]
}

// ParsePolicy maps a policy name (as printed by String) back to a Policy.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range getPolicyNames() {
		if strings.EqualFold(s, name) {
			return Policy(i), nil
		}
	}
	if s == "" {
		return POLICY_DEFAULT, nil
	}
	return POLICY_DEFAULT, fmt.Errorf("policy must be one of %v, got %q", getPolicyNames(), s)
}

// Or returns p, or fallback if p is POLICY_DEFAULT.
func (p Policy) Or(fallback Policy) Policy {
	if p == POLICY_DEFAULT {
		return fallback
	}
	return p
}

func (p Policy) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParsePolicy(node.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Options configures rounding. Nil fields are unspecified and resolve to the
// DEFAULT_xxx constants.
type Options struct {
	Offset      *float64 `yaml:"offset,omitempty"`       // single mode
	OffsetTop   *float64 `yaml:"offset_top,omitempty"`   // dataset mode, top magnitude levels
	OffsetOther *float64 `yaml:"offset_other,omitempty"` // dataset mode, everything else
	NumTop      *int     `yaml:"num_top,omitempty"`      // number of distinct top magnitude levels
	Policy      Policy   `yaml:"policy,omitempty"`
}

func Float(f float64) *float64 {
	return &f
}

func Int(i int) *int {
	return &i
}

func (o Options) ResolvedOffset() float64 {
	if o.Offset == nil {
		return DEFAULT_OFFSET
	}
	return *o.Offset
}

func (o Options) ResolvedOffsetTop() float64 {
	if o.OffsetTop == nil {
		return DEFAULT_OFFSET_TOP
	}
	return *o.OffsetTop
}

func (o Options) ResolvedOffsetOther() float64 {
	if o.OffsetOther == nil {
		return DEFAULT_OFFSET_OTHER
	}
	return *o.OffsetOther
}

func (o Options) ResolvedNumTop() int {
	if o.NumTop == nil {
		return DEFAULT_NUM_TOP
	}
	return *o.NumTop
}

// DatasetRequested reports whether any dataset-only option was given.
func (o Options) DatasetRequested() bool {
	return o.OffsetTop != nil || o.OffsetOther != nil || o.NumTop != nil
}
