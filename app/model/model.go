package model

import "fmt"

type Group int

const (
	GROUP_NONE   = iota // not classified: null, zero or invalid
	GROUP_SINGLE        // rounded relative to its own magnitude
	GROUP_TOP           // within the top magnitude levels of its dataset
	GROUP_OTHER         // below the top magnitude levels
)

func (g Group) String() string {
	return []string{"-", "single", "top", "other"}[g]
}

func (g Group) MarshalYAML() (interface{}, error) {
	return g.String(), nil
}

// Rounded describes how a single entry was rounded.
type Rounded struct {
	Label     string   `yaml:"label,omitempty"` // series label, if any
	Input     Value    `yaml:"input"`
	Output    Value    `yaml:"output"`
	Magnitude *int     `yaml:"magnitude"` // nil for null, zero and invalid entries
	Offset    *float64 `yaml:"offset"`    // offset applied, nil if not rounded
	Group     Group    `yaml:"group"`
}

// Outputs extracts the output values in order.
func Outputs(rows []Rounded) []Value {
	values := make([]Value, len(rows))
	for i := range rows {
		values[i] = rows[i].Output
	}
	return values
}

// Floats returns the numeric inputs and outputs of rows that have both.
func Floats(rows []Rounded) (inputs, outputs []float64) {
	for _, r := range rows {
		in, ok1 := r.Input.Float()
		out, ok2 := r.Output.Float()
		if ok1 && ok2 {
			inputs = append(inputs, in)
			outputs = append(outputs, out)
		}
	}
	return
}

func Mag2String(m *int) string {
	if m == nil {
		return "n/a"
	}
	return fmt.Sprintf("%v", *m)
}

func Offset2String(o *float64) string {
	if o == nil {
		return "n/a"
	}
	return fmt.Sprintf("%v", *o)
}
