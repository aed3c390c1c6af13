package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseValue(t *testing.T) {
	numbers := map[string]float64{
		"87654321":    87654321,
		" 42.66 ":     42.66,
		"-42.66":      -42.66,
		"$1,234.56":   1234.56,
		"1,234,567":   1234567,
		"(500)":       -500,
		"€1,234":      1234,
		"£ 12":        12,
		"¥100":        100,
		"1.5e6":       1.5e6,
		"0":           0,
		"($1,000.50)": -1000.5,
	}
	for in, want := range numbers {
		v := ParseValue(in)
		f, ok := v.Float()
		if assert.True(t, ok, "%q should parse as a number", in) {
			assert.Equal(t, want, f, "ParseValue(%q)", in)
		}
	}

	for _, in := range []string{"", "   ", "null", "NaN", "NA", "n/a", "None"} {
		assert.True(t, ParseValue(in).IsNull(), "%q should parse as null", in)
	}

	for _, in := range []string{"hello", "Cloud CDN", "Inf", "-infinity", "12 apples", "true"} {
		v := ParseValue(in)
		assert.Equal(t, ValueKind(KIND_TEXT), v.Kind(), "%q should be kept as text", in)
		assert.Equal(t, in, v.String())
	}
}

func TestValue(t *testing.T) {
	var zero Value
	assert.True(t, zero.IsNull())
	assert.False(t, zero.IsZero())

	n := Number(0)
	assert.True(t, n.IsZero())
	assert.True(t, n.IsFinite())
	assert.False(t, Number(math.NaN()).IsFinite())
	assert.False(t, Number(math.Inf(-1)).IsFinite())
	assert.False(t, Text("x").IsFinite())

	assert.Equal(t, "90000000", Number(90000000).String())
	assert.Equal(t, "0.35", Number(0.35000000000000003).String())
	assert.Equal(t, "1e-10", Number(1e-10).String())
	assert.Equal(t, "", Null().String())

	assert.Equal(t, []Value{Number(1), Number(2)}, Numbers(1, 2))
}

func TestPolicy(t *testing.T) {
	for _, name := range []string{"fail-fast", "pass-through", "default", "FAIL-FAST"} {
		p, err := ParsePolicy(name)
		require.NoError(t, err)
		assert.True(t, p >= POLICY_DEFAULT && p <= POLICY_PASS_THROUGH_INVALID)
	}
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Policy(POLICY_DEFAULT), p)

	_, err = ParsePolicy("skip")
	assert.Error(t, err)

	assert.Equal(t, Policy(POLICY_FAIL_FAST), Policy(POLICY_DEFAULT).Or(POLICY_FAIL_FAST))
	assert.Equal(t, Policy(POLICY_PASS_THROUGH_INVALID), Policy(POLICY_PASS_THROUGH_INVALID).Or(POLICY_FAIL_FAST))
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	assert.Equal(t, -0.5, o.ResolvedOffset())
	assert.Equal(t, -0.5, o.ResolvedOffsetTop())
	assert.Equal(t, 0.0, o.ResolvedOffsetOther())
	assert.Equal(t, 1, o.ResolvedNumTop())
	assert.False(t, o.DatasetRequested())

	o = Options{Offset: Float(-1), OffsetOther: Float(-1), NumTop: Int(2)}
	assert.Equal(t, -1.0, o.ResolvedOffset())
	assert.Equal(t, -1.0, o.ResolvedOffsetOther())
	assert.Equal(t, 2, o.ResolvedNumTop())
	assert.True(t, o.DatasetRequested())
}

func TestOptionsYaml(t *testing.T) {
	var o Options
	err := yaml.Unmarshal([]byte("offset_top: -1\nnum_top: 2\npolicy: pass-through\n"), &o)
	require.NoError(t, err)
	require.NotNil(t, o.OffsetTop)
	assert.Equal(t, -1.0, *o.OffsetTop)
	assert.Nil(t, o.Offset)
	assert.Equal(t, 2, o.ResolvedNumTop())
	assert.Equal(t, Policy(POLICY_PASS_THROUGH_INVALID), o.Policy)

	err = yaml.Unmarshal([]byte("policy: sometimes\n"), &o)
	assert.Error(t, err)
}

func TestRoundedYaml(t *testing.T) {
	mag := 7
	rows := []Rounded{
		{Input: Number(87654321), Output: Number(90000000), Magnitude: &mag, Offset: Float(-0.5), Group: GROUP_SINGLE},
		{Label: "b", Input: Text("hello"), Output: Text("hello")},
	}
	out, err := yaml.Marshal(rows)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 87654321.0, decoded[0]["input"])
	assert.Equal(t, 90000000.0, decoded[0]["output"])
	assert.Equal(t, 7, decoded[0]["magnitude"])
	assert.Equal(t, -0.5, decoded[0]["offset"])
	assert.Equal(t, "single", decoded[0]["group"])
	assert.NotContains(t, decoded[0], "label")

	assert.Equal(t, "b", decoded[1]["label"])
	assert.Equal(t, "hello", decoded[1]["input"])
	assert.Nil(t, decoded[1]["magnitude"])
	assert.Nil(t, decoded[1]["offset"])
	assert.Equal(t, "-", decoded[1]["group"])
}

func TestFloats(t *testing.T) {
	rows := []Rounded{
		{Input: Number(4428910), Output: Number(4500000)},
		{Input: Null(), Output: Null()},
		{Input: Text("x"), Output: Text("x")},
		{Input: Number(0), Output: Number(0)},
	}
	in, out := Floats(rows)
	assert.Equal(t, []float64{4428910, 0}, in)
	assert.Equal(t, []float64{4500000, 0}, out)
	assert.Equal(t, []Value{Number(4500000), Null(), Text("x"), Number(0)}, Outputs(rows))
	assert.Equal(t, "n/a", Mag2String(nil))
	assert.Equal(t, "-0.5", Offset2String(Float(-0.5)))
}
