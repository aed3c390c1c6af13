/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package prometheus

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/prometheus/common/model"

	"dynamic-rounding/log"
	opsmath "dynamic-rounding/math"
)

// Aggregation reduces the samples of a range series to a single value.
type Aggregation string

const (
	AGGREGATE_AVG    Aggregation = "avg"
	AGGREGATE_MEDIAN Aggregation = "median"
	AGGREGATE_MIN    Aggregation = "min"
	AGGREGATE_MAX    Aggregation = "max"
	AGGREGATE_SUM    Aggregation = "sum"
	AGGREGATE_LAST   Aggregation = "last"
)

var aggregations = []Aggregation{AGGREGATE_AVG, AGGREGATE_MEDIAN, AGGREGATE_MIN, AGGREGATE_MAX, AGGREGATE_SUM, AGGREGATE_LAST}

func ParseAggregation(s string) (Aggregation, error) {
	if s == "" {
		return AGGREGATE_AVG, nil
	}
	for _, a := range aggregations {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aggregation %q, expected one of %v", s, aggregations)
}

type ValueStats struct {
	N       int
	Min     float64
	Max     float64
	Sum     float64
	Average float64
	Median  float64
	StDev   float64
	Last    float64
}

// calcSamplePairStats summarizes the finite samples of a series; NaN and
// infinite samples (stale markers, divisions by zero) are skipped.
func calcSamplePairStats(samples []model.SamplePair) (res ValueStats) {
	values := make([]float64, 0, len(samples))
	for _, s := range samples {
		v := float64(s.Value)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}
	res.N = len(values)
	if res.N == 0 {
		return
	}

	res.Last = values[res.N-1]
	res.Min = opsmath.Min(values...)
	res.Max = opsmath.Max(values...)
	res.Sum = opsmath.Sum(values...)
	res.Average = opsmath.Avg(values...)

	sort.Float64s(values)
	if res.N%2 == 1 {
		res.Median = values[(res.N+1)/2-1]
	} else {
		res.Median = (values[res.N/2-1] + values[res.N/2]) / 2
	}

	if res.N > 1 {
		acc := 0.0
		for _, v := range values {
			acc += math.Pow(v-res.Average, 2)
		}
		res.StDev = math.Sqrt(acc / float64(res.N-1))
	}
	return
}

func (s ValueStats) pick(aggr Aggregation) float64 {
	switch aggr {
	case AGGREGATE_MEDIAN:
		return s.Median
	case AGGREGATE_MIN:
		return s.Min
	case AGGREGATE_MAX:
		return s.Max
	case AGGREGATE_SUM:
		return s.Sum
	case AGGREGATE_LAST:
		return s.Last
	default:
		return s.Average
	}
}

// valueFromSamplePairs aggregates a range series. ok is false if the series
// has no finite samples. Warnings flag distributions for which the aggregate
// is likely a poor summary.
func valueFromSamplePairs(samples []model.SamplePair, aggr Aggregation, logLabel string) (value float64, ok bool, warnings []string) {
	d := calcSamplePairStats(samples)
	if d.N == 0 {
		return math.NaN(), false, nil
	}
	if log.IsTraceEnabled() {
		log.Tracef("series statistics for %v: %#v", logLabel, d)
	}

	// average != median typically indicates uneven distribution
	if math.Abs(d.Average-d.Median) > 0.1*math.Abs(d.Average) {
		warnings = append(warnings, fmt.Sprintf("potentially uneven distribution for %v: average %v, median %v", logLabel, d.Average, d.Median))
	}
	if d.Average != 0.0 && d.StDev/math.Abs(d.Average) > 0.1 {
		warnings = append(warnings, fmt.Sprintf("potentially uneven distribution for %v: average %v, stdev %v", logLabel, d.Average, d.StDev))
	}

	return d.pick(aggr), true, warnings
}
