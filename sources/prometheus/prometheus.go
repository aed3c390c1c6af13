/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

// Package prometheus collects labeled values from a Prometheus server so that
// they can be rounded as one data set.
package prometheus

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"golang.org/x/sync/errgroup"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/app/series"
	"dynamic-rounding/log"
)

const DEFAULT_TIMEOUT = 10 * time.Second

// Example API usage: https://github.com/prometheus/client_golang/blob/master/api/prometheus/v1/example_test.go

// Window selects what is queried: the instant Time, or Range when it is set.
type Window struct {
	Time  time.Time
	Range *v1.Range
}

// Sample is one series returned by a query, reduced to a single value.
// Value is null when the series had no usable samples.
type Sample struct {
	Query  string
	Metric model.Metric
	Value  appmodel.Value
}

// Label names the sample: the value of labelName when the metric carries it,
// otherwise the full label set, otherwise the query itself.
func (s Sample) Label(labelName string) string {
	if labelName != "" {
		if v, ok := s.Metric[model.LabelName(labelName)]; ok {
			return string(v)
		}
	}
	if len(s.Metric) > 0 {
		return s.Metric.String()
	}
	return s.Query
}

type Collector struct {
	API         v1.API
	Timeout     time.Duration
	Aggregation Aggregation
	Selectors   QuerySelectors
}

func CreateAPI(uri *url.URL) (v1.API, error) {
	client, err := api.NewClient(api.Config{
		Address: uri.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating Prometheus client: %w", err)
	}
	return v1.NewAPI(client), nil
}

func NewCollector(uri *url.URL, timeout time.Duration, aggr Aggregation) (*Collector, error) {
	promApi, err := CreateAPI(uri)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	return &Collector{API: promApi, Timeout: timeout, Aggregation: aggr}, nil
}

// Collect runs all queries concurrently and returns their samples, grouped by
// query in the order given and sorted by label set within each query. The
// first failing query cancels the others. update, if not nil, is called as
// queries complete, one call at a time and with Done never decreasing.
func (c *Collector) Collect(ctx context.Context, queries []string, window Window, update log.UpdateFunc) ([]Sample, error) {
	results := make([][]Sample, len(queries))
	var lock sync.Mutex
	done := 0
	if update != nil {
		update(log.ProgressInfo{Done: 0, Total: len(queries)})
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		eg.Go(func() error {
			samples, err := c.collectQuery(egCtx, q, window)
			if err != nil {
				return err
			}
			results[i] = samples
			lock.Lock()
			defer lock.Unlock()
			done++
			if update != nil {
				update(log.ProgressInfo{Done: done, Total: len(queries)})
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	all := []Sample{}
	for _, samples := range results {
		all = append(all, samples...)
	}
	return all, nil
}

func (c *Collector) collectQuery(ctx context.Context, rawQuery string, window Window) ([]Sample, error) {
	query, err := expandQuery(rawQuery, c.Selectors)
	if err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var result model.Value
	var warnings v1.Warnings
	if window.Range != nil {
		result, warnings, err = c.API.QueryRange(reqCtx, query, *window.Range)
	} else {
		result, warnings, err = c.API.Query(reqCtx, query, window.Time)
	}
	if err != nil {
		return nil, fmt.Errorf("error querying Prometheus for %q: %w", query, err)
	}
	for _, w := range warnings {
		log.Warnf("query %q: %v", query, w)
	}
	log.Tracef("query %q: %T with %v", query, result, result)

	samples, err := c.samplesFromResult(query, result)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Metric.String() < samples[j].Metric.String()
	})
	return samples, nil
}

func (c *Collector) samplesFromResult(query string, result model.Value) ([]Sample, error) {
	switch r := result.(type) {
	case model.Vector:
		samples := make([]Sample, 0, len(r))
		for _, s := range r {
			samples = append(samples, Sample{Query: query, Metric: s.Metric, Value: sampleValue(float64(s.Value))})
		}
		return samples, nil
	case model.Matrix:
		samples := make([]Sample, 0, len(r))
		for _, s := range r {
			value, ok, warnings := valueFromSamplePairs(s.Values, c.Aggregation, s.Metric.String())
			for _, w := range warnings {
				log.Warnf("query %q: %v", query, w)
			}
			sample := Sample{Query: query, Metric: s.Metric, Value: appmodel.Null()}
			if ok {
				sample.Value = sampleValue(value)
			}
			samples = append(samples, sample)
		}
		return samples, nil
	case *model.Scalar:
		return []Sample{{Query: query, Metric: model.Metric{}, Value: sampleValue(float64(r.Value))}}, nil
	default:
		return nil, fmt.Errorf("query %q returned %T, expected a vector, matrix or scalar", query, result)
	}
}

// sampleValue maps Prometheus' NaN (no data) to null.
func sampleValue(f float64) appmodel.Value {
	if math.IsNaN(f) {
		return appmodel.Null()
	}
	return appmodel.Number(f)
}

// ToSeries turns samples into a series named name, labeling each entry with Sample.Label.
func ToSeries(name string, samples []Sample, labelName string) series.Series {
	labels := make([]string, len(samples))
	values := make([]appmodel.Value, len(samples))
	for i, s := range samples {
		labels[i] = s.Label(labelName)
		values[i] = s.Value
	}
	return series.Series{Name: name, Labels: labels, Values: values}
}
