/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/karrick/tparse/v2"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/app/series"
	"dynamic-rounding/log"
	"dynamic-rounding/sources/prometheus"
)

var promUriString string
var promUri *url.URL
var timeString string
var timeStartString string
var timeEndString string
var timeStepString string
var aggregationString string
var labelName string
var querySelectors prometheus.QuerySelectors

var promCmd = &cobra.Command{
	Use:   "prom <query>...",
	Short: "Round the values returned by Prometheus queries",
	Long: `Runs one or more PromQL queries and rounds every returned series as a single
data set, labeled by its label set (or by the label given with --label).

Without --start the queries are evaluated at --time. With --start each series is
queried over [--start, --end] and reduced to one value with --aggregate.
Queries may refer to {{ .Selector }} and {{ .Window }}.`,
	Example:      `  dynround prom -p http://localhost:9090 --label service 'sum by (service) (billing_cost_total)'`,
	Aliases:      []string{"prometheus"},
	Args:         cobra.MinimumNArgs(1),
	PreRunE:      validatePromFlags,
	RunE:         runProm,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(promCmd)
	promCmd.Flags().SortFlags = false

	promCmd.Flags().StringVarP(&promUriString, "prometheus-url", "p", "", "URI to Prometheus API (typically port-forwarded to localhost using kubectl)")
	promCmd.Flags().StringVar(&timeString, "time", "-0s", "Evaluation time for instant queries, in RFC3339 or relative form")
	promCmd.Flags().StringVar(&timeStartString, "start", "", "Range start time, in RFC3339 or relative form; enables range queries")
	promCmd.Flags().StringVar(&timeEndString, "end", "-0s", "Range end time, in RFC3339 or relative form")
	promCmd.Flags().StringVar(&timeStepString, "step", "1m", "Range resolution, in relative form")
	promCmd.Flags().StringVar(&aggregationString, "aggregate", string(prometheus.AGGREGATE_AVG), "How to reduce a range series to one value (avg|median|min|max|sum|last)")
	promCmd.Flags().StringVar(&labelName, "label", "", "Label whose value names each series (default is the full label set)")
	promCmd.Flags().StringVar(&querySelectors.Selector, "selector", "", "Value of {{ .Selector }} in queries")
	promCmd.Flags().StringVar(&querySelectors.Window, "window", "5m", "Value of {{ .Window }} in queries")
	promCmd.Flags().Duration("timeout", prometheus.DEFAULT_TIMEOUT, "Timeout for each query")
	cobra.CheckErr(viper.BindPFlag("prometheus-url", promCmd.Flags().Lookup("prometheus-url")))
	cobra.CheckErr(viper.BindPFlag("timeout", promCmd.Flags().Lookup("timeout")))
}

func parseRequiredUriFlag(text string, flag string) (*url.URL, error) {
	if text == "" {
		return nil, fmt.Errorf("required parameter %q not specified", flag)
	}
	uri, err := url.ParseRequestURI(text)
	if err != nil {
		return nil, fmt.Errorf("invalid URL for parameter %q: %w", flag, err)
	}
	return uri, nil
}

func parseInstant(s string, option string, now time.Time) (instant time.Time, err error) {
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		instant, err = tparse.AddDuration(now, s)
		if err != nil {
			err = fmt.Errorf("error parsing %v (relative): %w", option, err)
		}
	} else {
		instant, err = tparse.Parse(time.RFC3339, s)
		if err != nil {
			err = fmt.Errorf("error parsing %v (absolute): %w", option, err)
		}
	}
	return
}

// parseWindow turns the time flags into a query window: an instant at
// instantString, or a range if startString is not empty.
func parseWindow(instantString, startString, endString, stepString string, now time.Time) (prometheus.Window, error) {
	if startString == "" {
		instant, err := parseInstant(instantString, "--time", now)
		return prometheus.Window{Time: instant}, err
	}

	start, err := parseInstant(startString, "--start", now)
	if err != nil {
		return prometheus.Window{}, err
	}
	end, err := parseInstant(endString, "--end", now)
	if err != nil {
		return prometheus.Window{}, err
	}
	step, err := tparse.AbsoluteDuration(start, stepString)
	if err != nil {
		return prometheus.Window{}, fmt.Errorf("could not parse time resolution: %w", err)
	}
	if !start.Before(end) {
		return prometheus.Window{}, fmt.Errorf("range start time must be earlier than end time")
	}
	if step <= 0 {
		return prometheus.Window{}, fmt.Errorf("range resolution must be positive (found %v)", step)
	}
	if end.Sub(start)/step > 11000 {
		// the Prometheus API refuses more points than this per series
		return prometheus.Window{}, fmt.Errorf("range and resolution result in more than 11000 points per series")
	}
	return prometheus.Window{Range: &v1.Range{Start: start, End: end, Step: step}}, nil
}

func validatePromFlags(cmd *cobra.Command, args []string) error {
	var err error
	promUri, err = parseRequiredUriFlag(viper.GetString("prometheus-url"), "-p/--prometheus-url")
	if err != nil {
		return err
	}
	_, err = prometheus.ParseAggregation(aggregationString)
	return err
}

func runProm(cmd *cobra.Command, queries []string) error {
	window, err := parseWindow(timeString, timeStartString, timeEndString, timeStepString, time.Now())
	if err != nil {
		return err
	}
	aggr, _ := prometheus.ParseAggregation(aggregationString)

	collector, err := prometheus.NewCollector(promUri, viper.GetDuration("timeout"), aggr)
	if err != nil {
		return err
	}
	collector.Selectors = querySelectors
	log.Tracef("querying %v: %q", promUri, queries)

	var samples []prometheus.Sample
	collect := func(update log.UpdateFunc) (err error) {
		samples, err = collector.Collect(contextOrBackground(cmd.Context()), queries, window, update)
		return
	}
	if suppressWarnings {
		err = collect(nil)
	} else {
		err = log.GoWithProgress(os.Stderr, "Querying Prometheus", collect)
	}
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		log.Warnf("no series returned by %q", queries)
	}

	// like the root command, several values are a data set unless told otherwise
	opts := options
	if len(samples) > 1 && !opts.DatasetRequested() {
		opts.OffsetTop = appmodel.Float(opts.ResolvedOffsetTop())
	}
	rows, err := series.RoundDetailed(prometheus.ToSeries(strings.Join(queries, "; "), samples, labelName), opts)
	if err != nil {
		return err
	}
	return writeRows(cmd.OutOrStdout(), outputFormat, rows, opts)
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
