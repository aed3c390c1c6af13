/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	appmodel "dynamic-rounding/app/model"
	"dynamic-rounding/app/rounding"
	"dynamic-rounding/log"
)

func runRound(cmd *cobra.Command, args []string) error {
	tokens, err := readInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return fmt.Errorf("no values to round")
	}

	var dataset *bool
	if cmd.Flags().Changed("dataset") {
		dataset = &datasetMode
	}
	rows, err := roundInputs(tokens, referenceValues, options, dataset)
	if err != nil {
		return err
	}
	return writeRows(cmd.OutOrStdout(), outputFormat, rows, options)
}

// readInputs returns args or, if there are none, the non-blank lines of in.
func readInputs(args []string, in io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	log.Trace("reading values from standard input")
	tokens := []string{}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading standard input: %w", err)
	}
	return tokens, nil
}

// parseInput reads "label=value" or a bare value.
func parseInput(token string) (label string, value appmodel.Value) {
	if i := strings.LastIndex(token, "="); i >= 0 {
		return strings.TrimSpace(token[:i]), appmodel.ParseValue(token[i+1:])
	}
	return "", appmodel.ParseValue(token)
}

// roundInputs rounds tokens against reference if it is given, as a data set if
// dataset says so (by default, if there is more than one token or a dataset
// option is set), and one by one otherwise.
func roundInputs(tokens []string, reference []string, opts appmodel.Options, dataset *bool) ([]appmodel.Rounded, error) {
	labels := make([]string, len(tokens))
	values := make([]appmodel.Value, len(tokens))
	for i, t := range tokens {
		labels[i], values[i] = parseInput(t)
	}

	var rows []appmodel.Rounded
	var err error
	switch {
	case len(reference) > 0:
		ref := appmodel.ParseValues(reference)
		log.Tracef("rounding %d value(s) against a reference of %d", len(values), len(ref))
		rows = make([]appmodel.Rounded, len(values))
		for i, v := range values {
			if rows[i], err = rounding.RoundAgainst(v, ref, opts); err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
		}
	case useDataset(dataset, len(values), opts):
		log.Tracef("rounding %d value(s) as a data set", len(values))
		if rows, err = rounding.RoundDataset(values, opts); err != nil {
			return nil, err
		}
	default:
		rows = make([]appmodel.Rounded, len(values))
		for i, v := range values {
			if rows[i], err = rounding.RoundSingle(v, opts); err != nil {
				return nil, fmt.Errorf("value %d: %w", i, err)
			}
		}
	}

	for i := range rows {
		rows[i].Label = labels[i]
	}
	return rows, nil
}

func useDataset(dataset *bool, count int, opts appmodel.Options) bool {
	if dataset != nil {
		return *dataset
	}
	return count > 1 || opts.DatasetRequested()
}
