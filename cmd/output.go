/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	appmodel "dynamic-rounding/app/model"
	opsmath "dynamic-rounding/math"
)

type RowTable struct {
	wr   io.Writer
	opts appmodel.Options
	rows []*appmodel.Rounded // rows written so far, for the summary
	t    *tablewriter.Table  // table writer, if used
	yaml *yaml.Encoder       // yaml encoder, if used
	i    interactiveState    // interactive browser, if used
}

type DisplayMethods struct {
	WriteHeader func(table *RowTable)
	WriteRow    func(table *RowTable, row *appmodel.Rounded)
	WriteOut    func(table *RowTable) error
}

func getDisplayMethods() map[string]DisplayMethods {
	return map[string]DisplayMethods{
		OUTPUT_TABLE:       {(*RowTable).outputTableHeader, (*RowTable).outputTableRow, (*RowTable).outputTableOut},
		OUTPUT_YAML:        {(*RowTable).outputYamlHeader, (*RowTable).outputAnyRow, (*RowTable).outputYamlOut},
		OUTPUT_PLAIN:       {(*RowTable).outputPlainHeader, (*RowTable).outputPlainRow, (*RowTable).outputPlainOut},
		OUTPUT_INTERACTIVE: {(*RowTable).outputInteractiveInit, (*RowTable).outputInteractiveAddRow, (*RowTable).outputInteractiveRun},
	}
}

type Summary struct {
	Count            int     `yaml:"count"`
	Rounded          int     `yaml:"rounded"`
	InputTotal       float64 `yaml:"input_total"`
	RoundedTotal     float64 `yaml:"rounded_total"`
	MaxRelativeError float64 `yaml:"max_relative_error"`
}

func summarize(rows []*appmodel.Rounded) Summary {
	flat := make([]appmodel.Rounded, len(rows))
	rounded := 0
	for i, r := range rows {
		flat[i] = *r
		if r.Magnitude != nil {
			rounded++
		}
	}
	inputs, outputs := appmodel.Floats(flat)
	return Summary{
		Count:            len(rows),
		Rounded:          rounded,
		InputTotal:       opsmath.Sum(inputs...),
		RoundedTotal:     opsmath.Sum(outputs...),
		MaxRelativeError: opsmath.MaxRelativeError(inputs, outputs),
	}
}

type column struct {
	Title     string
	Alignment int
}

// constant table - columns of the table and interactive views
func getColumns() []column {
	return []column{
		{"Label", tablewriter.ALIGN_LEFT},
		{"Input", tablewriter.ALIGN_RIGHT},
		{"Rounded", tablewriter.ALIGN_RIGHT},
		{"Magnitude", tablewriter.ALIGN_RIGHT},
		{"Offset", tablewriter.ALIGN_RIGHT},
		{"Group", tablewriter.ALIGN_LEFT},
	}
}

func rowCells(row *appmodel.Rounded) []string {
	return []string{
		row.Label,
		row.Input.String(),
		row.Output.String(),
		appmodel.Mag2String(row.Magnitude),
		appmodel.Offset2String(row.Offset),
		row.Group.String(),
	}
}

func percent(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 2, 64) + "%"
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'g', 15, 64)
}

func (table *RowTable) outputTableHeader() {
	columns := getColumns()
	titles := make([]string, len(columns))
	aligns := make([]int, len(columns))
	for i, c := range columns {
		titles[i], aligns[i] = c.Title, c.Alignment
	}

	table.t = tablewriter.NewWriter(table.wr)
	table.t.SetAutoFormatHeaders(false)
	table.t.SetAutoWrapText(false)
	table.t.SetHeader(titles)
	table.t.SetColumnAlignment(aligns)
	table.t.SetCenterSeparator("")
	table.t.SetColumnSeparator("")
	table.t.SetRowSeparator("")
	table.t.SetHeaderLine(false)
	table.t.SetBorder(false)
}

func (table *RowTable) outputTableRow(row *appmodel.Rounded) {
	table.outputAnyRow(row)
	table.t.Append(rowCells(row))
}

func (table *RowTable) outputTableOut() error {
	s := summarize(table.rows)
	table.t.SetFooter([]string{
		"Total",
		number(s.InputTotal),
		number(s.RoundedTotal),
		"",
		"max error",
		percent(s.MaxRelativeError),
	})
	table.t.Render()
	return nil
}

func (table *RowTable) outputAnyRow(row *appmodel.Rounded) {
	table.rows = append(table.rows, row)
}

type yamlReport struct {
	Options appmodel.Options    `yaml:"options"`
	Rows    []*appmodel.Rounded `yaml:"rows"`
	Summary Summary             `yaml:"summary"`
}

func (table *RowTable) outputYamlHeader() {
	table.yaml = yaml.NewEncoder(table.wr)
	table.yaml.SetIndent(2)
}

func (table *RowTable) outputYamlOut() error {
	report := yamlReport{Options: table.opts, Rows: table.rows, Summary: summarize(table.rows)}
	if err := table.yaml.Encode(report); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return table.yaml.Close()
}

func (table *RowTable) outputPlainHeader() {}

func (table *RowTable) outputPlainRow(row *appmodel.Rounded) {
	if row.Label != "" {
		fmt.Fprintf(table.wr, "%v\t%v\n", row.Label, row.Output.String())
	} else {
		fmt.Fprintln(table.wr, row.Output.String())
	}
}

func (table *RowTable) outputPlainOut() error {
	return nil
}

func newRowTable(wr io.Writer, opts appmodel.Options) *RowTable {
	return &RowTable{wr: wr, opts: opts}
}

// writeRows renders rows in the given output format.
func writeRows(wr io.Writer, format string, rows []appmodel.Rounded, opts appmodel.Options) error {
	methods, ok := getDisplayMethods()[format]
	if !ok {
		return fmt.Errorf("--output format must be one of %v", getOutputFormats())
	}
	table := newRowTable(wr, opts)
	methods.WriteHeader(table)
	for i := range rows {
		methods.WriteRow(table, &rows[i])
	}
	return methods.WriteOut(table)
}
