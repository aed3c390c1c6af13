/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/rivo/tview"

	appmodel "dynamic-rounding/app/model"
	opsmath "dynamic-rounding/math"
)

type interactiveState struct {
	pages  *tview.Pages
	table  *tview.Table
	aligns []int // alignment for each column
}

const titleRows = 1

func (table *RowTable) updateRow(row int, cells []*tview.TableCell) {
	for col, cell := range cells {
		align := tview.AlignCenter
		if row >= titleRows {
			align = table.i.aligns[col]
		}
		table.i.table.SetCell(row, col, cell.SetAlign(align))
	}
}

func tviewAlign(align int) int {
	return map[int]int{
		tablewriter.ALIGN_LEFT:   tview.AlignLeft,
		tablewriter.ALIGN_CENTER: tview.AlignCenter,
		tablewriter.ALIGN_RIGHT:  tview.AlignRight,
	}[align]
}

// groupColor highlights the precise (top) rows and the rows left unrounded.
func groupColor(row *appmodel.Rounded) tcell.Color {
	switch {
	case row.Group == appmodel.GROUP_TOP:
		return tcell.ColorGreen
	case row.Magnitude == nil && !row.Input.IsNull() && !row.Input.IsZero():
		return tcell.ColorYellow
	default:
		return tcell.ColorDefault
	}
}

func (table *RowTable) outputInteractiveInit() {
	columns := getColumns()
	aligns := make([]int, len(columns))
	cells := make([]*tview.TableCell, len(columns))
	for i, c := range columns {
		cells[i] = tview.NewTableCell(c.Title).SetTextColor(tcell.ColorAqua)
		aligns[i] = tviewAlign(c.Alignment)
	}

	table.i = interactiveState{
		table:  tview.NewTable().SetSelectable(true, false).SetFixed(titleRows, 0),
		aligns: aligns,
	}
	table.updateRow(0, cells)
}

func (table *RowTable) outputInteractiveAddRow(row *appmodel.Rounded) {
	table.outputAnyRow(row)

	color := groupColor(row)
	values := rowCells(row)
	cells := make([]*tview.TableCell, len(values))
	for i, v := range values {
		cells[i] = tview.NewTableCell(v).SetTextColor(color)
	}
	cells[0].SetReference(row) // backlink to row in column 0
	table.updateRow(table.i.table.GetRowCount(), cells)
}

func (table *RowTable) outputInteractiveRun() error {
	app := tview.NewApplication()

	t := table.i.table
	if t.GetRowCount() > titleRows {
		t.Select(titleRows, 0)
	}

	t.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			app.Stop()
		}
	})
	t.SetSelectedFunc(func(row int, column int) {
		ref := t.GetCell(row, 0).GetReference()
		if ref == nil {
			return
		}
		table.popupRowDetail(ref.(*appmodel.Rounded))
	})
	t.SetSelectionChangedFunc(func(row int, column int) {
		// keep the title row out of the selection
		if row < titleRows && t.GetRowCount() > titleRows {
			t.Select(titleRows, 0)
		}
	})

	s := summarize(table.rows)
	t.SetTitle(fmt.Sprintf(" %d value(s), %d rounded, max error %v ", s.Count, s.Rounded, percent(s.MaxRelativeError))).SetBorder(true)

	table.i.pages = tview.NewPages()
	table.i.pages.AddPage("rows", t, true, true)
	return app.SetRoot(table.i.pages, true).SetFocus(table.i.pages).Run()
}

func (table *RowTable) popupRowDetail(row *appmodel.Rounded) {
	in, _ := row.Input.Float()
	out, _ := row.Output.Float()
	entries := [][]string{
		{"Label", row.Label},
		{"Input", row.Input.String()},
		{"Rounded", row.Output.String()},
		{"Magnitude", appmodel.Mag2String(row.Magnitude)},
		{"Offset", appmodel.Offset2String(row.Offset)},
		{"Group", row.Group.String()},
		{"Relative error", percent(opsmath.RelativeError(in, out))},
	}

	t := tview.NewTable()
	for i, e := range entries {
		t.SetCell(i, 0, tview.NewTableCell(e[0]))
		t.SetCellSimple(i, 1, ":")
		t.SetCell(i, 2, tview.NewTableCell(e[1]).SetTextColor(groupColor(row)))
	}
	t.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			table.i.pages.SwitchToPage("rows")
		}
	})

	table.i.pages.AddAndSwitchToPage("details", t, true)
}
