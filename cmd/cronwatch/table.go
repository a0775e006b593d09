package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderFields renders the status verdict as a two-column field/value table.
func renderFields(rows [][2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}

// runRow is one rendered history line.
type runRow struct {
	When    string
	Outcome string
	LastRun string
	Age     string
	RunID   string
	Detail  string
}

// renderRuns renders history entries newest-first. Age is the only numeric
// column, so it alone is right-aligned.
func renderRuns(rows []runRow) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"When", "Outcome", "Last Run", "Age", "Run", "Detail"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row.When, row.Outcome, row.LastRun, row.Age, row.RunID, row.Detail})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
