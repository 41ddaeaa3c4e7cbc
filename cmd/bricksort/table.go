package main

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bricksort/internal/cluster"
	"bricksort/internal/inventory"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func clusterTable(summaries []cluster.Summary) string {
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Label,
			strconv.FormatInt(summary.Quantity, 10),
			memberList(summary.Members),
		})
	}
	return renderTable(
		[]string{"Label", "Quantity", "Parts"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft})
}

func inventoryTable(ws *inventory.WorkingSet) string {
	rows := make([][]string, 0, len(ws.Parts))
	for _, part := range ws.Parts {
		rows = append(rows, []string{
			strconv.FormatInt(part.DesignID, 10),
			strconv.FormatInt(part.Quantity, 10),
			strings.Join(part.Labels, " > "),
		})
	}
	return renderTable(
		[]string{"DesignID", "Quantity", "Taxonomy"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft})
}
