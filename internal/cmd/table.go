package cmd

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable renders rows under headers in the shared rounded style.
// Columns named in rightAlign (1-based) are right-aligned; headers stay
// left-aligned throughout.
func renderTable(headers table.Row, rows []table.Row, rightAlign ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(headers)
	tw.AppendRows(rows)

	configs := make([]table.ColumnConfig, 0, len(rightAlign))
	for _, col := range rightAlign {
		configs = append(configs, table.ColumnConfig{
			Number:      col,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
