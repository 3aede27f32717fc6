package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	tablePadding = 2
	// maxCellWidth bounds free-text cells such as validation errors.
	maxCellWidth = 72
)

// writeTable aligns rows under headers. Empty cells print as "-" and long
// cells are shortened.
func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = tableCell(cell)
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}
	return writer.Flush()
}

func tableCell(cell string) string {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), "\n", " ")
	if cell == "" {
		return "-"
	}
	runes := []rune(cell)
	if len(runes) > maxCellWidth {
		return string(runes[:maxCellWidth-3]) + "..."
	}
	return cell
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
