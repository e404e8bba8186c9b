package htmlconv

import "strings"

// RenderTable formats rows as a pipe-delimited markdown table. The first row
// is the header; data rows are right-padded with empty cells to the widest
// row. The header row is emitted as-is, even when narrower than the widest
// data row.
func RenderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	numCols := 0
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	var lines []string
	lines = append(lines, "| "+strings.Join(rows[0], " | ")+" |")

	sep := make([]string, numCols)
	for i := range sep {
		sep[i] = "---"
	}
	lines = append(lines, "| "+strings.Join(sep, " | ")+" |")

	for _, row := range rows[1:] {
		padded := make([]string, numCols)
		copy(padded, row)
		lines = append(lines, "| "+strings.Join(padded, " | ")+" |")
	}

	return strings.Join(lines, "\n")
}
