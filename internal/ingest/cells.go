package ingest

import (
	"strings"

	"github.com/chriserin/sheetgen/internal/sheet"
)

// text returns the trimmed text of a cell, empty when absent.
func text(s sheet.Sheet, row, col int) string {
	return strings.TrimSpace(s.Cell(row, col).Text())
}

// params collects the typed values from col to the end of the row.
// Absent cells are skipped.
func params(s sheet.Sheet, row, col int) []any {
	var out []any
	for c := col; c < s.RowLen(row); c++ {
		v := s.Cell(row, c)
		if v.IsAbsent() {
			continue
		}
		out = append(out, v.Any())
	}
	return out
}

// headerField reads the class-level field stored at row, column 1.
func headerField(s sheet.Sheet, row int) string {
	return text(s, row, 1)
}
