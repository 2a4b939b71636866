package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook holds every worksheet of an xlsx file, loaded eagerly in
// workbook order.
type Workbook struct {
	Path   string
	sheets []Sheet
}

// Open reads the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	wb, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("reading workbook %s: %w", path, err)
	}
	wb.Path = path
	return wb, nil
}

// OpenReader reads a workbook from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	return load(f)
}

// FromFile snapshots an already open excelize file. The caller keeps
// ownership of f.
func FromFile(f *excelize.File) (*Workbook, error) {
	return load(f)
}

// Sheets returns the worksheets in workbook order.
func (w *Workbook) Sheets() []Sheet {
	return w.sheets
}

func load(f *excelize.File) (*Workbook, error) {
	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		g, err := readSheet(f, name)
		if err != nil {
			return nil, err
		}
		wb.sheets = append(wb.sheets, g)
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string) (*Grid, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}

	g := &Grid{name: name, rows: make([][]Value, len(rows))}
	for r, row := range rows {
		g.rows[r] = make([]Value, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", name, err)
			}
			typ, err := f.GetCellType(name, ref)
			if err != nil {
				return nil, fmt.Errorf("sheet %q cell %s: %w", name, ref, err)
			}
			g.rows[r][c] = typedValue(typ, raw)
		}
	}
	return g, nil
}

// typedValue converts raw cell text using the declared cell type. Cells
// without an explicit type are numbers in the xlsx format, so they are
// parsed as such and fall back to text.
func typedValue(typ excelize.CellType, raw string) Value {
	switch typ {
	case excelize.CellTypeBool:
		switch strings.ToUpper(strings.TrimSpace(raw)) {
		case "1", "TRUE":
			return Boolean(true)
		case "0", "FALSE":
			return Boolean(false)
		}
		return Str(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return Str(raw)
	case excelize.CellTypeError:
		return Value{}
	default:
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return Num(n)
		}
		return Str(raw)
	}
}
