package sheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGrid_OutOfRangeIsAbsent(t *testing.T) {
	g := NewGrid("s", [][]any{{"a", 1}, {}})

	assert.Equal(t, 2, g.NumRows())
	assert.Equal(t, 2, g.RowLen(0))
	assert.Equal(t, 0, g.RowLen(5))
	assert.True(t, g.Cell(0, 5).IsAbsent())
	assert.True(t, g.Cell(9, 0).IsAbsent())
	assert.True(t, g.Cell(-1, 0).IsAbsent())
}

func TestNewGrid_ConvertsCells(t *testing.T) {
	g := NewGrid("s", [][]any{{"text", 3, 2.5, true, nil, "", Str("v"), struct{}{}}})

	assert.Equal(t, Str("text"), g.Cell(0, 0))
	assert.Equal(t, Num(3), g.Cell(0, 1))
	assert.Equal(t, Num(2.5), g.Cell(0, 2))
	assert.Equal(t, Boolean(true), g.Cell(0, 3))
	assert.True(t, g.Cell(0, 4).IsAbsent())
	assert.True(t, g.Cell(0, 5).IsAbsent())
	assert.Equal(t, Str("v"), g.Cell(0, 6))
	assert.True(t, g.Cell(0, 7).IsAbsent())
}

func TestValue_Text(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Str("abc"), "abc"},
		{Num(10), "10"},
		{Num(1.5), "1.5"},
		{Num(-3), "-3"},
		{Boolean(false), "false"},
		{Value{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.Text(), tt.v.Kind.String())
	}
}

func TestValue_IsBlank(t *testing.T) {
	assert.True(t, Value{}.IsBlank())
	assert.True(t, Str("  ").IsBlank())
	assert.False(t, Str("x").IsBlank())
	assert.False(t, Num(0).IsBlank())
	assert.False(t, Boolean(false).IsBlank())
}

func TestValue_Any(t *testing.T) {
	assert.Equal(t, "x", Str("x").Any())
	assert.Equal(t, 2.0, Num(2).Any())
	assert.Equal(t, true, Boolean(true).Any())
	assert.Nil(t, Value{}.Any())
}

func TestTypedValue(t *testing.T) {
	tests := []struct {
		name string
		typ  excelize.CellType
		raw  string
		want Value
	}{
		{"bool true", excelize.CellTypeBool, "1", Boolean(true)},
		{"bool false", excelize.CellTypeBool, "FALSE", Boolean(false)},
		{"bool garbage", excelize.CellTypeBool, "maybe", Str("maybe")},
		{"shared string", excelize.CellTypeSharedString, "10", Str("10")},
		{"inline string", excelize.CellTypeInlineString, "hi", Str("hi")},
		{"untyped number", excelize.CellTypeUnset, "20", Num(20)},
		{"untyped text", excelize.CellTypeUnset, "abc", Str("abc")},
		{"number", excelize.CellTypeNumber, "0.5", Num(0.5)},
		{"error", excelize.CellTypeError, "#DIV/0!", Value{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, typedValue(tt.typ, tt.raw))
		})
	}
}

func newBook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	_, err := f.NewSheet("data")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("data", "A1", "settings"))
	require.NoError(t, f.SetCellValue("data", "B2", 20))
	require.NoError(t, f.SetCellValue("data", "C2", true))
	require.NoError(t, f.SetCellValue("data", "D2", "20"))
	require.NoError(t, f.SetCellValue("data", "A3", 1.5))
	return f
}

func TestFromFile_ReadsTypedCells(t *testing.T) {
	wb, err := FromFile(newBook(t))
	require.NoError(t, err)

	sheets := wb.Sheets()
	require.Len(t, sheets, 2)
	assert.Equal(t, "Sheet1", sheets[0].Name())
	assert.Equal(t, 0, sheets[0].NumRows())

	s := sheets[1]
	assert.Equal(t, "data", s.Name())
	assert.Equal(t, Str("settings"), s.Cell(0, 0))
	assert.True(t, s.Cell(1, 0).IsAbsent())
	assert.Equal(t, Num(20), s.Cell(1, 1))
	assert.Equal(t, Boolean(true), s.Cell(1, 2))
	assert.Equal(t, Str("20"), s.Cell(1, 3))
	assert.Equal(t, Num(1.5), s.Cell(2, 0))
}

func TestOpen_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, newBook(t).SaveAs(path))

	wb, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, wb.Path)
	require.Len(t, wb.Sheets(), 2)
	assert.Equal(t, Boolean(true), wb.Sheets()[1].Cell(1, 2))
}

func TestOpenReader(t *testing.T) {
	buf, err := newBook(t).WriteToBuffer()
	require.NoError(t, err)

	wb, err := OpenReader(buf)
	require.NoError(t, err)
	assert.Equal(t, Num(20), wb.Sheets()[1].Cell(1, 1))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorContains(t, err, "opening workbook")
}
