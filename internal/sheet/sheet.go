package sheet

// Sheet is a read-only view of one worksheet. Rows and columns are 0-based.
// Reading outside the used range returns an absent Value.
type Sheet interface {
	Name() string
	NumRows() int
	RowLen(row int) int
	Cell(row, col int) Value
}

// Grid is an in-memory Sheet.
type Grid struct {
	name string
	rows [][]Value
}

// NewGrid builds a Grid from plain Go values. Each cell may be a string,
// any integer or float type, a bool, a Value, or nil for an empty cell.
func NewGrid(name string, rows [][]any) *Grid {
	g := &Grid{name: name, rows: make([][]Value, len(rows))}
	for r, row := range rows {
		g.rows[r] = make([]Value, len(row))
		for c, cell := range row {
			g.rows[r][c] = valueOf(cell)
		}
	}
	return g
}

func (g *Grid) Name() string { return g.name }

func (g *Grid) NumRows() int { return len(g.rows) }

func (g *Grid) RowLen(row int) int {
	if row < 0 || row >= len(g.rows) {
		return 0
	}
	return len(g.rows[row])
}

func (g *Grid) Cell(row, col int) Value {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return Value{}
	}
	return g.rows[row][col]
}

func valueOf(cell any) Value {
	switch v := cell.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case string:
		if v == "" {
			return Value{}
		}
		return Str(v)
	case bool:
		return Boolean(v)
	case int:
		return Num(float64(v))
	case int64:
		return Num(float64(v))
	case int32:
		return Num(float64(v))
	case float32:
		return Num(float64(v))
	case float64:
		return Num(v)
	default:
		return Value{}
	}
}
