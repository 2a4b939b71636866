// Package sheet reads typed cell values out of workbooks.
package sheet

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the declared type of a cell.
type Kind int

const (
	Absent Kind = iota
	String
	Number
	Bool
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	default:
		return "absent"
	}
}

// Value is a single typed cell value. The zero Value is absent.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
	Bool bool
}

func Str(s string) Value { return Value{Kind: String, Str: s} }
func Num(n float64) Value { return Value{Kind: Number, Num: n} }
func Boolean(b bool) Value { return Value{Kind: Bool, Bool: b} }

// IsAbsent reports whether the cell held nothing.
func (v Value) IsAbsent() bool { return v.Kind == Absent }

// IsBlank reports whether the value is absent or a whitespace-only string.
func (v Value) IsBlank() bool {
	switch v.Kind {
	case Absent:
		return true
	case String:
		return strings.TrimSpace(v.Str) == ""
	default:
		return false
	}
}

// Text renders the value as cell text. Whole numbers have no fraction.
func (v Value) Text() string {
	switch v.Kind {
	case String:
		return v.Str
	case Number:
		return FormatNumber(v.Num)
	case Bool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// Any returns the value as string, float64 or bool, or nil when absent.
func (v Value) Any() any {
	switch v.Kind {
	case String:
		return v.Str
	case Number:
		return v.Num
	case Bool:
		return v.Bool
	default:
		return nil
	}
}

// FormatNumber prints whole numbers without a trailing ".0".
func FormatNumber(n float64) string {
	if math.Abs(n) < 1e15 && n == math.Trunc(n) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
