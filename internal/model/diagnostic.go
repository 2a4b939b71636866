package model

import "fmt"

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Diagnostic codes. Each one names a tolerated skip or degradation.
const (
	CodeSheetSkipped          = "sheet-skipped"
	CodeRowSkipped            = "row-skipped"
	CodeStepWithoutScenario   = "step-without-scenario"
	CodeStepWithoutMethod     = "step-without-method"
	CodeValueDropped          = "value-dropped"
	CodeAccountIncomplete     = "account-incomplete"
	CodeDuplicateAccount      = "duplicate-account"
	CodeDuplicateMethod       = "duplicate-method"
	CodeUnresolvedStep        = "unresolved-step"
	CodeUnresolvedPlaceholder = "unresolved-placeholder"
	CodeInvalidCommand        = "invalid-command"
	CodeMissingParam          = "missing-param"
	CodeDuplicateClass        = "duplicate-class"
)

// Diagnostic records something the pipeline skipped or degraded. Row is
// 1-based; zero means the diagnostic is not tied to a row.
type Diagnostic struct {
	Severity Severity
	Code     string
	Sheet    string
	Row      int
	Message  string
}

func (d Diagnostic) String() string {
	loc := d.Sheet
	if d.Row > 0 {
		loc = fmt.Sprintf("%s:%d", d.Sheet, d.Row)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s (%s)", d.Severity, d.Message, d.Code)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", d.Severity, loc, d.Message, d.Code)
}

// Diagnostics collects diagnostics in the order they occur.
type Diagnostics struct {
	list []Diagnostic
}

func (d *Diagnostics) Add(diag Diagnostic) {
	d.list = append(d.list, diag)
}

func (d *Diagnostics) Infof(code, sheet string, row int, format string, args ...any) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Sheet: sheet, Row: row, Message: fmt.Sprintf(format, args...)})
}

func (d *Diagnostics) Warnf(code, sheet string, row int, format string, args ...any) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Sheet: sheet, Row: row, Message: fmt.Sprintf(format, args...)})
}

// List returns the collected diagnostics.
func (d *Diagnostics) List() []Diagnostic {
	return d.list
}

// HasCode reports whether any collected diagnostic carries code.
func (d *Diagnostics) HasCode(code string) bool {
	for _, diag := range d.list {
		if diag.Code == code {
			return true
		}
	}
	return false
}
