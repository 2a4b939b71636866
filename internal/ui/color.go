package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chriserin/sheetgen/internal/model"
)

var (
	genStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle = lipgloss.NewStyle().Faint(true)
	headStyle = lipgloss.NewStyle().Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func GenLine(w io.Writer, path string) {
	fmt.Fprintln(w, genStyle.Render("gen")+"  "+path)
}

func DiagnosticLine(w io.Writer, d model.Diagnostic) {
	label := infoStyle.Render("info")
	if d.Severity == model.SeverityWarning {
		label = warnStyle.Render("warn")
	}
	loc := d.Sheet
	if d.Row > 0 {
		loc = fmt.Sprintf("%s:%d", d.Sheet, d.Row)
	}
	if loc != "" {
		loc += "  "
	}
	fmt.Fprintf(w, "%s  %s%s %s\n", label, loc, d.Message, infoStyle.Render("("+d.Code+")"))
}

func ErrorLine(w io.Writer, err error) {
	fmt.Fprintln(w, errStyle.Render("error")+"  "+err.Error())
}

func Heading(w io.Writer, text string) {
	fmt.Fprintln(w, headStyle.Render(text))
}

// Detail prints text indented by depth levels.
func Detail(w io.Writer, depth int, text string) {
	fmt.Fprintf(w, "%*s%s\n", depth*2, "", text)
}

// Marker prints an annotation-like note, dimmed.
func Marker(w io.Writer, depth int, text string) {
	fmt.Fprintf(w, "%*s%s\n", depth*2, "", infoStyle.Render(text))
}

func RunLine(w io.Writer, id, workbook string, started time.Time, files, diagnostics int) {
	fmt.Fprintf(w, "%s  %s  %s  %d files  %d diagnostics\n",
		infoStyle.Render(id[:min(8, len(id))]), started.Local().Format("2006-01-02 15:04"), workbook, files, diagnostics)
}

func SummaryLine(w io.Writer, files, warnings int) {
	if warnings > 0 {
		fmt.Fprintf(w, "generated %d files, %s\n", files, warnStyle.Render(fmt.Sprintf("%d warnings", warnings)))
		return
	}
	fmt.Fprintf(w, "generated %d files\n", files)
}
