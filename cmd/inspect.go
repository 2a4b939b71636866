package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/sheetgen/internal/generate"
	"github.com/chriserin/sheetgen/internal/model"
	"github.com/chriserin/sheetgen/internal/translate"
	"github.com/chriserin/sheetgen/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <workbook>",
	Short: "Print the parsed workbook and its translated statements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInspect(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// RunInspect prints what generate would produce from workbook without
// writing anything.
func RunInspect(w io.Writer, workbook string) error {
	opts := cfg.GenerateOptions()
	opts.Logger = logger

	plan, err := generate.Run(workbook, opts)
	if err != nil {
		return err
	}
	// Translation is pure, so a second engine yields the planned bodies.
	engine := translate.New(plan.Store, logger)

	for _, u := range plan.Store.Utils {
		ui.Heading(w, fmt.Sprintf("util %s (%s)", u.Name, u.Package))
		for _, m := range u.Methods {
			ui.Detail(w, 1, fmt.Sprintf("method %s: %s", m.Name, m.Description))
			ui.Marker(w, 2, fmt.Sprintf("noReset=%t", m.NoReset))
			printStatements(w, engine.TranslateCommonMethod(m).Statements)
		}
	}

	for _, f := range plan.Store.Features {
		ui.Heading(w, fmt.Sprintf("feature %s (%s)", f.Name, f.Package))
		for _, s := range f.Scenarios {
			tm := engine.TranslateScenario(f, s)
			ui.Detail(w, 1, "scenario "+s.Name)
			printMarkers(w, tm)
			printStatements(w, tm.Statements)
		}
	}

	if len(plan.Diagnostics) > 0 {
		ui.Heading(w, "diagnostics")
		for _, d := range plan.Diagnostics {
			ui.DiagnosticLine(w, d)
		}
	}
	return nil
}

func printMarkers(w io.Writer, m translate.Method) {
	if m.NoReset != nil {
		ui.Marker(w, 2, fmt.Sprintf("@NoResetSetting(noReset = %t)", *m.NoReset))
	}
	if m.Account != nil {
		ui.Marker(w, 2, "@TestingAccount "+accountLabel(*m.Account))
	}
}

func accountLabel(a model.AccountInfo) string {
	return fmt.Sprintf("%s (%s)", a.Type, a.UserName)
}

func printStatements(w io.Writer, stmts []translate.Statement) {
	for _, s := range stmts {
		ui.Detail(w, 2, s.String())
	}
}
