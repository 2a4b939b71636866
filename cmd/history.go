package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/sheetgen/internal/db"
	"github.com/chriserin/sheetgen/internal/ui"
)

var limitFlag int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded generation runs, or the files of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return RunHistoryFiles(cmd.OutOrStdout(), args[0])
		}
		return RunHistory(cmd.OutOrStdout(), limitFlag)
	},
}

func init() {
	historyCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func openLedger() (*sql.DB, error) {
	if cfg.LedgerPath == "" {
		return nil, fmt.Errorf("the ledger is disabled")
	}
	if _, err := os.Stat(cfg.LedgerPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no ledger at %s, run `sheetgen init` first", cfg.LedgerPath)
	}
	sqlDB, err := db.Open(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return sqlDB, nil
}

func RunHistory(w io.Writer, limit int) error {
	sqlDB, err := openLedger()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	runs, err := db.ListRuns(sqlDB, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		ui.RunLine(w, r.ID, r.Workbook, r.StartedAt, r.Files, r.Diagnostics)
	}
	return nil
}

// RunHistoryFiles lists the files of the run whose ID starts with prefix.
func RunHistoryFiles(w io.Writer, prefix string) error {
	sqlDB, err := openLedger()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	id, err := db.FindRun(sqlDB, prefix)
	if err != nil {
		return err
	}
	files, err := db.RunFiles(sqlDB, id)
	if err != nil {
		return err
	}

	ui.Heading(w, "run "+id)
	for _, f := range files {
		ui.Detail(w, 1, fmt.Sprintf("%-4s  %s", f.Kind, f.Path))
	}
	return nil
}
