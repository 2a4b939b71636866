package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chriserin/sheetgen/internal/db"
	"github.com/chriserin/sheetgen/internal/generate"
	"github.com/chriserin/sheetgen/internal/ui"
	"github.com/chriserin/sheetgen/internal/watch"
)

var (
	outDirFlag   string
	watchFlag    bool
	noLedgerFlag bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <workbook>",
	Short: "Generate test and util classes from a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if !watchFlag {
			return RunGenerate(w, args[0], outDirFlag, noLedgerFlag)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return RunWatch(ctx, w, args[0], outDirFlag, noLedgerFlag)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outDirFlag, "out", "o", "", "Output directory (default from config)")
	generateCmd.Flags().BoolVar(&watchFlag, "watch", false, "Regenerate whenever the workbook changes")
	generateCmd.Flags().BoolVar(&noLedgerFlag, "no-ledger", false, "Do not record the run in the ledger")
	rootCmd.AddCommand(generateCmd)
}

// RunGenerate turns workbook into Java sources below outDir, or below the
// configured output directory when outDir is empty.
func RunGenerate(w io.Writer, workbook, outDir string, noLedger bool) error {
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	opts := cfg.GenerateOptions()
	opts.Logger = logger
	started := time.Now()

	plan, err := generate.Run(workbook, opts)
	if err != nil {
		return err
	}
	if err := plan.Write(outDir); err != nil {
		return err
	}

	for _, f := range plan.Files {
		ui.GenLine(w, filepath.Join(outDir, f.Path))
	}
	for _, d := range plan.Diagnostics {
		ui.DiagnosticLine(w, d)
	}
	ui.SummaryLine(w, len(plan.Files), plan.Warnings())

	logger.Info("generated",
		zap.String("workbook", workbook),
		zap.String("out", outDir),
		zap.Int("files", len(plan.Files)),
		zap.Int("warnings", plan.Warnings()))

	if noLedger || cfg.LedgerPath == "" {
		return nil
	}
	return recordPlan(plan, outDir, started)
}

func recordPlan(plan *generate.Plan, outDir string, started time.Time) error {
	sqlDB, err := db.Open(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer sqlDB.Close()

	run := db.Run{
		Workbook:    plan.Workbook,
		StartedAt:   started,
		Diagnostics: plan.Diagnostics,
	}
	for _, f := range plan.Files {
		run.Files = append(run.Files, db.FileRecord{
			Path:      filepath.Join(outDir, f.Path),
			ClassName: f.Class,
			Kind:      f.Kind,
		})
	}

	id, err := db.RecordRun(sqlDB, run)
	if err != nil {
		return err
	}
	logger.Debug("run recorded", zap.String("id", id))
	return nil
}

// RunWatch generates once, then again after every change to workbook,
// until ctx is cancelled. Failed runs are reported and watching goes on.
func RunWatch(ctx context.Context, w io.Writer, workbook, outDir string, noLedger bool) error {
	regenerate := func(context.Context) {
		if err := RunGenerate(w, workbook, outDir, noLedger); err != nil {
			ui.ErrorLine(w, err)
		}
	}

	watcher, err := watch.New(workbook, watch.DefaultDebounce, regenerate, logger)
	if err != nil {
		return err
	}

	regenerate(ctx)

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	select {
	case <-ctx.Done():
	case <-watcher.Done():
	}
	return nil
}
