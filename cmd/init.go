package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chriserin/sheetgen/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default sheetgen.yaml and prepare the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	// config file
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(w, "%s already exists\n", configPath)
	} else {
		if err := cfg.Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s created\n", configPath)
	}

	// output directory
	_, err := os.Stat(cfg.OutputDir)
	outExists := err == nil
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", cfg.OutputDir, err)
	}
	if outExists {
		fmt.Fprintf(w, "%s/ already exists\n", cfg.OutputDir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", cfg.OutputDir)
	}

	if cfg.LedgerPath == "" {
		return nil
	}

	// ledger
	_, err = os.Stat(cfg.LedgerPath)
	ledgerExists := err == nil
	sqlDB, err := db.Open(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	sqlDB.Close()
	if ledgerExists {
		fmt.Fprintf(w, "%s already exists\n", cfg.LedgerPath)
	} else {
		fmt.Fprintf(w, "%s created\n", cfg.LedgerPath)
	}

	// gitignore
	msgs, err := ensureGitignore(cfg.LedgerPath)
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
