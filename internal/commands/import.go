package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/extrato-dev/extrato/internal/audit"
	"github.com/extrato-dev/extrato/internal/categorize"
	"github.com/extrato-dev/extrato/internal/config"
	"github.com/extrato-dev/extrato/internal/detect"
	"github.com/extrato-dev/extrato/internal/gitops"
	"github.com/extrato-dev/extrato/internal/ledger"
	"github.com/extrato-dev/extrato/internal/statement"
	"github.com/extrato-dev/extrato/internal/validate"
)

func newImportCommand(logger *log.Logger) *cobra.Command {
	var repo string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import statement CSV files into the ledger",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(logger, repo, args)
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "C", ".", "ledger repository root")

	return cmd
}

func runImport(logger *log.Logger, repo string, files []string) error {
	cfg, err := config.Load(filepath.Join(repo, "extrato.yaml"))
	if err != nil {
		return fmt.Errorf("not a ledger repository (run 'extrato init' first): %w", err)
	}

	parser := statement.New(logger, categorize.Default(), statement.Options{
		GenericIntegerCents:   cfg.Import.GenericIntegerCents,
		DefaultCategory:       cfg.Import.DefaultCategory,
		DefaultIncomeCategory: cfg.Import.DefaultIncomeCategory,
	})
	validator := validate.New(logger)
	store := ledger.NewService(repo, logger)

	batch := audit.NewRecorder()
	var entries []audit.Entry
	storedTotal := 0

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}

		res := detect.Detect(file, firstLine(string(content)))
		if !res.Confident {
			logger.Warn("unrecognized file shape, treating amounts as major units", "file", file)
		}

		fileRec := audit.NewRecorder()
		candidates := parser.Parse(string(content), filepath.Base(file), res.Format, fileRec)
		valid := validator.Filter(candidates, fileRec)

		stored, err := store.Append(valid, fileRec)
		if err != nil {
			return fmt.Errorf("storing %s: %w", file, err)
		}
		fileRec.FileDone()

		logger.Info("imported file",
			"file", filepath.Base(file),
			"format", res.Format,
			"stored", len(stored),
			"excluded", fileRec.RowsExcluded)

		entries = append(entries, audit.Entry{
			Timestamp:    time.Now().UTC(),
			BatchID:      batch.BatchID,
			File:         filepath.Base(file),
			RowsIncluded: len(stored),
			RowsExcluded: fileRec.RowsExcluded,
			Reasons:      fileRec.ReasonSummary(),
		})
		batch.Merge(fileRec)
		storedTotal += len(stored)

		moved, err := archiveImported(repo, file)
		if err != nil {
			logger.Warn("could not archive imported file", "file", file, "err", err)
		} else if moved {
			logger.Debug("archived file", "file", filepath.Base(file))
		}
	}

	if err := audit.Append(repo, entries); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	if cfg.Git.AutoCommit && gitops.IsRepo(repo) {
		msg := fmt.Sprintf("import: %d transactions from %d file(s)", storedTotal, len(files))
		hash, err := gitops.CommitAll(repo, msg, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			logger.Warn("auto-commit failed", "err", err)
		} else {
			logger.Debug("committed", "hash", hash)
		}
	}

	fmt.Printf("Imported %d transactions from %d file(s), %d rows excluded\n",
		storedTotal, batch.FilesProcessed, batch.RowsExcluded)
	if summary := batch.ReasonSummary(); summary != "" {
		fmt.Printf("Exclusions: %s\n", summary)
	}
	return nil
}

func firstLine(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	return line
}

// archiveImported moves a consumed export from the repo's import/ staging
// directory into import/processed/, so re-importing the staging directory
// never picks it up again. Files outside import/ are left where they are:
// the user may be importing straight out of a download folder.
func archiveImported(repo, file string) (bool, error) {
	absFile, err := filepath.Abs(file)
	if err != nil {
		return false, err
	}
	stage, err := filepath.Abs(filepath.Join(repo, "import"))
	if err != nil {
		return false, err
	}
	if filepath.Dir(absFile) != stage {
		return false, nil
	}

	dest := filepath.Join(stage, "processed", filepath.Base(absFile))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, err
	}
	if err := os.Rename(absFile, dest); err != nil {
		return false, err
	}
	return true, nil
}
