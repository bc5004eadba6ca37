package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/extrato-dev/extrato/internal/audit"
	"github.com/extrato-dev/extrato/internal/categorize"
	"github.com/extrato-dev/extrato/internal/config"
	"github.com/extrato-dev/extrato/internal/gitops"
	"github.com/extrato-dev/extrato/internal/ledger"
	"github.com/extrato-dev/extrato/internal/model"
	"github.com/extrato-dev/extrato/internal/notify"
	"github.com/extrato-dev/extrato/internal/validate"
)

func newNotifyCommand(logger *log.Logger) *cobra.Command {
	var repo, app, title, body string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Record a banking app notification as a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotify(logger, repo, notify.Notification{
				Title:       title,
				Body:        body,
				PackageName: app,
				Timestamp:   time.Now(),
			})
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "C", ".", "ledger repository root")
	cmd.Flags().StringVar(&app, "app", "", "source app package name (required)")
	cmd.Flags().StringVar(&title, "title", "", "notification title")
	cmd.Flags().StringVar(&body, "body", "", "notification body (required)")
	_ = cmd.MarkFlagRequired("app")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}

func runNotify(logger *log.Logger, repo string, n notify.Notification) error {
	cfg, err := config.Load(filepath.Join(repo, "extrato.yaml"))
	if err != nil {
		return fmt.Errorf("not a ledger repository (run 'extrato init' first): %w", err)
	}

	rec := audit.NewRecorder()
	parser := notify.NewParser(logger, categorize.Default(),
		cfg.Import.DefaultCategory, cfg.Import.DefaultIncomeCategory)

	candidate, err := parser.Parse(n)
	switch {
	case errors.Is(err, notify.ErrUnknownApp):
		// Foreign notifications are ignored, never an error.
		rec.Exclude(audit.ReasonUnknownApp)
		return finishNotify(logger, repo, cfg, rec, n, nil)
	case errors.Is(err, notify.ErrNoMatch):
		rec.Exclude(audit.ReasonNoMatch)
		return finishNotify(logger, repo, cfg, rec, n, nil)
	case errors.Is(err, notify.ErrZeroAmount):
		rec.Exclude(audit.ReasonZeroAmount)
		return finishNotify(logger, repo, cfg, rec, n, nil)
	case err != nil:
		return err
	}

	valid := validate.New(logger).Filter([]model.Candidate{candidate}, rec)

	store := ledger.NewService(repo, logger)
	stored, err := store.Append(valid, rec)
	if err != nil {
		return fmt.Errorf("storing notification transaction: %w", err)
	}

	return finishNotify(logger, repo, cfg, rec, n, stored)
}

func finishNotify(logger *log.Logger, repo string, cfg *config.Config, rec *audit.Recorder, n notify.Notification, stored []model.Transaction) error {
	rec.FileDone()

	entry := audit.Entry{
		Timestamp:    time.Now().UTC(),
		BatchID:      rec.BatchID,
		File:         "notification:" + n.PackageName,
		RowsIncluded: len(stored),
		RowsExcluded: rec.RowsExcluded,
		Reasons:      rec.ReasonSummary(),
	}
	if err := audit.Append(repo, []audit.Entry{entry}); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	if len(stored) == 0 {
		fmt.Printf("Notification ignored (%s)\n", rec.ReasonSummary())
		return nil
	}

	if cfg.Git.AutoCommit && gitops.IsRepo(repo) {
		tx := stored[0]
		msg := fmt.Sprintf("notify: %s %s (%s)", tx.ID, tx.Description, tx.Amount.StringFixed(2))
		hash, err := gitops.CommitAll(repo, msg, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			logger.Warn("auto-commit failed", "err", err)
		} else {
			logger.Debug("committed", "hash", hash)
		}
	}

	tx := stored[0]
	fmt.Printf("Recorded %s: %s %s (%s, %s)\n",
		tx.ID, tx.Description, tx.Amount.StringFixed(2), tx.Type, tx.Category)
	return nil
}
