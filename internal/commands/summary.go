package commands

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/extrato-dev/extrato/internal/config"
	"github.com/extrato-dev/extrato/internal/ledger"
	"github.com/extrato-dev/extrato/internal/overlay"
)

func newSummaryCommand(logger *log.Logger) *cobra.Command {
	var repo, month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show monthly income, expense and balance totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(logger, repo, month)
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "C", ".", "ledger repository root")
	cmd.Flags().StringVar(&month, "month", "", "single month to report (YYYY-MM)")

	return cmd
}

func runSummary(logger *log.Logger, repo, month string) error {
	cfg, err := config.Load(filepath.Join(repo, "extrato.yaml"))
	if err != nil {
		return fmt.Errorf("not a ledger repository (run 'extrato init' first): %w", err)
	}
	corrections := overlay.FromConfig(cfg.Corrections)

	store := ledger.NewService(repo, logger)

	months := []string{month}
	if month == "" {
		months, err = store.Months()
		if err != nil {
			return err
		}
	}
	if len(months) == 0 {
		fmt.Println("No transactions recorded yet")
		return nil
	}

	for _, m := range months {
		date, err := time.Parse("2006-01", m)
		if err != nil {
			return fmt.Errorf("invalid month %q (want YYYY-MM)", m)
		}

		records, err := store.ReadMonth(date.Year(), int(date.Month()))
		if err != nil {
			return err
		}

		totals, corrected := corrections.Apply(m, ledger.ComputeTotals(records))
		note := ""
		if corrected {
			note = "  (corrected)"
		}
		fmt.Printf("%s  income %10s  expense %10s  balance %10s%s\n",
			m, totals.Income.StringFixed(2), totals.Expense.StringFixed(2), totals.Balance.StringFixed(2), note)

		// Per-category breakdown only in single-month view.
		if month != "" {
			byCategory := ledger.CategoryTotals(records)
			categories := make([]string, 0, len(byCategory))
			for c := range byCategory {
				categories = append(categories, c)
			}
			sort.Strings(categories)
			for _, c := range categories {
				fmt.Printf("  %-20s %10s\n", c, byCategory[c].StringFixed(2))
			}
		}
	}
	return nil
}
