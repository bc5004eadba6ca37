package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/extrato-dev/extrato/internal/model"
)

// Totals is the monthly aggregate: income, expense and their difference.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// ComputeTotals sums the records that participate in aggregation. Records
// flagged IncludeInTotals=false (card invoice rows) are stored history only
// and never counted here.
func ComputeTotals(records []Record) Totals {
	var income, expense decimal.Decimal
	for _, r := range records {
		if !r.IncludeInTotals {
			continue
		}
		switch r.Tx.Type {
		case model.TypeIncome:
			income = income.Add(r.Tx.Amount)
		case model.TypeExpense:
			expense = expense.Add(r.Tx.Amount)
		}
	}
	return Totals{
		Income:  income.Round(2),
		Expense: expense.Round(2),
		Balance: income.Sub(expense).Round(2),
	}
}

// CategoryTotals sums expense amounts per category over the records that
// participate in aggregation.
func CategoryTotals(records []Record) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range records {
		if !r.IncludeInTotals || r.Tx.Type != model.TypeExpense {
			continue
		}
		out[r.Tx.Category] = out[r.Tx.Category].Add(r.Tx.Amount)
	}
	return out
}
