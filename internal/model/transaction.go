package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type is the direction of a transaction. Amounts are always non-negative;
// direction lives here, never in the sign of the amount.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Status is the settlement state of a transaction.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// Transaction is one normalized ledger record. Immutable once produced;
// corrections go through the pipeline again as replacement records.
type Transaction struct {
	ID            string
	Date          time.Time // calendar date, time component always zero
	Description   string
	Category      string
	PaymentMethod string
	Amount        decimal.Decimal // >= 0, at most 2 decimal places
	Type          Type
	Status        Status
}

// Candidate is an unpersisted transaction produced by a parser, before
// validation. IncludeInTotals marks rows kept for history but excluded from
// aggregate totals (credit-card invoice rows, which would otherwise
// double-count against the statement's invoice payment).
type Candidate struct {
	Date            time.Time
	Description     string
	Category        string
	PaymentMethod   string
	Amount          decimal.Decimal
	Type            Type
	Status          Status
	IncludeInTotals bool
}

// Transaction converts a validated candidate into a Transaction with the
// given store-assigned ID.
func (c Candidate) Transaction(id string) Transaction {
	return Transaction{
		ID:            id,
		Date:          c.Date,
		Description:   c.Description,
		Category:      c.Category,
		PaymentMethod: c.PaymentMethod,
		Amount:        c.Amount,
		Type:          c.Type,
		Status:        c.Status,
	}
}

// DateString returns the date in ISO 8601 form (YYYY-MM-DD).
func (t Transaction) DateString() string {
	return t.Date.Format("2006-01-02")
}
