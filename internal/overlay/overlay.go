// Package overlay applies manual monthly totals corrections on top of
// computed aggregates. Corrections are a reporting-time patch for months
// whose source exports are known to be incomplete: stored records are never
// touched, and months without a correction pass through unchanged.
package overlay

import (
	"github.com/shopspring/decimal"

	"github.com/extrato-dev/extrato/internal/config"
	"github.com/extrato-dev/extrato/internal/ledger"
)

// Overlay maps "YYYY-MM" month keys to corrected totals.
type Overlay map[string]ledger.Totals

// FromConfig converts the config correction table to an Overlay.
func FromConfig(corrections map[string]config.Correction) Overlay {
	if len(corrections) == 0 {
		return nil
	}
	o := make(Overlay, len(corrections))
	for month, c := range corrections {
		o[month] = ledger.Totals{
			Income:  decimal.NewFromFloat(c.Income).Round(2),
			Expense: decimal.NewFromFloat(c.Expense).Round(2),
			Balance: decimal.NewFromFloat(c.Balance).Round(2),
		}
	}
	return o
}

// Apply returns the correction for month when one exists, otherwise the
// computed totals unchanged. The second return reports whether a correction
// was applied.
func (o Overlay) Apply(month string, computed ledger.Totals) (ledger.Totals, bool) {
	if corrected, ok := o[month]; ok {
		return corrected, true
	}
	return computed, false
}
