// Package validate filters categorized candidates before storage: operations
// that never completed are dropped, and the income half of artifact transfer
// pairs is removed so an interrupted transfer does not count twice.
package validate

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/extrato-dev/extrato/internal/audit"
	"github.com/extrato-dev/extrato/internal/model"
)

// notCompletedMarkers are description substrings that mark an operation as
// cancelled, reversed, failed or otherwise never settled. Checked
// case-insensitively.
var notCompletedMarkers = []string{
	"não concluída",
	"não concluida",
	"cancelada",
	"cancelado",
	"estornada",
	"estornado",
	"estorno",
	"não processada",
	"falha",
	"rejected",
	"rejeitada",
	"pendente",
}

// transferKeywords identify transfer-flavored descriptions for the artifact
// duplicate pair check.
var transferKeywords = []string{"transferência", "transferencia", "pix"}

var epsilon = decimal.RequireFromString("0.01")

// Validator removes non-completed operations and artifact duplicates from a
// candidate batch.
type Validator struct {
	logger *log.Logger
}

// New creates a Validator.
func New(logger *log.Logger) *Validator {
	return &Validator{logger: logger}
}

// Filter returns the candidates that survive validation, preserving input
// order. Removals are counted on rec; nothing is ever merged or rewritten.
func (v *Validator) Filter(in []model.Candidate, rec *audit.Recorder) []model.Candidate {
	completed := make([]model.Candidate, 0, len(in))
	for _, c := range in {
		if reason, drop := exclusionReason(c); drop {
			v.logger.Debug("dropping candidate", "description", c.Description, "reason", reason)
			rec.Exclude(reason)
			continue
		}
		completed = append(completed, c)
	}

	var out []model.Candidate
	for _, c := range completed {
		if c.Type == model.TypeIncome && isTransfer(c.Description) && hasMirrorExpense(completed, c) {
			v.logger.Debug("dropping artifact transfer", "description", c.Description, "amount", c.Amount)
			rec.Exclude(audit.ReasonDuplicateTransfer)
			continue
		}
		out = append(out, c)
	}
	return out
}

func exclusionReason(c model.Candidate) (string, bool) {
	if c.Status == model.StatusPending {
		return audit.ReasonPending, true
	}
	desc := strings.ToLower(c.Description)
	for _, marker := range notCompletedMarkers {
		if strings.Contains(desc, marker) {
			return audit.ReasonNotCompleted, true
		}
	}
	return "", false
}

func isTransfer(description string) bool {
	desc := strings.ToLower(description)
	for _, kw := range transferKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}

// hasMirrorExpense reports whether the batch holds an expense on the same day
// with a transfer-flavored description and an amount within epsilon of the
// income candidate. Coincidental same-day equal-amount transfers between
// unrelated parties will collide here; the source data carries no
// counterparty identity to tell them apart, so the income side loses.
func hasMirrorExpense(batch []model.Candidate, income model.Candidate) bool {
	for _, o := range batch {
		if o.Type != model.TypeExpense || !isTransfer(o.Description) {
			continue
		}
		if !o.Date.Equal(income.Date) {
			continue
		}
		if o.Amount.Sub(income.Amount).Abs().LessThanOrEqual(epsilon) {
			return true
		}
	}
	return false
}
