// Package audit accumulates per-batch parsing diagnostics: how many rows
// were included, how many were skipped and why. Counters never feed back
// into parsing decisions; they exist for reporting only.
package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Skipped records one row that was dropped during parsing.
type Skipped struct {
	Row    int // 1-based data row index within the file
	Reason string
	Raw    string
}

// Common exclusion reason codes.
const (
	ReasonInvalidAmount     = "invalid_amount"
	ReasonInvalidDate       = "invalid_date"
	ReasonShortRow          = "short_row"
	ReasonZeroAmount        = "zero_amount"
	ReasonNotCompleted      = "not_completed"
	ReasonPending           = "pending"
	ReasonDuplicateTransfer = "duplicate_transfer"
	ReasonDuplicateStored   = "duplicate_stored"
	ReasonUnknownApp        = "unknown_app"
	ReasonNoMatch           = "no_match"
)

// Recorder accumulates counts for one batch. Not safe for concurrent use:
// keep one Recorder per batch (or per file) and Merge results sequentially
// after each file completes.
type Recorder struct {
	BatchID        string
	FilesProcessed int
	RowsIncluded   int
	RowsExcluded   int
	Reasons        map[string]int
	Skips          []Skipped
}

// NewRecorder creates an empty Recorder with a fresh batch ID.
func NewRecorder() *Recorder {
	return &Recorder{
		BatchID: uuid.NewString(),
		Reasons: make(map[string]int),
	}
}

// Include counts one row accepted into the candidate set.
func (r *Recorder) Include() {
	r.RowsIncluded++
}

// Skip counts one dropped row with its reason and raw content.
func (r *Recorder) Skip(row int, reason, raw string) {
	r.RowsExcluded++
	r.Reasons[reason]++
	r.Skips = append(r.Skips, Skipped{Row: row, Reason: reason, Raw: raw})
}

// Exclude counts a record removed after parsing (validation, dedup) where no
// file row applies.
func (r *Recorder) Exclude(reason string) {
	r.RowsExcluded++
	r.Reasons[reason]++
}

// FileDone marks one source file as fully processed.
func (r *Recorder) FileDone() {
	r.FilesProcessed++
}

// Merge folds another recorder's counts into r. The other recorder's batch
// ID is discarded.
func (r *Recorder) Merge(o *Recorder) {
	r.FilesProcessed += o.FilesProcessed
	r.RowsIncluded += o.RowsIncluded
	r.RowsExcluded += o.RowsExcluded
	for reason, n := range o.Reasons {
		r.Reasons[reason] += n
	}
	r.Skips = append(r.Skips, o.Skips...)
}

// ReasonSummary renders the reason counts as "reason=n;reason=n" in stable
// order. Empty when nothing was excluded.
func (r *Recorder) ReasonSummary() string {
	if len(r.Reasons) == 0 {
		return ""
	}
	reasons := make([]string, 0, len(r.Reasons))
	for reason := range r.Reasons {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	parts := make([]string, len(reasons))
	for i, reason := range reasons {
		parts[i] = fmt.Sprintf("%s=%d", reason, r.Reasons[reason])
	}
	return strings.Join(parts, ";")
}
