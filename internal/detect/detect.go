// Package detect classifies an uploaded file into one of the supported
// statement formats before parsing. Filename conventions are checked first;
// the header line is the fallback.
package detect

import (
	"path/filepath"
	"strings"
)

// Format identifies how a file's rows and amounts must be interpreted.
type Format string

const (
	// FormatBankStatement is an account statement export (NU_*.csv).
	// Bare integer amount tokens are in cents.
	FormatBankStatement Format = "bank_statement"
	// FormatInvoice is a credit-card invoice export (Nubank_*.csv, or
	// "fatura"/"cartao"/"invoice" in the name). Amounts are major units and
	// rows are excluded from aggregate totals.
	FormatInvoice Format = "invoice"
	// FormatGenericCSV is the fallback for unrecognized files. Amounts are
	// treated as major units unless configured otherwise.
	FormatGenericCSV Format = "generic_csv"
)

// Result is a classification plus whether it was a confident match.
// Confident=false means the generic fallback was applied and the caller
// should surface a warning rather than trust the interpretation silently.
type Result struct {
	Format    Format
	Confident bool
}

// Detect classifies a file from its name and first content line. An
// unrecognized shape falls back to generic CSV.
func Detect(fileName, header string) Result {
	name := filepath.Base(fileName)
	lower := strings.ToLower(name)

	// Filename conventions win over header shape.
	if strings.Contains(name, "NU_") {
		return Result{Format: FormatBankStatement, Confident: true}
	}
	if strings.HasPrefix(lower, "nubank_") ||
		strings.Contains(lower, "fatura") ||
		strings.Contains(lower, "cartao") ||
		strings.Contains(lower, "invoice") {
		return Result{Format: FormatInvoice, Confident: true}
	}

	return detectFromHeader(header)
}

func detectFromHeader(header string) Result {
	cols := SplitHeader(header)
	switch {
	case len(cols) >= 4 && headerMatches(cols, "data", "valor", "identificador", "descrição"):
		// Account statement layout: date, amount, id, description.
		return Result{Format: FormatBankStatement, Confident: true}
	case len(cols) == 3 && headerMatches(cols, "date", "title", "amount"):
		// Card export layout: positive amounts are charges and rows stay
		// out of statement totals.
		return Result{Format: FormatInvoice, Confident: true}
	case len(cols) == 3 && headerMatches(cols, "data", "descrição", "valor"):
		// Three generic columns don't pin down a bank; parse as generic
		// and let the caller warn.
		return Result{Format: FormatGenericCSV, Confident: false}
	default:
		return Result{Format: FormatGenericCSV, Confident: false}
	}
}

// SplitHeader splits a header line on the detected delimiter and lowercases
// each cell. Both "," and ";" exports occur in the wild.
func SplitHeader(header string) []string {
	header = strings.TrimPrefix(strings.TrimSpace(header), "\ufeff")
	if header == "" {
		return nil
	}
	sep := ","
	if strings.Count(header, ";") > strings.Count(header, ",") {
		sep = ";"
	}
	parts := strings.Split(header, sep)
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(p), `"`)))
	}
	return parts
}

func headerMatches(cols []string, want ...string) bool {
	if len(cols) < len(want) {
		return false
	}
	for i, w := range want {
		if cols[i] != w {
			return false
		}
	}
	return true
}
