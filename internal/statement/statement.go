// Package statement parses bank-statement and credit-card invoice CSV text
// into candidate transactions. Rows that fail to parse are skipped and
// counted, never aborting the file: a batch with two bad rows out of fifty
// still yields forty-eight candidates.
package statement

import (
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/extrato-dev/extrato/internal/audit"
	"github.com/extrato-dev/extrato/internal/categorize"
	"github.com/extrato-dev/extrato/internal/detect"
	"github.com/extrato-dev/extrato/internal/model"
	"github.com/extrato-dev/extrato/internal/money"
)

// Parser converts statement file text into candidate transactions.
type Parser struct {
	logger     *log.Logger
	classifier *categorize.Classifier
	opts       Options
}

// Options carries per-repository parsing policy.
type Options struct {
	// GenericIntegerCents selects the interpretation of bare integer
	// amounts in generic (unrecognized) files: false treats them as major
	// units, the least-surprise default.
	GenericIntegerCents bool

	// DefaultCategory and DefaultIncomeCategory label rows no
	// classification rule matches. Empty values take the built-in labels.
	DefaultCategory       string
	DefaultIncomeCategory string
}

// New creates a Parser with the given policy.
func New(logger *log.Logger, classifier *categorize.Classifier, opts Options) *Parser {
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = "Outros"
	}
	if opts.DefaultIncomeCategory == "" {
		opts.DefaultIncomeCategory = "Outros Recebimentos"
	}
	return &Parser{logger: logger, classifier: classifier, opts: opts}
}

// Date orders accepted for statement rows. Two-digit years match none of
// these and fail the row.
var dateLayouts = []string{
	"2006-1-2",   // 2025-07-15, 2025-7-5
	"02/01/2006", // 15/07/2025
	"2006/1/2",   // 2025/7/5
}

// thousandsOnly matches Brazilian thousands-grouped integers with no decimal
// part ("3.205"), which statement exports use for cent values.
var thousandsOnly = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// Parse splits content into rows and emits one candidate per parseable data
// row, in file order. Skipped rows are recorded on rec with a reason code.
func (p *Parser) Parse(content, fileName string, format detect.Format, rec *audit.Recorder) []model.Candidate {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	sep := byte(',')
	if strings.Count(lines[0], ";") > strings.Count(lines[0], ",") {
		sep = ';'
	}

	dataLines := lines
	if isHeader(splitFields(lines[0], sep)) {
		dataLines = lines[1:]
	}

	var candidates []model.Candidate
	for i, line := range dataLines {
		row := i + 1 // 1-based data row index
		c, reason := p.parseRow(splitFields(line, sep), format)
		if reason != "" {
			p.logger.Debug("skipping row", "file", fileName, "row", row, "reason", reason)
			rec.Skip(row, reason, line)
			continue
		}
		rec.Include()
		candidates = append(candidates, c)
	}

	p.logger.Debug("parsed statement", "file", fileName, "format", format, "rows", len(candidates))
	return candidates
}

// parseRow extracts one candidate from a split row. The empty reason means
// success. Two layouts are supported: date,description,amount (card
// exports) and date,amount,identifier,description (account statements).
func (p *Parser) parseRow(cols []string, format detect.Format) (model.Candidate, string) {
	var dateStr, desc, amountStr string
	switch {
	case len(cols) >= 4:
		dateStr, amountStr, desc = cols[0], cols[1], cols[3]
	case len(cols) == 3:
		dateStr, desc, amountStr = cols[0], cols[1], cols[2]
	default:
		return model.Candidate{}, audit.ReasonShortRow
	}
	if dateStr == "" || desc == "" || amountStr == "" {
		return model.Candidate{}, audit.ReasonShortRow
	}

	date, ok := parseDate(dateStr)
	if !ok {
		return model.Candidate{}, audit.ReasonInvalidDate
	}

	// Thousands-grouped integers without a decimal part ("3.205") are cent
	// values in statements; ungroup so they read as integers below.
	if format == detect.FormatBankStatement && thousandsOnly.MatchString(strings.TrimSpace(amountStr)) {
		amountStr = strings.ReplaceAll(amountStr, ".", "")
	}

	amount, err := money.Parse(amountStr)
	if err != nil {
		return model.Candidate{}, audit.ReasonInvalidAmount
	}
	if p.centsEncoded(amountStr, format) {
		amount = money.FromCents(amount)
	}
	if amount.IsZero() {
		return model.Candidate{}, audit.ReasonZeroAmount
	}

	typ := inferType(amount, desc, format)
	income := typ == model.TypeIncome

	fallback := p.opts.DefaultCategory
	if income {
		fallback = p.opts.DefaultIncomeCategory
	}

	method := categorize.PaymentMethod(desc, "Outros")
	if format == detect.FormatInvoice {
		method = "Cartão Crédito"
	}

	return model.Candidate{
		Date:            date,
		Description:     strings.TrimSpace(desc),
		Category:        p.classifier.Classify(desc, income, fallback),
		PaymentMethod:   method,
		Amount:          amount.Abs().Round(2),
		Type:            typ,
		Status:          model.StatusPaid,
		IncludeInTotals: format != detect.FormatInvoice,
	}, ""
}

// centsEncoded reports whether an amount token must be scaled from cents.
// Only separator-free integers qualify, and only in formats known to use
// minor units; tokens that carry a decimal part are major units everywhere.
func (p *Parser) centsEncoded(token string, format detect.Format) bool {
	switch format {
	case detect.FormatBankStatement:
		return money.IsIntegerToken(token)
	case detect.FormatGenericCSV:
		return p.opts.GenericIntegerCents && money.IsIntegerToken(token)
	default:
		return false
	}
}

// inferType derives direction from the amount sign. Invoice rows invert the
// convention: positive means a charge (expense), and negatives or estorno
// (reversal) rows are credits back to the card.
func inferType(amount decimal.Decimal, desc string, format detect.Format) model.Type {
	if format == detect.FormatInvoice {
		if amount.IsNegative() || strings.Contains(strings.ToLower(desc), "estorno") {
			return model.TypeIncome
		}
		return model.TypeExpense
	}
	if amount.IsNegative() {
		return model.TypeExpense
	}
	return model.TypeIncome
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func isHeader(cols []string) bool {
	if len(cols) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(cols[0])) {
	case "data", "date", "titulo", "title":
		return true
	}
	return false
}

// splitFields splits a CSV line on sep, respecting double quotes (including
// "" escapes). encoding/csv is not used here: rows must fail independently,
// and real exports mix delimiters and carry stray quotes that would abort a
// whole-file reader.
func splitFields(line string, sep byte) []string {
	line = strings.TrimSuffix(line, "\r")

	var out []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == sep && !inQuotes:
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	out = append(out, strings.TrimSpace(cur.String()))
	return out
}
