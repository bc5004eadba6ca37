// Package money parses monetary amount tokens as they appear in Brazilian
// bank exports: either comma-decimal ("3.205,56") or plain dot-decimal
// ("3205.56"). It only converts separator conventions; deciding whether an
// integer token means cents is the caller's job, because that depends on the
// file format, not the token.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError reports a malformed token in a single field. Row-level and
// recoverable: callers skip the row and keep going.
type ParseError struct {
	Field string
	Raw   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s %q: not a valid amount", e.Field, e.Raw)
}

// Parse converts an amount token to a decimal value. A comma anywhere in the
// token selects the Brazilian convention (periods are thousands separators);
// otherwise the token is read as a plain decimal. An optional "R$" prefix
// and surrounding whitespace are ignored.
func Parse(token string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "R$"))
	if cleaned == "" {
		return decimal.Zero, &ParseError{Field: "amount", Raw: token}
	}

	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &ParseError{Field: "amount", Raw: token}
	}
	return d, nil
}

// IsIntegerToken reports whether token is a bare signed integer with no
// decimal or thousands separator, e.g. "320556" or "-294740". Statement
// files express such tokens in cents.
func IsIntegerToken(token string) bool {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "R$"))
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FromCents converts a cent-denominated value to major units.
func FromCents(d decimal.Decimal) decimal.Decimal {
	return d.Div(decimal.NewFromInt(100))
}
