// Package notify converts push-notification text from Brazilian banking apps
// into candidate transactions. Matching is template-driven: each institution
// carries an ordered list of regular expressions, and the first hit against
// the combined title+body wins.
package notify

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/extrato-dev/extrato/internal/categorize"
	"github.com/extrato-dev/extrato/internal/model"
	"github.com/extrato-dev/extrato/internal/money"
)

// Notification is the raw payload captured from the device.
type Notification struct {
	Title       string
	Body        string
	PackageName string
	Timestamp   time.Time
}

// Kind names the shape of banking event a template recognizes.
type Kind string

const (
	KindPurchase    Kind = "purchase"
	KindPixSent     Kind = "pix_sent"
	KindPixReceived Kind = "pix_received"
	KindTransfer    Kind = "transfer"
	KindWithdrawal  Kind = "withdrawal"
	KindDeposit     Kind = "deposit"
)

// Template pairs a Kind with the pattern that recognizes it. Capture group 1
// is the amount; group 2, when present, is the counterparty or merchant.
type Template struct {
	Kind    Kind
	Pattern *regexp.Regexp
}

// Institution is one supported banking app: its display name, the Android
// package substrings that identify it, and its notification templates in
// match order.
type Institution struct {
	Name      string
	Packages  []string
	Templates []Template
}

// Registry maps app packages to institutions.
type Registry struct {
	institutions []Institution
}

// Lookup finds the institution whose package list matches pkg by substring.
func (r *Registry) Lookup(pkg string) (Institution, bool) {
	for _, inst := range r.institutions {
		for _, p := range inst.Packages {
			if strings.Contains(pkg, p) {
				return inst, true
			}
		}
	}
	return Institution{}, false
}

var (
	// ErrUnknownApp means the notification came from an app no institution
	// claims. Such notifications are ignored, never guessed at.
	ErrUnknownApp = errors.New("unrecognized app package")

	// ErrNoMatch means the app is known but no template recognized the text.
	ErrNoMatch = errors.New("no notification template matched")

	// ErrZeroAmount means a template matched but the amount was zero.
	ErrZeroAmount = errors.New("notification amount is zero")
)

// Parser turns notifications into candidate transactions.
type Parser struct {
	logger          *log.Logger
	classifier      *categorize.Classifier
	registry        *Registry
	defaultCategory string
	defaultIncome   string
}

// NewParser creates a Parser over the default institution registry. The two
// default categories label candidates no classification rule matches; empty
// values take the built-in labels.
func NewParser(logger *log.Logger, classifier *categorize.Classifier, defaultCategory, defaultIncomeCategory string) *Parser {
	if defaultCategory == "" {
		defaultCategory = "Outros"
	}
	if defaultIncomeCategory == "" {
		defaultIncomeCategory = "Outros Recebimentos"
	}
	return &Parser{
		logger:          logger,
		classifier:      classifier,
		registry:        DefaultRegistry(),
		defaultCategory: defaultCategory,
		defaultIncome:   defaultIncomeCategory,
	}
}

// Parse matches n against the owning institution's templates and builds a
// candidate. Notification amounts are always major units; no cent scaling
// applies here.
func (p *Parser) Parse(n Notification) (model.Candidate, error) {
	inst, ok := p.registry.Lookup(n.PackageName)
	if !ok {
		return model.Candidate{}, fmt.Errorf("package %q: %w", n.PackageName, ErrUnknownApp)
	}

	text := strings.TrimSpace(strings.TrimSpace(n.Title) + " " + strings.TrimSpace(n.Body))
	for _, tpl := range inst.Templates {
		m := tpl.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		amount, err := money.Parse(m[1])
		if err != nil {
			return model.Candidate{}, fmt.Errorf("notification amount: %w", err)
		}
		if amount.IsZero() {
			return model.Candidate{}, ErrZeroAmount
		}

		counterparty := ""
		if len(m) > 2 {
			counterparty = strings.TrimSpace(m[2])
		}
		desc, typ := describe(tpl.Kind, counterparty)
		income := typ == model.TypeIncome

		fallback := p.defaultCategory
		if income {
			fallback = p.defaultIncome
		}

		p.logger.Debug("matched notification", "institution", inst.Name, "kind", tpl.Kind, "amount", amount)
		return model.Candidate{
			Date:            dateOf(n.Timestamp),
			Description:     desc,
			Category:        p.classifier.Classify(desc, income, fallback),
			PaymentMethod:   categorize.PaymentMethod(text, inst.Name),
			Amount:          amount.Abs().Round(2),
			Type:            typ,
			Status:          model.StatusPaid,
			IncludeInTotals: true,
		}, nil
	}

	return model.Candidate{}, fmt.Errorf("institution %s: %w", inst.Name, ErrNoMatch)
}

// describe renders the transaction description and direction for a matched
// kind. Counterparty names fall back to a generic label when the template
// did not capture one.
func describe(kind Kind, counterparty string) (string, model.Type) {
	switch kind {
	case KindPurchase:
		if counterparty == "" {
			counterparty = "Compra"
		}
		return counterparty, model.TypeExpense
	case KindPixSent:
		if counterparty == "" {
			counterparty = "Destinatário"
		}
		return "PIX para " + counterparty, model.TypeExpense
	case KindPixReceived:
		if counterparty == "" {
			counterparty = "Remetente"
		}
		return "PIX de " + counterparty, model.TypeIncome
	case KindTransfer:
		return "Transferência", model.TypeExpense
	case KindWithdrawal:
		return "Saque", model.TypeExpense
	case KindDeposit:
		return "Depósito", model.TypeIncome
	default:
		return "Movimentação", model.TypeExpense
	}
}

func dateOf(ts time.Time) time.Time {
	if ts.IsZero() {
		ts = time.Now()
	}
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}
