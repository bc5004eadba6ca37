// Package categorize maps transaction descriptions to spending categories
// and payment methods using ordered keyword rules. First match wins, so rule
// order is significant: specific institution names come before generic terms.
package categorize

import "strings"

// Rule maps a set of description keywords to a category. A rule matches when
// any keyword is a case-insensitive substring of the description.
type Rule struct {
	Keywords []string
	Category string
}

// Classifier resolves categories for transaction descriptions. Expense and
// income descriptions use separate rule tables because the same keyword
// ("pix") means different things in each direction.
type Classifier struct {
	expense []Rule
	income  []Rule
}

// New creates a Classifier from ordered rule tables.
func New(expense, income []Rule) *Classifier {
	return &Classifier{expense: expense, income: income}
}

// Default returns a Classifier with the built-in rule tables.
func Default() *Classifier {
	return New(DefaultExpenseRules(), DefaultIncomeRules())
}

// Classify returns the category for a description, or fallback when no rule
// matches. Deterministic and side-effect free.
func (c *Classifier) Classify(description string, income bool, fallback string) string {
	rules := c.expense
	if income {
		rules = c.income
	}

	desc := strings.ToLower(description)
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(desc, kw) {
				return r.Category
			}
		}
	}
	return fallback
}

// DefaultExpenseRules is the built-in expense rule table. Education
// institution names precede generic transport/food keywords so that e.g. a
// university payment is never swallowed by a broader rule.
func DefaultExpenseRules() []Rule {
	return []Rule{
		{Keywords: []string{"puc", "faculdade", "universidade", "pontificia", "catolica", "sociedade mineira de cultura"}, Category: "Educação"},
		{Keywords: []string{"uber", "trip", "posto", "gasolina", "combustível"}, Category: "Transporte"},
		{Keywords: []string{"farmácia", "farmacia", "drogaria", "wellhub", "academia", "gym"}, Category: "Saúde"},
		{Keywords: []string{"vivo", "recvivo", "celular"}, Category: "Telecomunicações"},
		{Keywords: []string{"rdb", "investimento"}, Category: "Investimentos"},
		{Keywords: []string{"supermercado", "mercado", "padaria", "restaurante", "lanchonete", "pizza", "café", "cafe", "lanche", "pastel"}, Category: "Alimentação"},
		{Keywords: []string{"netflix", "spotify", "cinema", "google", "chatgpt"}, Category: "Entretenimento"},
		{Keywords: []string{"shopping", "loja", "magazine", "aliexpress", "amazon", "compra"}, Category: "Compras"},
		{Keywords: []string{"saque"}, Category: "Saque"},
		{Keywords: []string{"boleto", "pagamento", "fatura"}, Category: "Pagamentos"},
		{Keywords: []string{"pix", "transferência", "transferencia", "ted", "doc"}, Category: "Transferência"},
	}
}

// DefaultIncomeRules is the built-in income rule table.
func DefaultIncomeRules() []Rule {
	return []Rule{
		{Keywords: []string{"pix", "transferência", "transferencia"}, Category: "Transferência Recebida"},
		{Keywords: []string{"salário", "salario"}, Category: "Salário"},
		{Keywords: []string{"depósito", "deposito"}, Category: "Depósito"},
		{Keywords: []string{"estorno", "pagamento recebido"}, Category: "Transferência Recebida"},
	}
}

// paymentRules map description keywords to settlement channels, checked in
// order.
var paymentRules = []Rule{
	{Keywords: []string{"pix"}, Category: "PIX"},
	{Keywords: []string{"débito", "debito"}, Category: "Cartão Débito"},
	{Keywords: []string{"crédito", "credito"}, Category: "Cartão Crédito"},
	{Keywords: []string{"ted", "doc"}, Category: "TED/DOC"},
	{Keywords: []string{"saque"}, Category: "Saque"},
	{Keywords: []string{"depósito", "deposito"}, Category: "Depósito"},
	{Keywords: []string{"boleto"}, Category: "Boleto"},
	{Keywords: []string{"transferência", "transferencia"}, Category: "Transferência"},
}

// PaymentMethod infers the settlement channel from a description, falling
// back to the given name (typically the source institution) when no keyword
// matches.
func PaymentMethod(description, fallback string) string {
	desc := strings.ToLower(description)
	for _, r := range paymentRules {
		for _, kw := range r.Keywords {
			if strings.Contains(desc, kw) {
				return r.Category
			}
		}
	}
	return fallback
}
