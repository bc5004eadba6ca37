package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_StatementPrefix(t *testing.T) {
	r := Detect("NU_89123456_01JAN2025_31JAN2025.csv", "")
	assert.Equal(t, FormatBankStatement, r.Format)
	assert.True(t, r.Confident)
}

func TestDetect_InvoicePrefix(t *testing.T) {
	r := Detect("Nubank_2025-07-15.csv", "date,title,amount")
	assert.Equal(t, FormatInvoice, r.Format)
	assert.True(t, r.Confident)
}

func TestDetect_InvoiceKeywords(t *testing.T) {
	for _, name := range []string{"fatura_julho.csv", "cartao-credito.csv", "invoice_07.csv"} {
		r := Detect(name, "")
		assert.Equal(t, FormatInvoice, r.Format, "file %s", name)
		assert.True(t, r.Confident)
	}
}

func TestDetect_PathIgnored(t *testing.T) {
	// Directory names must not leak into classification.
	r := Detect("/tmp/faturas-dir/NU_123.csv", "")
	assert.Equal(t, FormatBankStatement, r.Format)
}

func TestDetect_HeaderFallbackStatement(t *testing.T) {
	r := Detect("export.csv", "Data,Valor,Identificador,Descrição")
	assert.Equal(t, FormatBankStatement, r.Format)
	assert.True(t, r.Confident)
}

func TestDetect_HeaderFallbackCardExport(t *testing.T) {
	// A date,title,amount header is the card export layout even when the
	// filename gives nothing away; classifying it generic would read its
	// positive charges as income.
	r := Detect("export.csv", "date,title,amount")
	assert.Equal(t, FormatInvoice, r.Format)
	assert.True(t, r.Confident)
}

func TestDetect_HeaderFallbackPortugueseThreeColumn(t *testing.T) {
	r := Detect("export.csv", "data,descrição,valor")
	assert.Equal(t, FormatGenericCSV, r.Format)
	assert.False(t, r.Confident)
}

func TestDetect_UnrecognizedFallsBack(t *testing.T) {
	r := Detect("statement.csv", "foo;bar")
	assert.Equal(t, FormatGenericCSV, r.Format)
	assert.False(t, r.Confident)
}

func TestSplitHeader_Semicolons(t *testing.T) {
	cols := SplitHeader("Data;Valor;Identificador;Descrição")
	assert.Equal(t, []string{"data", "valor", "identificador", "descrição"}, cols)
}

func TestSplitHeader_BOMAndQuotes(t *testing.T) {
	cols := SplitHeader("\ufeff\"date\",\"title\",\"amount\"")
	assert.Equal(t, []string{"date", "title", "amount"}, cols)
}
