package statement

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extrato-dev/extrato/internal/audit"
	"github.com/extrato-dev/extrato/internal/categorize"
	"github.com/extrato-dev/extrato/internal/detect"
	"github.com/extrato-dev/extrato/internal/model"
)

func newParser(t *testing.T) *Parser {
	t.Helper()
	return New(log.New(io.Discard), categorize.Default(), Options{})
}

func TestParse_BankStatement(t *testing.T) {
	content := "Data,Valor,Identificador,Descrição\n" +
		"15/07/2025,320556,abc-123,Transferência enviada pelo Pix - João Silva\n" +
		"16/07/2025,\"1.250,00\",def-456,Crédito salário empresa\n"

	rec := audit.NewRecorder()
	got := newParser(t).Parse(content, "NU_12345.csv", detect.FormatBankStatement, rec)
	require.Len(t, got, 2)
	assert.Equal(t, 2, rec.RowsIncluded)
	assert.Equal(t, 0, rec.RowsExcluded)

	// Bare integer amounts in statements are cents.
	assert.Equal(t, "3205.56", got[0].Amount.String())
	assert.Equal(t, model.TypeIncome, got[0].Type)
	assert.Equal(t, "Transferência enviada pelo Pix - João Silva", got[0].Description)
	assert.Equal(t, "PIX", got[0].PaymentMethod)
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), got[0].Date)
	assert.True(t, got[0].IncludeInTotals)

	// Formatted amounts are already major units.
	assert.Equal(t, "1250", got[1].Amount.String())
	assert.Equal(t, "Salário", got[1].Category)
}

func TestParse_BankStatementNegative(t *testing.T) {
	content := "15/07/2025,\"-150,00\",id-1,Compra no débito Supermercado Central\n"

	rec := audit.NewRecorder()
	got := newParser(t).Parse(content, "NU_1.csv", detect.FormatBankStatement, rec)
	require.Len(t, got, 1)

	assert.Equal(t, model.TypeExpense, got[0].Type)
	assert.Equal(t, "150", got[0].Amount.String())
	assert.Equal(t, "Alimentação", got[0].Category)
	assert.Equal(t, "Cartão Débito", got[0].PaymentMethod)
}

func TestParse_ThousandsGroupedCents(t *testing.T) {
	// "3.205" has grouping but no decimal part: still a cent value.
	content := "15/07/2025,3.205,id-1,Pix recebido\n"

	got := newParser(t).Parse(content, "NU_1.csv", detect.FormatBankStatement, audit.NewRecorder())
	require.Len(t, got, 1)
	assert.Equal(t, "32.05", got[0].Amount.String())
}

func TestParse_Invoice(t *testing.T) {
	content := "date,title,amount\n" +
		"2025-07-15,NETFLIX.COM,44.90\n" +
		"2025-07-20,Estorno de compra,-44.90\n"

	rec := audit.NewRecorder()
	got := newParser(t).Parse(content, "Nubank_2025-07.csv", detect.FormatInvoice, rec)
	require.Len(t, got, 2)

	// Positive invoice rows are charges.
	assert.Equal(t, model.TypeExpense, got[0].Type)
	assert.Equal(t, "44.9", got[0].Amount.String())
	assert.Equal(t, "Cartão Crédito", got[0].PaymentMethod)
	assert.Equal(t, "Entretenimento", got[0].Category)
	assert.False(t, got[0].IncludeInTotals, "card rows must not double-count against the statement")

	// Reversals flow back as income.
	assert.Equal(t, model.TypeIncome, got[1].Type)
	assert.Equal(t, "44.9", got[1].Amount.String())
}

func TestParse_SkipsBadRowsAndContinues(t *testing.T) {
	content := "Data,Valor,Identificador,Descrição\n" +
		"15/07/2025,\"100,00\",a,Pix recebido um\n" +
		"16/07/2025,\"200,00\",b,Pix recebido dois\n" +
		"17/07/2025,NOTANUMBER,c,Linha quebrada\n" +
		"18/07/2025,\"400,00\",d,Pix recebido quatro\n" +
		"19/07/2025,\"500,00\",e,Pix recebido cinco\n"

	rec := audit.NewRecorder()
	got := newParser(t).Parse(content, "NU_1.csv", detect.FormatBankStatement, rec)

	require.Len(t, got, 4)
	assert.Equal(t, 4, rec.RowsIncluded)
	assert.Equal(t, 1, rec.RowsExcluded)
	require.Len(t, rec.Skips, 1)
	assert.Equal(t, 3, rec.Skips[0].Row)
	assert.Equal(t, audit.ReasonInvalidAmount, rec.Skips[0].Reason)
}

func TestParse_SkipReasons(t *testing.T) {
	content := "15/07/25,\"10,00\",a,Ano de dois dígitos\n" + // invalid_date
		"15/07/2025,0,b,Valor zero\n" + // zero_amount
		"15/07/2025\n" // short_row

	rec := audit.NewRecorder()
	got := newParser(t).Parse(content, "NU_1.csv", detect.FormatBankStatement, rec)

	assert.Empty(t, got)
	assert.Equal(t, 1, rec.Reasons[audit.ReasonInvalidDate])
	assert.Equal(t, 1, rec.Reasons[audit.ReasonZeroAmount])
	assert.Equal(t, 1, rec.Reasons[audit.ReasonShortRow])
}

func TestParse_SemicolonDelimiter(t *testing.T) {
	content := "Data;Valor;Identificador;Descrição\n" +
		"15/07/2025;\"1.500,75\";x;Transferência recebida pelo Pix\n"

	got := newParser(t).Parse(content, "NU_1.csv", detect.FormatBankStatement, audit.NewRecorder())
	require.Len(t, got, 1)
	assert.Equal(t, "1500.75", got[0].Amount.String())
}

func TestParse_GenericIntegerPolicy(t *testing.T) {
	content := "2025-07-15,Mensalidade,250\n"

	// Default: bare integers in unrecognized files are major units.
	got := newParser(t).Parse(content, "export.csv", detect.FormatGenericCSV, audit.NewRecorder())
	require.Len(t, got, 1)
	assert.Equal(t, "250", got[0].Amount.String())

	// Opted in: treat them as cents like a statement would.
	cents := New(log.New(io.Discard), categorize.Default(), Options{GenericIntegerCents: true})
	got = cents.Parse(content, "export.csv", detect.FormatGenericCSV, audit.NewRecorder())
	require.Len(t, got, 1)
	assert.Equal(t, "2.5", got[0].Amount.String())
}

func TestParse_DefaultCategories(t *testing.T) {
	content := "15/07/2025,\"-80,00\",a,Tarifa bancária mensal\n" +
		"16/07/2025,\"120,00\",b,Rendimento da conta\n"

	// No rule matches either description; the built-in labels apply.
	got := newParser(t).Parse(content, "NU_1.csv", detect.FormatBankStatement, audit.NewRecorder())
	require.Len(t, got, 2)
	assert.Equal(t, "Outros", got[0].Category)
	assert.Equal(t, "Outros Recebimentos", got[1].Category)

	// Configured labels replace the built-ins for unmatched rows.
	p := New(log.New(io.Discard), categorize.Default(), Options{
		DefaultCategory:       "Diversos",
		DefaultIncomeCategory: "Receitas Diversas",
	})
	got = p.Parse(content, "NU_1.csv", detect.FormatBankStatement, audit.NewRecorder())
	require.Len(t, got, 2)
	assert.Equal(t, "Diversos", got[0].Category)
	assert.Equal(t, "Receitas Diversas", got[1].Category)
}

func TestParse_EmptyContent(t *testing.T) {
	assert.Empty(t, newParser(t).Parse("", "empty.csv", detect.FormatGenericCSV, audit.NewRecorder()))
	assert.Empty(t, newParser(t).Parse("\n\n", "blank.csv", detect.FormatGenericCSV, audit.NewRecorder()))
}

func TestSplitFields_Quoting(t *testing.T) {
	got := splitFields(`15/07/2025,"1.234,56",id,"Restaurante ""O Mineiro"", Savassi"`, ',')
	require.Len(t, got, 4)
	assert.Equal(t, "1.234,56", got[1])
	assert.Equal(t, `Restaurante "O Mineiro", Savassi`, got[3])
}
