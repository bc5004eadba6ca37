package validate

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extrato-dev/extrato/internal/audit"
	"github.com/extrato-dev/extrato/internal/model"
)

func candidate(date string, desc string, amount string, typ model.Type) model.Candidate {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.Candidate{
		Date:            d,
		Description:     desc,
		Category:        "Outros",
		PaymentMethod:   "PIX",
		Amount:          decimal.RequireFromString(amount),
		Type:            typ,
		Status:          model.StatusPaid,
		IncludeInTotals: true,
	}
}

func TestFilter_ExcludesNotCompletedAndPending(t *testing.T) {
	pending := candidate("2025-03-10", "Boleto condomínio", "350.00", model.TypeExpense)
	pending.Status = model.StatusPending

	in := []model.Candidate{
		candidate("2025-03-10", "Supermercado Central", "120.00", model.TypeExpense),
		candidate("2025-03-10", "PIX cancelada", "80.00", model.TypeExpense),
		pending,
		candidate("2025-03-11", "Salário mensal", "3000.00", model.TypeIncome),
	}

	rec := audit.NewRecorder()
	got := New(log.New(io.Discard)).Filter(in, rec)

	require.Len(t, got, 2)
	assert.Equal(t, "Supermercado Central", got[0].Description)
	assert.Equal(t, "Salário mensal", got[1].Description)
	assert.Equal(t, 1, rec.Reasons[audit.ReasonNotCompleted])
	assert.Equal(t, 1, rec.Reasons[audit.ReasonPending])
}

func TestFilter_ExclusionMarkers(t *testing.T) {
	v := New(log.New(io.Discard))
	for _, desc := range []string{
		"Transferência não concluída",
		"Compra cancelada no crédito",
		"Pix estornado",
		"Estorno de compra",
		"Pagamento com falha",
		"Operação pendente",
	} {
		rec := audit.NewRecorder()
		got := v.Filter([]model.Candidate{candidate("2025-03-10", desc, "10.00", model.TypeExpense)}, rec)
		assert.Empty(t, got, "description %q should be excluded", desc)
		assert.Equal(t, 1, rec.Reasons[audit.ReasonNotCompleted])
	}
}

func TestFilter_DuplicateTransferPair(t *testing.T) {
	in := []model.Candidate{
		candidate("2025-03-10", "Transferência recebida", "100.00", model.TypeIncome),
		candidate("2025-03-10", "Transferência enviada", "100.00", model.TypeExpense),
	}

	rec := audit.NewRecorder()
	got := New(log.New(io.Discard)).Filter(in, rec)

	// The income half of the pair is the artifact; the expense survives.
	require.Len(t, got, 1)
	assert.Equal(t, "Transferência enviada", got[0].Description)
	assert.Equal(t, model.TypeExpense, got[0].Type)
	assert.Equal(t, 1, rec.Reasons[audit.ReasonDuplicateTransfer])
}

func TestFilter_TransferPairDifferentDayKept(t *testing.T) {
	in := []model.Candidate{
		candidate("2025-03-10", "Transferência recebida", "100.00", model.TypeIncome),
		candidate("2025-03-11", "Transferência enviada", "100.00", model.TypeExpense),
	}

	got := New(log.New(io.Discard)).Filter(in, audit.NewRecorder())
	assert.Len(t, got, 2)
}

func TestFilter_TransferPairDifferentAmountKept(t *testing.T) {
	in := []model.Candidate{
		candidate("2025-03-10", "Transferência recebida", "100.00", model.TypeIncome),
		candidate("2025-03-10", "Transferência enviada", "100.50", model.TypeExpense),
	}

	got := New(log.New(io.Discard)).Filter(in, audit.NewRecorder())
	assert.Len(t, got, 2)
}

func TestFilter_EpsilonTolerance(t *testing.T) {
	in := []model.Candidate{
		candidate("2025-03-10", "Pix recebido", "100.00", model.TypeIncome),
		candidate("2025-03-10", "Pix enviado", "100.01", model.TypeExpense),
	}

	got := New(log.New(io.Discard)).Filter(in, audit.NewRecorder())
	require.Len(t, got, 1)
	assert.Equal(t, model.TypeExpense, got[0].Type)
}

func TestFilter_NonTransferIncomeUntouched(t *testing.T) {
	in := []model.Candidate{
		candidate("2025-03-10", "Salário mensal", "100.00", model.TypeIncome),
		candidate("2025-03-10", "Transferência enviada", "100.00", model.TypeExpense),
	}

	got := New(log.New(io.Discard)).Filter(in, audit.NewRecorder())
	assert.Len(t, got, 2)
}

func TestFilter_PreservesOrder(t *testing.T) {
	in := []model.Candidate{
		candidate("2025-03-09", "Uber viagem", "25.00", model.TypeExpense),
		candidate("2025-03-10", "PIX cancelada", "80.00", model.TypeExpense),
		candidate("2025-03-10", "Padaria da Esquina", "15.00", model.TypeExpense),
		candidate("2025-03-11", "Salário mensal", "3000.00", model.TypeIncome),
	}

	got := New(log.New(io.Discard)).Filter(in, audit.NewRecorder())
	require.Len(t, got, 3)
	assert.Equal(t, "Uber viagem", got[0].Description)
	assert.Equal(t, "Padaria da Esquina", got[1].Description)
	assert.Equal(t, "Salário mensal", got[2].Description)
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, New(log.New(io.Discard)).Filter(nil, audit.NewRecorder()))
}
