package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

func entry(typ string, qty int64, date string) entity.LedgerEntry {
	return entity.LedgerEntry{Type: typ, Quantity: decimal.NewFromInt(qty), Date: date}
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestEffectOf(t *testing.T) {
	tests := []struct {
		name     string
		in       entity.LedgerEntry
		stock    decimal.Decimal
		inDelta  decimal.Decimal
		outDelta decimal.Decimal
	}{
		{"entrada", entry("in", 7, ""), d(7), d(7), d(0)},
		{"salida", entry("out", 3, ""), d(-3), d(0), d(3)},
		{"tipo desconocido", entry("adjust", 9, ""), d(0), d(0), d(0)},
		{"cantidad ausente", entity.LedgerEntry{Type: "in"}, d(0), d(0), d(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eff := inventory.EffectOf(tt.in)
			assert.True(t, tt.stock.Equal(eff.Stock), "stock: %s", eff.Stock)
			assert.True(t, tt.inDelta.Equal(eff.In), "in: %s", eff.In)
			assert.True(t, tt.outDelta.Equal(eff.Out), "out: %s", eff.Out)
		})
	}
}

func TestReconcile_SaldosYTotales(t *testing.T) {
	snap, err := inventory.Reconcile([]entity.LedgerEntry{
		entry("in", 20, "2024-01-01"),
		entry("out", 5, "2024-01-02"),
		entry("in", 3, "2024-01-03"),
		entry("out", 18, "2024-01-04"),
	})
	require.NoError(t, err)
	require.Len(t, snap.Logs, 4)

	balances := []int64{20, 15, 18, 0}
	for i, b := range balances {
		assert.True(t, d(b).Equal(snap.Logs[i].Balance), "saldo línea %d: %s", i, snap.Logs[i].Balance)
	}
	assert.True(t, d(0).Equal(snap.Stock))
	assert.True(t, d(23).Equal(snap.TotalIn))
	assert.True(t, d(23).Equal(snap.TotalOut))
}

func TestReconcile_SecuenciaVacia(t *testing.T) {
	snap, err := inventory.Reconcile(nil)
	require.NoError(t, err)
	assert.Empty(t, snap.Logs)
	assert.True(t, snap.Stock.IsZero())
	assert.True(t, snap.TotalIn.IsZero())
	assert.True(t, snap.TotalOut.IsZero())
}

func TestReconcile_SaldoNegativoEnPrefijo(t *testing.T) {
	// El saldo final sería positivo, pero la segunda línea lo deja en -5.
	_, err := inventory.Reconcile([]entity.LedgerEntry{
		entry("in", 5, "2024-01-01"),
		entry("out", 10, "2024-01-02"),
		entry("in", 50, "2024-01-03"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNegativeBalance))

	var nb *inventory.NegativeBalanceError
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, 1, nb.Index)
	assert.Equal(t, "out", nb.Type)
	assert.True(t, d(-5).Equal(nb.Balance))
	assert.Contains(t, err.Error(), `out 10 on 2024-01-02`)
}

func TestReconcile_Idempotente(t *testing.T) {
	first, err := inventory.Reconcile([]entity.LedgerEntry{
		{ID: "a", Type: "in", Quantity: decimal.RequireFromString("10.5"), Date: "2024-02-01", Remarks: "compra"},
		{ID: "b", Type: "out", Quantity: decimal.RequireFromString("0.25"), Date: "2024-02-02"},
		{ID: "c", Type: "out", Quantity: decimal.RequireFromString("10.25"), Date: "2024-02-03"},
	})
	require.NoError(t, err)

	second, err := inventory.Reconcile(first.Logs)
	require.NoError(t, err)

	require.Len(t, second.Logs, len(first.Logs))
	for i := range first.Logs {
		a, b := first.Logs[i], second.Logs[i]
		assert.Equal(t, a.ID, b.ID)
		assert.Equal(t, a.Date, b.Date)
		assert.Equal(t, a.Type, b.Type)
		assert.Equal(t, a.Remarks, b.Remarks)
		assert.True(t, a.Quantity.Equal(b.Quantity))
		assert.True(t, a.Balance.Equal(b.Balance))
	}
	assert.True(t, first.Stock.Equal(second.Stock))
	assert.True(t, first.TotalIn.Equal(second.TotalIn))
	assert.True(t, first.TotalOut.Equal(second.TotalOut))
}

func TestReconcile_Invariante(t *testing.T) {
	snap, err := inventory.Reconcile([]entity.LedgerEntry{
		entry("in", 8, "2024-03-01"),
		entry("in", 4, "2024-03-02"),
		entry("out", 6, "2024-03-03"),
	})
	require.NoError(t, err)

	assert.True(t, snap.Stock.Equal(snap.TotalIn.Sub(snap.TotalOut)))
	assert.True(t, snap.Stock.Equal(snap.Logs[len(snap.Logs)-1].Balance))

	fold := decimal.Zero
	for _, l := range snap.Logs {
		fold = fold.Add(inventory.EffectOf(l).Stock)
	}
	assert.True(t, snap.Stock.Equal(fold))
}

func TestReconcile_IgnoraSaldoDeEntrada(t *testing.T) {
	// Un saldo almacenado incorrecto (p. ej. editado fuera de banda) se reescribe.
	in := []entity.LedgerEntry{
		{Type: "in", Quantity: d(4), Date: "2024-01-01", Balance: d(999)},
	}
	snap, err := inventory.Reconcile(in)
	require.NoError(t, err)
	assert.True(t, d(4).Equal(snap.Logs[0].Balance))
	assert.True(t, d(999).Equal(in[0].Balance), "la entrada no debe mutarse")
}
