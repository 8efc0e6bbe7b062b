package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/infrastructure/pdf"
)

func TestGenerateKardexPDF(t *testing.T) {
	product := &entity.Product{
		ID:       "p1",
		Name:     "Sugar",
		Unit:     "kg",
		Stock:    decimal.NewFromInt(15),
		TotalIn:  decimal.NewFromInt(20),
		TotalOut: decimal.NewFromInt(5),
	}
	logs := []entity.LedgerEntry{
		{ID: "a", Date: "2024-01-01", Type: "in", Quantity: decimal.NewFromInt(20), Balance: decimal.NewFromInt(20)},
		{ID: "b", Date: "2024-01-02", Type: "out", Quantity: decimal.NewFromInt(5), Balance: decimal.NewFromInt(15), Remarks: "venta"},
	}
	r, err := inventory.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	gen := pdf.NewMarotoKardexGenerator(language.Spanish)
	out, err := gen.GenerateKardexPDF(context.Background(), product, logs, r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateKardexPDF_SinMovimientos(t *testing.T) {
	gen := pdf.NewMarotoKardexGenerator(language.Spanish)
	out, err := gen.GenerateKardexPDF(context.Background(), &entity.Product{ID: "p2", Name: "Vacío"}, nil, inventory.DateRange{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
