package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

func TestNormalizeDate(t *testing.T) {
	got, err := inventory.NormalizeDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", got)

	got, err = inventory.NormalizeDate("2024-01-05T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-06", got, "RFC3339 se lleva a UTC")

	_, err = inventory.NormalizeDate("05/01/2024")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestFilterByDate(t *testing.T) {
	logs := []entity.LedgerEntry{
		{ID: "1", Date: "2024-01-01"},
		{ID: "2", Date: "2024-01-02"},
		{ID: "3", Date: "2024-01-03"},
		{ID: "4", Date: ""},
	}

	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{"sin límites devuelve todo", "", "", []string{"1", "2", "3", "4"}},
		{"solo desde", "2024-01-02", "", []string{"2", "3"}},
		{"solo hasta", "", "2024-01-02", []string{"1", "2"}},
		{"rango inclusivo", "2024-01-02", "2024-01-02", []string{"2"}},
		{"rango vacío", "2024-02-01", "2024-02-28", []string{}},
		{"desde con hora excluye ese día", "2024-01-02T10:00:00Z", "", []string{"3"}},
		{"desde a medianoche incluye ese día", "2024-01-02T00:00:00Z", "", []string{"2", "3"}},
		{"desde con zona horaria", "2024-01-01T22:00:00-05:00", "", []string{"3"}},
		{"hasta con hora incluye ese día", "", "2024-01-02T10:00:00Z", []string{"1", "2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := inventory.ParseDateRange(tt.from, tt.to)
			require.NoError(t, err)
			ids := []string{}
			for _, l := range inventory.FilterByDate(logs, r) {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestParseDateRange_Invalido(t *testing.T) {
	_, err := inventory.ParseDateRange("ayer", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
