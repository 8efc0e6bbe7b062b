package inventory

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

// KardexPDFGenerator genera la tarjeta de kardex (PDF) de un producto.
// logs ya viene filtrado por rango; dateRange se usa solo para el encabezado.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, product *entity.Product, logs []entity.LedgerEntry, dateRange inventory.DateRange) ([]byte, error)
}
