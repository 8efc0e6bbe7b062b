package inventory

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// KardexUseCase genera la tarjeta de kardex en PDF de un producto.
type KardexUseCase struct {
	repo      repository.ProductRepository
	generator KardexPDFGenerator
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(repo repository.ProductRepository, generator KardexPDFGenerator) *KardexUseCase {
	return &KardexUseCase{repo: repo, generator: generator}
}

// DownloadKardexPDF devuelve el PDF y un nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrInvalidInput  si from/to no son fechas válidas.
//   - domain.ErrNotFound      si el producto no existe.
func (uc *KardexUseCase) DownloadKardexPDF(ctx context.Context, productID, from, to string) ([]byte, string, error) {
	dateRange, err := inventory.ParseDateRange(from, to)
	if err != nil {
		return nil, "", err
	}
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, "", err
	}
	if product == nil {
		return nil, "", fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	logs := inventory.FilterByDate(product.Logs, dateRange)
	pdfBytes, err := uc.generator.GenerateKardexPDF(ctx, product, logs, dateRange)
	if err != nil {
		return nil, "", fmt.Errorf("kardex: generar pdf: %w", err)
	}

	name := strings.Trim(unsafeFilename.ReplaceAllString(product.Name, "_"), "_")
	if name == "" {
		name = product.ID
	}
	return pdfBytes, "kardex_" + name + ".pdf", nil
}
