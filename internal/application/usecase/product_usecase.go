package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock y totales se manejan vía kardex (inventory.LedgerUseCase).
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un producto con kardex vacío y totales en cero.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := uc.now().UTC()
	product := &entity.Product{
		Name:      name,
		Unit:      in.Unit,
		Remarks:   in.Remarks,
		Stock:     decimal.Zero,
		TotalIn:   decimal.Zero,
		TotalOut:  decimal.Zero,
		Logs:      []entity.LedgerEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ProductFromEntity(product), nil
}

// List lista productos (resumen, sin kardex), más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ProductFromEntity(p))
	}
	return items, nil
}

// Get obtiene un producto con su kardex filtrado por el rango inclusivo [from, to].
// Los parámetros vacíos no limitan el rango.
func (uc *ProductUseCase) Get(ctx context.Context, id, from, to string) (*dto.ProductDetailResponse, error) {
	dateRange, err := inventory.ParseDateRange(from, to)
	if err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}

	logs := make([]dto.LedgerEntryResponse, 0, len(product.Logs))
	for i, l := range product.Logs {
		if dateRange.Contains(l.Date) {
			logs = append(logs, dto.LedgerEntryFromEntity(l, i))
		}
	}
	return &dto.ProductDetailResponse{
		ProductResponse: *dto.ProductFromEntity(product),
		Logs:            logs,
	}, nil
}

// Update actualiza name, unit y remarks. No toca el kardex ni los totales.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name no puede ser vacío", domain.ErrInvalidInput)
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Remarks != nil {
		product.Remarks = *in.Remarks
	}
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ProductFromEntity(product), nil
}

// Delete elimina un producto y todo su kardex. Devuelve la cantidad eliminada (0 o 1).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (int64, error) {
	return uc.repo.Delete(ctx, id)
}
