package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los adaptadores (PostgreSQL, MongoDB, memoria) asignan el ID al crear.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// List devuelve productos sin Logs, ordenados por UpdatedAt descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Update persiste solo Name, Unit, Remarks y UpdatedAt; nunca toca el kardex.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) (int64, error)
	// SaveLedger escribe logs y totales en una sola operación si Revision == expectedRevision,
	// e incrementa Revision. domain.ErrConflict si la revisión cambió, domain.ErrNotFound si ya no existe.
	SaveLedger(ctx context.Context, id string, expectedRevision int64, snap entity.LedgerSnapshot) error
	Ping(ctx context.Context) error
}
