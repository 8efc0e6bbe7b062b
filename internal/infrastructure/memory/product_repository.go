// Package memory implementa los puertos de persistencia en memoria (tests y STORE_DRIVER=memory).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo repositorio de productos en memoria. Devuelve copias, nunca referencias internas.
type ProductRepo struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	now      func() time.Time
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{
		products: make(map[string]*entity.Product),
		now:      time.Now,
	}
}

// Create asigna ID y guarda una copia del producto.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = uuid.New().String()
	r.products[product.ID] = clone(product)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return clone(p), nil
}

// List devuelve productos sin Logs, por UpdatedAt descendente.
func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.mu.RLock()
	list := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		c := clone(p)
		c.Logs = nil
		list = append(list, c)
	}
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].UpdatedAt.Equal(list[j].UpdatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})
	if offset >= len(list) {
		return []*entity.Product{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// Update persiste name, unit, remarks y updated_at.
func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	p.Name = product.Name
	p.Unit = product.Unit
	p.Remarks = product.Remarks
	p.UpdatedAt = product.UpdatedAt
	return nil
}

// Delete elimina el producto y su kardex.
func (r *ProductRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return 0, nil
	}
	delete(r.products, id)
	return 1, nil
}

// SaveLedger reemplaza logs y totales si la revisión coincide (escritura atómica bajo el lock).
func (r *ProductRepo) SaveLedger(_ context.Context, id string, expectedRevision int64, snap entity.LedgerSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if p.Revision != expectedRevision {
		return fmt.Errorf("%w: revisión %d, esperada %d", domain.ErrConflict, p.Revision, expectedRevision)
	}
	p.Logs = cloneLogs(snap.Logs)
	p.Stock = snap.Stock
	p.TotalIn = snap.TotalIn
	p.TotalOut = snap.TotalOut
	p.Revision++
	p.UpdatedAt = r.now().UTC()
	return nil
}

// Ping siempre disponible.
func (r *ProductRepo) Ping(context.Context) error { return nil }

// Put reemplaza el documento tal cual, sin reconciliar. Simula escrituras fuera de banda en tests.
func (r *ProductRepo) Put(product *entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = clone(product)
}

func clone(p *entity.Product) *entity.Product {
	c := *p
	c.Logs = cloneLogs(p.Logs)
	return &c
}

func cloneLogs(logs []entity.LedgerEntry) []entity.LedgerEntry {
	if logs == nil {
		return nil
	}
	out := make([]entity.LedgerEntry, len(logs))
	copy(out, logs)
	return out
}
