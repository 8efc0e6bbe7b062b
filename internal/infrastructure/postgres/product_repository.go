package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// logRow forma JSON de una línea del kardex dentro de la columna logs.
type logRow struct {
	ID       string          `json:"id,omitempty"`
	Date     string          `json:"date"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Remarks  string          `json:"remarks"`
	Balance  decimal.Decimal `json:"balance"`
}

// Create persiste un nuevo producto con ID generado.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	product.ID = uuid.New().String()
	logs, err := encodeLogs(product.Logs)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (id, name, unit, remarks, stock, total_in, total_out, logs, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		product.ID, product.Name, product.Unit, product.Remarks,
		product.Stock, product.TotalIn, product.TotalOut, logs, product.Revision,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return storeError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto con su kardex. IDs que no son UUID no existen.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `
		SELECT id, name, unit, remarks, stock, total_in, total_out, logs, revision, created_at, updated_at
		FROM products WHERE id = $1`
	var (
		p    entity.Product
		logs []byte
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Unit, &p.Remarks, &p.Stock, &p.TotalIn, &p.TotalOut,
		&logs, &p.Revision, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeError("get product", err)
	}
	if p.Logs, err = decodeLogs(logs); err != nil {
		return nil, err
	}
	return &p, nil
}

// List lista productos sin kardex, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, unit, remarks, stock, total_in, total_out, revision, created_at, updated_at
		FROM products ORDER BY updated_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, storeError("list products", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Remarks, &p.Stock, &p.TotalIn, &p.TotalOut,
			&p.Revision, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list products", err)
	}
	return list, nil
}

// Update actualiza solo los datos descriptivos. No toca logs, totales ni revision.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `UPDATE products SET name = $2, unit = $3, remarks = $4, updated_at = $5 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, product.ID, product.Name, product.Unit, product.Remarks, product.UpdatedAt)
	if err != nil {
		return storeError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
	}
	return nil
}

// Delete elimina un producto y su kardex.
func (r *ProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, storeError("delete product", err)
	}
	return cmd.RowsAffected(), nil
}

// SaveLedger escribe logs y totales en un solo UPDATE condicionado a la revisión leída.
func (r *ProductRepo) SaveLedger(ctx context.Context, id string, expectedRevision int64, snap entity.LedgerSnapshot) error {
	logs, err := encodeLogs(snap.Logs)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET logs = $3, stock = $4, total_in = $5, total_out = $6, revision = revision + 1, updated_at = now()
		WHERE id = $1 AND revision = $2`
	cmd, err := r.q.Exec(ctx, query, id, expectedRevision, logs, snap.Stock, snap.TotalIn, snap.TotalOut)
	if err != nil {
		return storeError("save ledger", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return storeError("save ledger", err)
	}
	if !exists {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return fmt.Errorf("%w: revisión distinta de %d", domain.ErrConflict, expectedRevision)
}

// Ping verifica la conexión.
func (r *ProductRepo) Ping(ctx context.Context) error {
	var one int
	if err := r.q.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return storeError("ping", err)
	}
	return nil
}

func encodeLogs(logs []entity.LedgerEntry) ([]byte, error) {
	rows := make([]logRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, logRow(l))
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode logs: %w", err)
	}
	return b, nil
}

func decodeLogs(b []byte) ([]entity.LedgerEntry, error) {
	if len(b) == 0 {
		return []entity.LedgerEntry{}, nil
	}
	var rows []logRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	logs := make([]entity.LedgerEntry, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, entity.LedgerEntry(r))
	}
	return logs, nil
}
