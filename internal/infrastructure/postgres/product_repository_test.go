package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kardex-api/pkg/config"
)

// newTestRepo conecta a TEST_DATABASE_URL; sin esa variable los tests de integración se omiten.
func newTestRepo(t *testing.T) (*postgres.ProductRepo, *pgxpool.Pool) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omite integración con PostgreSQL")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	return postgres.NewProductRepository(pool), pool
}

func newProduct(name string) *entity.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entity.Product{
		Name: name, Unit: "kg",
		Stock: decimal.Zero, TotalIn: decimal.Zero, TotalOut: decimal.Zero,
		Logs:      []entity.LedgerEntry{},
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestProductRepo_CicloCompleto(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	p := newProduct("Sugar")
	require.NoError(t, repo.Create(ctx, p))
	require.NotEmpty(t, p.ID)
	t.Cleanup(func() { _, _ = repo.Delete(ctx, p.ID) })

	snap := entity.LedgerSnapshot{
		Logs: []entity.LedgerEntry{
			{ID: "a", Date: "2024-01-01", Type: "in", Quantity: decimal.RequireFromString("20.5"), Balance: decimal.RequireFromString("20.5")},
		},
		Stock: decimal.RequireFromString("20.5"), TotalIn: decimal.RequireFromString("20.5"), TotalOut: decimal.Zero,
	}
	require.NoError(t, repo.SaveLedger(ctx, p.ID, 0, snap))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.Revision)
	require.Len(t, got.Logs, 1)
	assert.Equal(t, "a", got.Logs[0].ID)
	assert.True(t, snap.Stock.Equal(got.Stock))
	assert.True(t, snap.Logs[0].Quantity.Equal(got.Logs[0].Quantity))

	// Revisión vieja → conflicto, sin cambios.
	err = repo.SaveLedger(ctx, p.ID, 0, entity.LedgerSnapshot{})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	got.Name = "Azúcar"
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Azúcar", again.Name)
	assert.Len(t, again.Logs, 1, "Update no toca el kardex")

	n, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = repo.SaveLedger(ctx, p.ID, 1, snap)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductRepo_IDNoUUID(t *testing.T) {
	repo, _ := newTestRepo(t)
	got, err := repo.GetByID(context.Background(), "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)
}
