package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/pkg/config"
)

// Requiere TEST_MONGO_URI; cada corrida usa una colección propia que se elimina al final.
func newTestRepo(t *testing.T) *ProductRepo {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI no definido")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, db, err := Connect(ctx, config.MongoConfig{URI: uri, Database: "kardex_test"})
	require.NoError(t, err)

	name := CollectionName("t"+uuid.NewString()[:8]+"_", ProductsCollection)
	repo := NewProductRepository(db, name)
	require.NoError(t, repo.EnsureIndexes(ctx))

	t.Cleanup(func() {
		_ = db.Collection(name).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return repo
}

func TestProductRepo_CicloCompleto(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	p := &entity.Product{Name: "Sugar", Unit: "kg", Logs: []entity.LedgerEntry{}, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	snap := entity.LedgerSnapshot{
		Logs: []entity.LedgerEntry{{
			ID: uuid.NewString(), Date: "2024-01-01", Type: entity.MovementTypeIn,
			Quantity: decimal.NewFromInt(10), Balance: decimal.NewFromInt(10),
		}},
		Stock: decimal.NewFromInt(10), TotalIn: decimal.NewFromInt(10), TotalOut: decimal.Zero,
	}
	require.NoError(t, repo.SaveLedger(ctx, p.ID, 0, snap))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.Revision)
	assert.True(t, got.Stock.Equal(decimal.NewFromInt(10)))
	require.Len(t, got.Logs, 1)
	assert.Equal(t, snap.Logs[0].ID, got.Logs[0].ID)

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Logs)

	n, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	err = repo.SaveLedger(ctx, p.ID, 1, snap)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_SaveLedgerConRevisionViejaEsConflicto(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &entity.Product{Name: "Salt", Logs: []entity.LedgerEntry{}}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.SaveLedger(ctx, p.ID, 0, entity.LedgerSnapshot{}))

	err := repo.SaveLedger(ctx, p.ID, 0, entity.LedgerSnapshot{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProductRepo_DocumentoSinRevisionSeTrataComoCero(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	res, err := repo.coll.InsertOne(ctx, bson.M{"name": "Legacy", "stock": 3, "totalIn": 3, "totalOut": 0, "logs": bson.A{}})
	require.NoError(t, err)
	id := res.InsertedID.(primitive.ObjectID).Hex()

	require.NoError(t, repo.SaveLedger(ctx, id, 0, entity.LedgerSnapshot{}))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Revision)
	assert.True(t, got.Stock.IsZero())
}

func TestProductRepo_IDInvalidoNoExiste(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.GetByID(context.Background(), "no-es-objectid")
	require.NoError(t, err)
	assert.Nil(t, got)
}
