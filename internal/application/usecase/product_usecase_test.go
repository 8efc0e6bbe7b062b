package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
)

func strp(s string) *string { return &s }

func TestProductUseCase_CreateRecortaNombreYArrancaEnCero(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository())

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "  Sugar  ", Unit: "kg"})
	require.NoError(t, err)
	assert.Equal(t, "Sugar", out.Name)
	assert.True(t, out.Stock.IsZero())
	assert.True(t, out.TotalIn.IsZero())
	assert.True(t, out.TotalOut.IsZero())
	assert.NotEmpty(t, out.ID)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_ListPaginaYAplicaDefectos(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository())
	for _, name := range []string{"a", "b", "c"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: name})
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	empty, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository())
	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Salt", Unit: "kg", Remarks: "fina"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Unit: strp("g")})
	require.NoError(t, err)
	assert.Equal(t, "Salt", out.Name)
	assert.Equal(t, "g", out.Unit)
	assert.Equal(t, "fina", out.Remarks)

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: strp("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateProductRequest{Unit: strp("g")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_GetRangoInvalido(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.NewProductRepository())
	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Rice"})
	require.NoError(t, err)

	_, err = uc.Get(ctx, created.ID, "2024-13-40", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Get(ctx, created.ID, "", "")
	require.NoError(t, err)
	assert.Empty(t, out.Logs)
}
