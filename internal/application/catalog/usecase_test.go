package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/application/catalog"
	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/testutil"
)

func newUseCase() (*catalog.UseCase, *testutil.MemStore) {
	store := testutil.NewMemStore()
	uc := catalog.NewUseCase(
		&testutil.ProductRepo{S: store},
		&testutil.BranchRepo{S: store},
		&testutil.CategoryRepo{S: store},
	)
	return uc, store
}

func TestCreateProduct_DerivaSlugDelNombre(t *testing.T) {
	uc, _ := newUseCase()

	p, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:  "Pan Francés Integral",
		Price: decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pan-frances-integral", p.Slug, "el slug normaliza acentos y espacios")
	assert.True(t, p.Active)
	assert.NotEmpty(t, p.ID)
}

func TestCreateProduct_RespetaSlugExplicito(t *testing.T) {
	uc, _ := newUseCase()

	p, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Slug:  "baguette",
		Name:  "Baguette Tradicional",
		Price: decimal.RequireFromString("3.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "baguette", p.Slug)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre requerido")

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Croissant", Price: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Croissant", Price: decimal.NewFromInt(2), CategorySlug: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "categoría desconocida")
}

func TestCreateProduct_SlugDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Croissant", Price: decimal.NewFromInt(2)})
	require.NoError(t, err)

	_, err = uc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Croissant", Price: decimal.NewFromInt(3)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateProduct_ResuelveCategoria(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	cat, err := uc.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Panes"})
	require.NoError(t, err)
	assert.Equal(t, "panes", cat.Slug)

	p, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Name: "Pan de Molde", Price: decimal.NewFromInt(4), CategorySlug: "panes",
	})
	require.NoError(t, err)
	assert.Equal(t, cat.ID, p.CategoryID)
}

func TestGetProduct_NoExiste(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.GetProduct(context.Background(), "inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateBranch_DerivaSlug(t *testing.T) {
	uc, _ := newUseCase()

	b, err := uc.CreateBranch(context.Background(), dto.CreateBranchRequest{
		Name: "Sucursal Ñuñoa Centro",
	})
	require.NoError(t, err)
	assert.Equal(t, "sucursal-nunoa-centro", b.Slug)
}

func TestListProducts_PaginacionClamped(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	for _, name := range []string{"Pan Uno", "Pan Dos", "Pan Tres"} {
		_, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Name: name, Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
	}

	// page y page_size fuera de rango se normalizan (1 y tamaño por defecto).
	_, meta, err := uc.ListProducts(ctx, dto.PageRequest{Page: -5, PageSize: 100000})
	require.NoError(t, err)
	assert.Equal(t, int64(3), meta.Total)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, dto.MaxPageSize, meta.PageSize)
	assert.Equal(t, int64(1), meta.PageCount)
}
