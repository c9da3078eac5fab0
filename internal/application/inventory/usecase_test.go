package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/inventory"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *testutil.MemStore
	uc    *inventory.MovementUseCase
	pan   *entity.Product
	sede  *entity.Branch
	norte *entity.Branch
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewMemStore()
	uc := inventory.NewMovementUseCase(
		&testutil.TxRunner{S: store},
		&testutil.ProductRepo{S: store},
		&testutil.BranchRepo{S: store},
		&testutil.InvRepo{S: store},
		&testutil.MovRepo{S: store},
		testutil.NopAuditor{},
	)
	f := &fixture{store: store, uc: uc}
	f.pan = store.SeedProduct("pan-frances", "Pan Francés", decimal.RequireFromString("2.50"))
	f.sede = store.SeedBranch("centro", "Sucursal Centro")
	f.norte = store.SeedBranch("norte", "Sucursal Norte")
	return f
}

func (f *fixture) create(t *testing.T, in dto.CreateMovementRequest) *entity.StockMovement {
	t.Helper()
	mov, err := f.uc.CreateMovement(context.Background(), in, nil)
	require.NoError(t, err)
	return mov
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas (PRODUCCION, COMPRA, SOBRANTE)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_Produccion_SumaEnDestino(t *testing.T) {
	f := newFixture(t)

	mov := f.create(t, dto.CreateMovementRequest{
		Type: entity.MovementProduccion, Quantity: 50,
		ProductSlug: "pan-frances", ToBranchSlug: "centro",
	})

	inv := f.store.GetInventory(f.pan.ID, f.sede.ID)
	assert.Equal(t, int64(50), inv.Quantity, "la producción crea la fila si no existe")
	assert.Equal(t, int64(0), inv.Reserved)

	require.NotNil(t, mov.ToBranchID)
	assert.Equal(t, f.sede.ID, *mov.ToBranchID)
	assert.Nil(t, mov.FromBranchID, "una entrada no tiene origen")
	require.Len(t, f.store.Movements, 1)
}

func TestCreateMovement_CompraAcumula(t *testing.T) {
	f := newFixture(t)
	f.store.SeedInventory(f.pan.ID, f.sede.ID, 20, 0)

	f.create(t, dto.CreateMovementRequest{
		Type: entity.MovementCompra, Quantity: 30,
		ProductSlug: "pan-frances", ToBranchSlug: "centro",
	})

	assert.Equal(t, int64(50), f.store.GetInventory(f.pan.ID, f.sede.ID).Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas (VENTA, MERMA, PERDIDA_ROBO)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_VentaManual_Descuenta(t *testing.T) {
	f := newFixture(t)
	f.store.SeedInventory(f.pan.ID, f.sede.ID, 10, 0)

	mov := f.create(t, dto.CreateMovementRequest{
		Type: entity.MovementVenta, Quantity: 4,
		ProductSlug: "pan-frances", FromBranchSlug: "centro",
	})

	assert.Equal(t, int64(6), f.store.GetInventory(f.pan.ID, f.sede.ID).Quantity)
	require.NotNil(t, mov.FromBranchID)
	assert.Equal(t, f.sede.ID, *mov.FromBranchID)
}

func TestCreateMovement_VentaInsuficiente_Falla(t *testing.T) {
	f := newFixture(t)
	f.store.SeedInventory(f.pan.ID, f.sede.ID, 2, 0)

	_, err := f.uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementVenta, Quantity: 3,
		ProductSlug: "pan-frances", FromBranchSlug: "centro",
	}, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(2), f.store.GetInventory(f.pan.ID, f.sede.ID).Quantity, "sin efecto")
	assert.Empty(t, f.store.Movements, "un movimiento fallido no entra al libro")
}

func TestCreateMovement_MermaRespetaReservas(t *testing.T) {
	f := newFixture(t)
	// 5 en existencia pero 4 reservados: solo 1 puede salir como merma.
	f.store.SeedInventory(f.pan.ID, f.sede.ID, 5, 4)

	_, err := f.uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementMerma, Quantity: 2,
		ProductSlug: "pan-frances", FromBranchSlug: "centro",
	}, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientStock,
		"la existencia nunca cae por debajo de lo reservado")

	f.create(t, dto.CreateMovementRequest{
		Type: entity.MovementMerma, Quantity: 1,
		ProductSlug: "pan-frances", FromBranchSlug: "centro",
	})
	assert.Equal(t, int64(4), f.store.GetInventory(f.pan.ID, f.sede.ID).Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// TRANSFERENCIA
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_Transferencia_MueveAmbosLados(t *testing.T) {
	f := newFixture(t)
	f.store.SeedInventory(f.pan.ID, f.sede.ID, 10, 0)

	mov := f.create(t, dto.CreateMovementRequest{
		Type: entity.MovementTransferencia, Quantity: 3,
		ProductSlug: "pan-frances", FromBranchSlug: "centro", ToBranchSlug: "norte",
	})

	assert.Equal(t, int64(7), f.store.GetInventory(f.pan.ID, f.sede.ID).Quantity)
	assert.Equal(t, int64(3), f.store.GetInventory(f.pan.ID, f.norte.ID).Quantity)
	require.Len(t, f.store.Movements, 1, "una transferencia es un único registro en el libro")
	require.NotNil(t, mov.FromBranchID)
	require.NotNil(t, mov.ToBranchID)
}

func TestCreateMovement_Transferencia_MismaSucursal(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTransferencia, Quantity: 1,
		ProductSlug: "pan-frances", FromBranchSlug: "centro", ToBranchSlug: "centro",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateMovement_TransferenciaInsuficiente_SinCreditoParcial(t *testing.T) {
	f := newFixture(t)
	f.store.SeedInventory(f.pan.ID, f.sede.ID, 2, 0)

	_, err := f.uc.CreateMovement(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTransferencia, Quantity: 5,
		ProductSlug: "pan-frances", FromBranchSlug: "centro", ToBranchSlug: "norte",
	}, nil)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(2), f.store.GetInventory(f.pan.ID, f.sede.ID).Quantity, "origen intacto")
	assert.Equal(t, int64(0), f.store.GetInventory(f.pan.ID, f.norte.ID).Quantity, "destino intacto")
	assert.Empty(t, f.store.Movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateMovement(ctx, dto.CreateMovementRequest{
		Type: "INVENTARIO_MAGICO", Quantity: 1, ProductSlug: "pan-frances", ToBranchSlug: "centro",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = f.uc.CreateMovement(ctx, dto.CreateMovementRequest{
		Type: entity.MovementProduccion, Quantity: 0, ProductSlug: "pan-frances", ToBranchSlug: "centro",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = f.uc.CreateMovement(ctx, dto.CreateMovementRequest{
		Type: entity.MovementVenta, Quantity: 1, ProductSlug: "pan-frances",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "VENTA sin sucursal de origen")

	_, err = f.uc.CreateMovement(ctx, dto.CreateMovementRequest{
		Type: entity.MovementProduccion, Quantity: 1, ProductSlug: "pan-frances",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "PRODUCCION sin sucursal de destino")

	_, err = f.uc.CreateMovement(ctx, dto.CreateMovementRequest{
		Type: entity.MovementProduccion, Quantity: 1, ProductSlug: "croissant", ToBranchSlug: "centro",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto desconocido")

	_, err = f.uc.CreateMovement(ctx, dto.CreateMovementRequest{
		Type: entity.MovementProduccion, Quantity: 1, ProductSlug: "pan-frances", ToBranchSlug: "sucursal-fantasma",
	}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound, "sucursal desconocida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_FiltraPorTipo(t *testing.T) {
	f := newFixture(t)
	f.create(t, dto.CreateMovementRequest{
		Type: entity.MovementProduccion, Quantity: 10, ProductSlug: "pan-frances", ToBranchSlug: "centro",
	})
	f.create(t, dto.CreateMovementRequest{
		Type: entity.MovementVenta, Quantity: 2, ProductSlug: "pan-frances", FromBranchSlug: "centro",
	})

	list, meta, err := f.uc.ListMovements(context.Background(), dto.ListMovementsQuery{
		Type: entity.MovementVenta,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementVenta, list[0].Type)
}

func TestListMovements_TipoInvalido(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.uc.ListMovements(context.Background(), dto.ListMovementsQuery{Type: "NO_EXISTE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_FechaInvalida(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.uc.ListMovements(context.Background(), dto.ListMovementsQuery{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetStock_FilaAusenteSeLeeEnCeros(t *testing.T) {
	f := newFixture(t)

	rows, err := f.uc.GetStock(context.Background(), "centro", "pan-frances")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(0), rows[0].Quantity)
	assert.Equal(t, int64(0), rows[0].Reserved)
	assert.Equal(t, int64(0), rows[0].Available())
}

func TestGetStock_PorSucursal(t *testing.T) {
	f := newFixture(t)
	torta := f.store.SeedProduct("torta-chocolate", "Torta de Chocolate", decimal.RequireFromString("15.00"))
	f.store.SeedInventory(f.pan.ID, f.sede.ID, 10, 2)
	f.store.SeedInventory(torta.ID, f.sede.ID, 3, 0)
	f.store.SeedInventory(f.pan.ID, f.norte.ID, 99, 0)

	rows, err := f.uc.GetStock(context.Background(), "centro", "")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "solo las filas de la sucursal pedida")

	rows, err = f.uc.GetStock(context.Background(), "centro", "pan-frances")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(8), rows[0].Available(), "available = quantity - reserved")
}
