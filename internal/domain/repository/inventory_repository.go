package repository

import "github.com/jhoicas/panaderia-api/internal/domain/entity"

// InventoryRepository define las primitivas de fila sobre el inventario
// (producto, sucursal). Ninguna es transaccional por sí misma: se usan con el
// Querier de la transacción del caller (ver postgres.TxRunner). Las mutaciones
// son sentencias condicionales atómicas; un read-check-then-write aquí sería
// una condición de carrera.
type InventoryRepository interface {
	// Get devuelve la fila o una fila en cero si no existe (ausente == 0/0).
	Get(productID, branchID string) (*entity.Inventory, error)
	// ListByBranch devuelve todas las filas de inventario de una sucursal.
	ListByBranch(branchID string) ([]*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para relecturas defensivas.
	GetForUpdate(productID, branchID string) (*entity.Inventory, error)
	// AdjustQuantity suma delta a la existencia física, creando la fila si delta >= 0.
	// Falla con ErrInsufficientStock si el resultado quedaría negativo o por
	// debajo de lo reservado.
	AdjustQuantity(productID, branchID string, delta int64) error
	// Reserve incrementa reserved solo si reserved+qty <= quantity; si no,
	// ErrInsufficientStock. Es la garantía autoritativa contra sobreventa.
	Reserve(productID, branchID string, qty int64) error
	// Release decrementa reserved solo si reserved >= qty; si no, omite en
	// silencio (cancelación tolerante a dobles llamadas).
	Release(productID, branchID string, qty int64) error
	// ReleaseStrict como Release pero falla con ErrConflict si reserved < qty.
	ReleaseStrict(productID, branchID string, qty int64) error
}
