package orders

import (
	"context"
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// OrdersTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del motor de pedidos atados a esa tx. La reserva de todas las
// líneas de un pedido es una sola unidad atómica.
type OrdersTxRunner interface {
	RunOrders(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// SaleRecorder convierte una reserva en salida física: descuenta existencia y
// agrega el movimiento VENTA, usando los repos del caller (misma transacción).
// Lo implementa el motor de movimientos (inventory.MovementUseCase).
type SaleRecorder interface {
	RegisterSaleInTx(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
		productID, branchID string,
		qty int64,
		userID *string,
		referenceID string,
		now time.Time,
	) error
}

// AuditNotifier notificación best-effort de auditoría (nunca falla hacia el caller).
type AuditNotifier interface {
	Notify(userID *string, action, entityType, entityID string, details any)
}
