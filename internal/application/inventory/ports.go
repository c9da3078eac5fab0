package inventory

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: ambos lados de una transferencia se aplican o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// AuditNotifier notificación best-effort de auditoría (nunca falla hacia el caller).
type AuditNotifier interface {
	Notify(userID *string, action, entityType, entityID string, details any)
}
