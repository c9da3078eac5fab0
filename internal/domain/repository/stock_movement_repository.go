package repository

import (
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// MovementFilter filtra el listado del libro de movimientos.
// BranchID coincide contra origen o destino.
type MovementFilter struct {
	ProductID *string
	BranchID  *string
	Type      *string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository es el puerto del libro de movimientos: solo alta y
// lectura, nunca update ni delete (append-only).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(filter MovementFilter) ([]*entity.StockMovement, int64, error)
}
