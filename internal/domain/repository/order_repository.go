package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// OrderFilter filtra el listado de pedidos.
type OrderFilter struct {
	BranchID *string
	Status   *string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// OrderRepository define el puerto de persistencia de pedidos y sus líneas.
type OrderRepository interface {
	// Create inserta el pedido placeholder y asigna Order.ID (serial de BD).
	Create(order *entity.Order) error
	// SetNumberAndTotals completa la segunda fase de la numeración.
	SetNumberAndTotals(orderID int64, orderNumber string, subtotal, total decimal.Decimal) error
	CreateItem(item *entity.OrderItem) error
	// GetWithItems carga el pedido y sus líneas; nil si no existe.
	GetWithItems(orderID int64) (*entity.Order, error)
	UpdateStatus(orderID int64, status string, userID *string) error
	List(filter OrderFilter) ([]*entity.Order, int64, error)
}
