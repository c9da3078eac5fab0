package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido. PENDING es el único estado no terminal.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Order es un pedido de mostrador: reserva inventario al crearse y solo
// descuenta existencia física al entregarse (pickup).
type Order struct {
	ID            int64
	OrderNumber   string // ORD-000042, derivado del ID secuencial
	BranchID      string
	Status        string
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	UserID        *string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem es una línea del pedido con el precio unitario congelado al momento
// de la reserva; cambios posteriores de precio en catálogo no la afectan.
type OrderItem struct {
	ID        string
	OrderID   int64
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// FormatOrderNumber deriva el número público del ID secuencial asignado por la BD.
func FormatOrderNumber(id int64) string {
	return fmt.Sprintf("ORD-%06d", id)
}
