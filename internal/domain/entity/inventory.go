package entity

import "time"

// Inventory es la fila de stock por (producto, sucursal): única fuente de verdad.
// Quantity es la existencia física; Reserved la retención lógica por pedidos pendientes.
// Invariante tras cada transacción confirmada: 0 <= Reserved <= Quantity.
type Inventory struct {
	ProductID string
	BranchID  string
	Quantity  int64
	Reserved  int64
	UpdatedAt time.Time
}

// Available devuelve el remanente vendible (existencia menos reservas).
func (i *Inventory) Available() int64 {
	return i.Quantity - i.Reserved
}
