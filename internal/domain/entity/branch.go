package entity

import "time"

// Branch representa una sucursal física con su propio inventario por producto.
type Branch struct {
	ID        string
	Slug      string // único, ej: "central", "norte"
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
