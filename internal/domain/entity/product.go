package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la panadería (pan, pastel, galleta...).
// El slug es la identidad pública e inmutable; precio y categoría los gestiona el catálogo.
type Product struct {
	ID          string
	Slug        string // único, ej: "concha-de-vainilla"
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	CategoryID  string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
