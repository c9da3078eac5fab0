package entity

import "time"

// Category agrupa productos del catálogo (panes, pasteles, bebidas...).
type Category struct {
	ID        string
	Slug      string
	Name      string
	CreatedAt time.Time
}
