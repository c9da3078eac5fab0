package dto

import (
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/inventory/movements.
type CreateMovementRequest struct {
	Type           string `json:"type"`
	Quantity       int64  `json:"quantity"`
	ProductSlug    string `json:"product_slug"`
	FromBranchSlug string `json:"from_branch_slug,omitempty"`
	ToBranchSlug   string `json:"to_branch_slug,omitempty"`
	ReferenceID    string `json:"reference_id,omitempty"`
	Note           string `json:"note,omitempty"`
}

// MovementResponse representación HTTP de un movimiento del libro.
type MovementResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	ProductID    string    `json:"product_id"`
	FromBranchID *string   `json:"from_branch_id,omitempty"`
	ToBranchID   *string   `json:"to_branch_id,omitempty"`
	UserID       *string   `json:"user_id,omitempty"`
	ReferenceID  string    `json:"reference_id,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListMovementsQuery filtros del listado de movimientos.
type ListMovementsQuery struct {
	PageRequest
	ProductSlug string `query:"product"`
	BranchSlug  string `query:"branch"`
	Type        string `query:"type"`
	From        string `query:"from"`
	To          string `query:"to"`
}

// StockResponse fila de inventario expuesta en GET /api/inventory/stock.
type StockResponse struct {
	ProductID string    `json:"product_id"`
	BranchID  string    `json:"branch_id"`
	Quantity  int64     `json:"quantity"`
	Reserved  int64     `json:"reserved"`
	Available int64     `json:"available"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MovementToResponse mapea la entidad a su representación HTTP.
func MovementToResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:           m.ID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		ProductID:    m.ProductID,
		FromBranchID: m.FromBranchID,
		ToBranchID:   m.ToBranchID,
		UserID:       m.UserID,
		ReferenceID:  m.ReferenceID,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt,
	}
}

// StockToResponse mapea la fila de inventario a su representación HTTP.
func StockToResponse(inv *entity.Inventory) StockResponse {
	return StockResponse{
		ProductID: inv.ProductID,
		BranchID:  inv.BranchID,
		Quantity:  inv.Quantity,
		Reserved:  inv.Reserved,
		Available: inv.Available(),
		UpdatedAt: inv.UpdatedAt,
	}
}
