package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// OrderItemRequest línea del pedido a reservar.
type OrderItemRequest struct {
	ProductSlug string `json:"product_slug"`
	Quantity    int64  `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	BranchSlug    string             `json:"branch_slug"`
	Items         []OrderItemRequest `json:"items"`
	PaymentMethod string             `json:"payment_method,omitempty"`
}

// OrderItemResponse línea del pedido con el precio congelado.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse representación HTTP de un pedido.
type OrderResponse struct {
	ID            int64               `json:"id"`
	OrderNumber   string              `json:"order_number"`
	BranchID      string              `json:"branch_id"`
	Status        string              `json:"status"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ListOrdersQuery filtros del listado de pedidos.
type ListOrdersQuery struct {
	PageRequest
	BranchSlug string `query:"branch"`
	Status     string `query:"status"`
	From       string `query:"from"` // RFC 3339 o 2006-01-02
	To         string `query:"to"`
}

// OrderToResponse mapea la entidad a su representación HTTP.
func OrderToResponse(o *entity.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		BranchID:      o.BranchID,
		Status:        o.Status,
		Subtotal:      o.Subtotal,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return resp
}
