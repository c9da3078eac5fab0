package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/orders"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/internal/infrastructure/pdf"
)

// OrderHandler maneja las peticiones HTTP de pedidos.
type OrderHandler struct {
	uc          *orders.OrderUseCase
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	tickets     *pdf.TicketGenerator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, productRepo repository.ProductRepository, branchRepo repository.BranchRepository, tickets *pdf.TicketGenerator) *OrderHandler {
	return &OrderHandler{uc: uc, productRepo: productRepo, branchRepo: branchRepo, tickets: tickets}
}

// Create godoc
// @Summary      Crear pedido (reserva inventario)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "branch_slug, items[{product_slug, quantity}], payment_method"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Reserve(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OrderToResponse(order))
}

// Cancel godoc
// @Summary      Cancelar pedido (libera la reserva)
// @Tags         orders
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de pedido inválido"})
	}
	if err := h.uc.Cancel(c.Context(), orderID, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Pickup godoc
// @Summary      Entregar pedido (descuenta stock y registra VENTA)
// @Tags         orders
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pickup [post]
func (h *OrderHandler) Pickup(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de pedido inválido"})
	}
	if err := h.uc.Pickup(c.Context(), orderID, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Param        branch    query  string  false  "slug de sucursal"
// @Param        status    query  string  false  "PENDING|DELIVERED|CANCELLED"
// @Param        from      query  string  false  "fecha desde (RFC3339 o 2006-01-02)"
// @Param        to        query  string  false  "fecha hasta"
// @Param        page      query  int     false  "página (>=1)"
// @Param        page_size query  int     false  "tamaño de página (1-100)"
// @Success      200  {object}  dto.PagedResponse[dto.OrderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.ListOrdersQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	list, meta, err := h.uc.List(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	data := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		data = append(data, dto.OrderToResponse(o))
	}
	return c.JSON(dto.PagedResponse[dto.OrderResponse]{Data: data, Meta: meta})
}

// Ticket godoc
// @Summary      Ticket PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ticket [get]
func (h *OrderHandler) Ticket(c *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de pedido inválido"})
	}
	order, err := h.uc.Get(c.Context(), orderID)
	if err != nil {
		return respondError(c, err)
	}

	data := pdf.TicketData{
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		Total:       order.Total,
	}
	if branch, err := h.branchRepo.GetByID(order.BranchID); err == nil && branch != nil {
		data.BranchName = branch.Name
	}
	for _, it := range order.Items {
		name := it.ProductID
		if p, err := h.productRepo.GetByID(it.ProductID); err == nil && p != nil {
			name = p.Name
		}
		data.Lines = append(data.Lines, pdf.TicketLine{
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	doc, err := h.tickets.Generate(data)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+order.OrderNumber+`.pdf"`)
	return c.Send(doc)
}
