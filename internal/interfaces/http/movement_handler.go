package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/inventory"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos y el stock.
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar movimiento manual de stock
// @Description  Aplica los deltas del tipo (PRODUCCION, COMPRA, VENTA, TRANSFERENCIA, MERMA, PERDIDA_ROBO, SOBRANTE) y agrega un registro al libro, todo en una transacción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.CreateMovement(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementToResponse(mov))
}

// List godoc
// @Summary      Listar el libro de movimientos
// @Tags         inventory
// @Produce      json
// @Param        product   query  string  false  "slug de producto"
// @Param        branch    query  string  false  "slug de sucursal (origen o destino)"
// @Param        type      query  string  false  "tipo de movimiento"
// @Param        from      query  string  false  "fecha desde (RFC3339 o 2006-01-02)"
// @Param        to        query  string  false  "fecha hasta"
// @Param        page      query  int     false  "página (>=1)"
// @Param        page_size query  int     false  "tamaño de página (1-100)"
// @Success      200  {object}  dto.PagedResponse[dto.MovementResponse]
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.ListMovementsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	list, meta, err := h.uc.ListMovements(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	data := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		data = append(data, dto.MovementToResponse(m))
	}
	return c.JSON(dto.PagedResponse[dto.MovementResponse]{Data: data, Meta: meta})
}

// Stock godoc
// @Summary      Consultar stock de una sucursal
// @Description  Devuelve quantity, reserved y available por producto. Con ?product= restringe a un producto (fila ausente se lee como ceros).
// @Tags         inventory
// @Produce      json
// @Param        branch   query  string  true   "slug de sucursal"
// @Param        product  query  string  false  "slug de producto"
// @Success      200  {array}   dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *MovementHandler) Stock(c *fiber.Ctx) error {
	branchSlug := c.Query("branch")
	if branchSlug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch: requerido"})
	}
	rows, err := h.uc.GetStock(c.Context(), branchSlug, c.Query("product"))
	if err != nil {
		return respondError(c, err)
	}
	data := make([]dto.StockResponse, 0, len(rows))
	for _, inv := range rows {
		data = append(data, dto.StockToResponse(inv))
	}
	return c.JSON(data)
}
