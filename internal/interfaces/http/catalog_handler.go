package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/catalog"
	"github.com/jhoicas/panaderia-api/internal/application/dto"
)

// CatalogHandler maneja las peticiones HTTP de productos y sucursales.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateProductRequest  true  "producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.CreateProduct(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductToResponse(product))
}

// GetProduct godoc
// @Summary      Obtener producto por slug
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "slug del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{slug} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductToResponse(product))
}

// ListProducts godoc
// @Summary      Listar productos activos
// @Tags         catalog
// @Produce      json
// @Param        page      query  int  false  "página (>=1)"
// @Param        page_size query  int  false  "tamaño de página (1-100)"
// @Success      200  {object}  dto.PagedResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	list, meta, err := h.uc.ListProducts(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	data := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		data = append(data, dto.ProductToResponse(p))
	}
	return c.JSON(dto.PagedResponse[dto.ProductResponse]{Data: data, Meta: meta})
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCategoryRequest  true  "categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	category, err := h.uc.CreateCategory(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CategoryToResponse(category))
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	data := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		data = append(data, dto.CategoryToResponse(cat))
	}
	return c.JSON(data)
}

// CreateBranch godoc
// @Summary      Crear sucursal
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBranchRequest  true  "sucursal"
// @Success      201   {object}  dto.BranchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/branches [post]
func (h *CatalogHandler) CreateBranch(c *fiber.Ctx) error {
	var in dto.CreateBranchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	branch, err := h.uc.CreateBranch(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BranchToResponse(branch))
}

// ListBranches godoc
// @Summary      Listar sucursales
// @Tags         catalog
// @Produce      json
// @Param        page      query  int  false  "página (>=1)"
// @Param        page_size query  int  false  "tamaño de página (1-100)"
// @Success      200  {object}  dto.PagedResponse[dto.BranchResponse]
// @Router       /api/branches [get]
func (h *CatalogHandler) ListBranches(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	list, meta, err := h.uc.ListBranches(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	data := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		data = append(data, dto.BranchToResponse(b))
	}
	return c.JSON(dto.PagedResponse[dto.BranchResponse]{Data: data, Meta: meta})
}
