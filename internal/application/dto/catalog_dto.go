package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products. El slug se deriva del
// nombre si viene vacío.
type CreateProductRequest struct {
	Slug         string          `json:"slug,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CategorySlug string          `json:"category_slug,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"category_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateBranchRequest body para POST /api/branches.
type CreateBranchRequest struct {
	Slug    string `json:"slug,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// BranchResponse representación HTTP de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Slug string `json:"slug,omitempty"`
	Name string `json:"name"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductToResponse mapea la entidad a su representación HTTP.
func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
	}
}

// CategoryToResponse mapea la entidad a su representación HTTP.
func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Slug: c.Slug, Name: c.Name, CreatedAt: c.CreatedAt}
}

// BranchToResponse mapea la entidad a su representación HTTP.
func BranchToResponse(b *entity.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Slug:      b.Slug,
		Name:      b.Name,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
	}
}
